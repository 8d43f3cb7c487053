// Package lexical models Lexical editor-state documents: a tree of typed
// nodes reached through editorState.root.
package lexical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for document parsing.
var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrInvalidJSON   = errors.New("document is not valid JSON")
)

// MaxDocumentSize limits parsed input (32MB).
var MaxDocumentSize = 32 << 20

// Document is a saved editor document.
type Document struct {
	EditorState EditorState
	LastSaved   int64
	Source      string
	Version     string
}

// EditorState wraps the root node.
type EditorState struct {
	Root *Node
}

// Root returns the root node, or nil when the document has none.
func (d *Document) Root() *Node {
	if d == nil {
		return nil
	}
	return d.EditorState.Root
}

// Parse decodes a document. Both the saved-document shape
// {"editorState": {"root": ...}} and a bare editor state {"root": ...} are
// accepted. A missing root is not a parse error; the renderer reports it.
// Metadata fields with unexpected types are ignored.
func Parse(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInvalidJSON, len(data), MaxDocumentSize)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	doc := &Document{}
	if v, ok := raw["editorState"]; ok {
		var state struct {
			Root *Node `json:"root"`
		}
		if err := json.Unmarshal(v, &state); err != nil {
			return nil, fmt.Errorf("%w: editorState: %v", ErrInvalidJSON, err)
		}
		doc.EditorState.Root = state.Root
	} else if v, ok := raw["root"]; ok {
		var root *Node
		if err := json.Unmarshal(v, &root); err != nil {
			return nil, fmt.Errorf("%w: root: %v", ErrInvalidJSON, err)
		}
		doc.EditorState.Root = root
	}

	// Best effort: metadata never fails the document.
	_ = json.Unmarshal(raw["lastSaved"], &doc.LastSaved)
	_ = json.Unmarshal(raw["source"], &doc.Source)
	_ = json.Unmarshal(raw["version"], &doc.Version)

	return doc, nil
}
