package lexical2html

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-lexical2html/internal/lexical"
)

// Shape selects how the converted fragment is delivered.
type Shape string

// Bundle shapes.
const (
	// ShapeFragment is the bare HTML fragment.
	ShapeFragment Shape = "fragment"

	// ShapeStyle is <style>css</style><div class="prefix">fragment</div>.
	ShapeStyle Shape = "style"

	// ShapeFull is ShapeStyle followed by <script>js</script>.
	ShapeFull Shape = "full"

	// ShapeDocument is a complete HTML page built from the document template.
	ShapeDocument Shape = "document"
)

// DefaultShape is used when Input.Shape is empty.
const DefaultShape = ShapeFull

// Shapes returns every bundle shape in documentation order.
func Shapes() []Shape {
	return []Shape{ShapeFragment, ShapeStyle, ShapeFull, ShapeDocument}
}

// Validate checks that the shape is known. The empty shape is valid and
// means DefaultShape. Comparison is case-insensitive.
func (s Shape) Validate() error {
	switch Shape(strings.ToLower(string(s))) {
	case "", ShapeFragment, ShapeStyle, ShapeFull, ShapeDocument:
		return nil
	}
	return fmt.Errorf("%w: %q (want fragment, style, full or document)", ErrInvalidShape, string(s))
}

// Document is a decoded Lexical editor document.
type Document = lexical.Document

// Node is one node of a Lexical document tree.
type Node = lexical.Node

// ParseDocument decodes Lexical JSON. Both the saved-document form
// {"editorState": {"root": ...}} and a bare {"root": ...} are accepted.
// Returns ErrEmptyInput for blank data and ErrInvalidDocument otherwise.
func ParseDocument(data []byte) (*Document, error) {
	doc, err := lexical.Parse(data)
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, lexical.ErrEmptyDocument):
		return nil, ErrEmptyInput
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
}

// Input contains the document and per-conversion options.
// Exactly one of JSON or Document should be set; Document wins when both are.
type Input struct {
	JSON     []byte    // Raw Lexical JSON
	Document *Document // Already decoded document
	Title    string    // <title> for ShapeDocument and PDF output (empty = "Document")
	Shape    Shape     // Bundle shape (empty = DefaultShape)
	PDF      bool      // Also render the document shape to PDF (requires Chrome)
}

// ConvertResult is the output of a conversion.
type ConvertResult struct {
	HTML   string // Converted fragment, before bundling
	CSS    string // Prepared stylesheet (prefixed, optionally minified)
	Script string // Prepared interaction script (empty when disabled)
	Bundle string // Fragment delivered in the requested shape
	PDF    []byte // PDF bytes when Input.PDF is set
	Stats  Stats
}

// Stats describes one conversion.
type Stats struct {
	NodeCount int           // Nodes visited, including the root
	Errors    []string      // Non-fatal diagnostics, in document order
	Duration  time.Duration // Wall time of the conversion
}

// HasErrors reports whether the conversion produced diagnostics.
func (s Stats) HasErrors() bool {
	return len(s.Errors) > 0
}
