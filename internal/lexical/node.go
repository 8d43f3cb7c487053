package lexical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Node is one element of a Lexical editor-state tree. A single struct carries
// the fields of every variant; Kind reports which variant it is.
//
// Nodes are decoded leniently: a field holding the wrong JSON type does not
// fail the enclosing document. The problem is kept on the node and reported
// by Err, so the renderer can isolate the failure to this node.
type Node struct {
	Type     string
	Version  int
	Children []Node

	// Text and text-like nodes (text, tab, hashtag, code-highlight).
	Text          string
	Format        Format
	Style         string
	Mode          string
	Detail        int
	HighlightType string

	// Element nodes.
	Direction string
	Indent    int
	TextStyle string

	// Heading and list nodes.
	Tag      string
	ListType string
	Start    *int
	Value    int
	Checked  *bool

	// Link nodes.
	URL    string
	Target string
	Rel    string
	Title  string

	// Table nodes.
	HeaderState     int
	ColSpan         int
	RowSpan         int
	BackgroundColor string
	ColWidths       []float64

	// Image nodes. Height doubles as the table row height.
	Src         string
	AltText     string
	Width       Dimension
	Height      Dimension
	MaxWidth    Dimension
	ShowCaption bool
	Caption     *Caption
	Position    string

	// Equation nodes.
	Equation string
	Inline   bool

	// Code blocks.
	Language string

	// Collapsible containers.
	Open bool

	// Poll nodes carry their data either inline or under "$".
	Question string
	Options  []PollOption
	Poll     *PollData

	// Layout containers.
	TemplateColumns string

	// Excalidraw nodes hold the scene as a JSON string (or object).
	Data json.RawMessage

	err error
}

// PollData is the payload of a poll node.
type PollData struct {
	Question string       `json:"question"`
	Options  []PollOption `json:"options"`
}

// PollOption is one answer of a poll.
type PollOption struct {
	UID   string            `json:"uid"`
	Text  string            `json:"text"`
	Votes []json.RawMessage `json:"votes"`
}

// Kind returns the variant of n.
func (n *Node) Kind() Kind {
	return KindOf(n.Type)
}

// Err returns the decoding problems recorded for this node, or nil.
func (n *Node) Err() error {
	return n.err
}

// PollContent returns the poll question and options, preferring the "$" payload.
func (n *Node) PollContent() (string, []PollOption) {
	if n.Poll != nil {
		return n.Poll.Question, n.Poll.Options
	}
	return n.Question, n.Options
}

// SceneData returns the embedded Excalidraw scene as raw JSON. The editor
// stores it as a JSON-encoded string; an inline object is accepted as well.
func (n *Node) SceneData() []byte {
	raw := bytes.TrimSpace(n.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return []byte(s)
	}
	return raw
}

// UnmarshalJSON decodes a node field by field, recording type mismatches
// on the node instead of failing.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		*n = Node{err: errors.New("node is not a JSON object")}
		return nil
	}

	d := fieldDecoder{raw: raw}
	*n = Node{}

	d.decode("type", &n.Type)
	d.decode("version", &n.Version)
	d.decode("children", &n.Children)

	d.decode("text", &n.Text)
	d.decode("format", &n.Format)
	d.decode("style", &n.Style)
	d.decode("mode", &n.Mode)
	d.decode("detail", &n.Detail)
	d.decode("highlightType", &n.HighlightType)

	d.decode("direction", &n.Direction)
	d.decode("indent", &n.Indent)
	d.decode("textStyle", &n.TextStyle)

	d.decode("tag", &n.Tag)
	d.decode("listType", &n.ListType)
	d.decode("start", &n.Start)
	d.decode("value", &n.Value)
	d.decode("checked", &n.Checked)

	d.decode("url", &n.URL)
	d.decode("target", &n.Target)
	d.decode("rel", &n.Rel)
	d.decode("title", &n.Title)

	d.decode("headerState", &n.HeaderState)
	d.decode("colSpan", &n.ColSpan)
	d.decode("rowSpan", &n.RowSpan)
	d.decode("backgroundColor", &n.BackgroundColor)
	d.decode("colWidths", &n.ColWidths)

	d.decode("src", &n.Src)
	d.decode("altText", &n.AltText)
	d.decode("width", &n.Width)
	d.decode("height", &n.Height)
	d.decode("maxWidth", &n.MaxWidth)
	d.decode("showCaption", &n.ShowCaption)
	d.decode("caption", &n.Caption)
	d.decode("position", &n.Position)

	d.decode("equation", &n.Equation)
	d.decode("inline", &n.Inline)
	d.decode("language", &n.Language)
	d.decode("open", &n.Open)

	d.decode("question", &n.Question)
	d.decode("options", &n.Options)
	d.decode("$", &n.Poll)

	d.decode("templateColumns", &n.TemplateColumns)

	if v, ok := raw["data"]; ok {
		n.Data = v
	}

	n.err = errors.Join(d.errs...)
	return nil
}

// fieldDecoder decodes individual fields from a raw object and collects errors.
type fieldDecoder struct {
	raw  map[string]json.RawMessage
	errs []error
}

func (d *fieldDecoder) decode(key string, dst any) {
	v, ok := d.raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return
	}
	if err := json.Unmarshal(v, dst); err != nil {
		d.errs = append(d.errs, fmt.Errorf("field %q: %v", key, err))
	}
}
