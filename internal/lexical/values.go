package lexical

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Text format bits.
const (
	FormatBold          = 1
	FormatItalic        = 1 << 1
	FormatStrikethrough = 1 << 2
	FormatUnderline     = 1 << 3
	FormatCode          = 1 << 4
	FormatSubscript     = 1 << 5
	FormatSuperscript   = 1 << 6
)

// Format is the polymorphic "format" field: a bit mask on text nodes and an
// alignment keyword on element nodes.
type Format struct {
	Mask  int
	Align string
}

// UnmarshalJSON accepts either a number or a string.
func (f *Format) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &f.Align)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.New("format must be a number or a string")
	}
	f.Mask = int(v)
	return nil
}

// Dimension is a size in pixels. The editor writes numbers, but keywords
// such as "inherit" also occur; those decode to zero, meaning unset.
type Dimension float64

// UnmarshalJSON accepts numbers, numeric strings ("120", "120px") and keywords.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*d = Dimension(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("dimension must be a number or a string")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		*d = Dimension(v)
		return nil
	}
	*d = 0
	return nil
}

// IsSet reports whether d holds a positive size.
func (d Dimension) IsSet() bool {
	return d > 0
}

// String formats d without trailing zeros.
func (d Dimension) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64)
}

// Caption is an image caption: a nested editor state or plain text.
type Caption struct {
	Text string
	Root *Node
}

// UnmarshalJSON accepts a string, {"editorState": {"root": ...}} or {"root": ...}.
func (c *Caption) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.Text)
	}
	var obj struct {
		EditorState *struct {
			Root *Node `json:"root"`
		} `json:"editorState"`
		Root *Node `json:"root"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.New("caption must be a string or an editor state")
	}
	c.Root = obj.Root
	if obj.EditorState != nil && obj.EditorState.Root != nil {
		c.Root = obj.EditorState.Root
	}
	return nil
}

// IsEmpty reports whether the caption has nothing to show.
func (c *Caption) IsEmpty() bool {
	if c == nil {
		return true
	}
	if c.Root != nil {
		return len(c.Root.Children) == 0
	}
	return c.Text == ""
}
