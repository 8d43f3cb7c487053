package htmlutil

// Text format bits, least significant first.
const (
	FormatBold          = 1
	FormatItalic        = 1 << 1
	FormatStrikethrough = 1 << 2
	FormatUnderline     = 1 << 3
	FormatCode          = 1 << 4
	FormatSubscript     = 1 << 5
	FormatSuperscript   = 1 << 6
)

// FormatFlags is a decoded text format mask.
type FormatFlags struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Underline     bool
	Code          bool
	Subscript     bool
	Superscript   bool
}

// DecodeFormatMask splits mask into individual flags.
func DecodeFormatMask(mask int) FormatFlags {
	return FormatFlags{
		Bold:          mask&FormatBold != 0,
		Italic:        mask&FormatItalic != 0,
		Strikethrough: mask&FormatStrikethrough != 0,
		Underline:     mask&FormatUnderline != 0,
		Code:          mask&FormatCode != 0,
		Subscript:     mask&FormatSubscript != 0,
		Superscript:   mask&FormatSuperscript != 0,
	}
}

// ApplyTextFormatting escapes text and wraps it for every flag in mask.
// Wrappers nest from the inside out as code, strong, em, u, s, sub, sup;
// a non-empty style adds an outermost span carrying the sanitized style.
func ApplyTextFormatting(text string, mask int, style string) string {
	out := EscapeHTML(text)
	f := DecodeFormatMask(mask)

	wraps := []struct {
		on  bool
		tag string
	}{
		{f.Code, "code"},
		{f.Bold, "strong"},
		{f.Italic, "em"},
		{f.Underline, "u"},
		{f.Strikethrough, "s"},
		{f.Subscript, "sub"},
		{f.Superscript, "sup"},
	}
	for _, w := range wraps {
		if w.on {
			out = "<" + w.tag + ">" + out + "</" + w.tag + ">"
		}
	}

	if style != "" {
		out = WrapWithTag("span", out, Attrs{{Key: "style", Value: SanitizeStyle(style)}})
	}
	return out
}
