package render

import (
	"strings"

	"github.com/alnah/go-lexical2html/internal/htmlutil"
	"github.com/alnah/go-lexical2html/internal/lexical"
)

func (c *convContext) text(n *lexical.Node) string {
	if n.Text == "" {
		return ""
	}
	return c.perLine(n.Text, func(s string) string {
		return htmlutil.ApplyTextFormatting(s, n.Format.Mask, n.Style)
	})
}

func tab(n *lexical.Node) string {
	if n.Text == "" {
		return "\t"
	}
	return htmlutil.EscapeHTML(n.Text)
}

func (c *convContext) linebreak() string {
	if c.inCode > 0 {
		return "\n"
	}
	return "<br/>"
}

func (c *convContext) link(n *lexical.Node) string {
	attrs := htmlutil.Attrs{{Key: "href", Value: htmlutil.SanitizeURL(n.URL)}}
	if n.Target != "" && n.Target != "_self" {
		attrs.Set("target", n.Target)
	}
	attrs.Set("rel", n.Rel)
	attrs.Set("title", n.Title)
	return htmlutil.WrapWithTag("a", c.children(n), attrs)
}

func (c *convContext) codeHighlight(n *lexical.Node) string {
	var attrs htmlutil.Attrs
	if n.HighlightType != "" {
		attrs.Set("class", "highlight-"+n.HighlightType)
	}
	return c.perLine(n.Text, func(s string) string {
		return htmlutil.WrapWithTag("span", htmlutil.EscapeHTML(s), attrs)
	})
}

func equation(n *lexical.Node) string {
	tag := "div"
	if n.Inline {
		tag = "span"
	}
	return htmlutil.WrapWithTag(tag, htmlutil.EscapeHTML(n.Equation), htmlutil.Attrs{{Key: "class", Value: "equation"}})
}

// perLine applies render to text. Inside a code block, text spanning
// several lines is rendered segment by segment so no element crosses a
// line boundary; empty segments produce no markup.
func (c *convContext) perLine(text string, render func(string) string) string {
	if c.inCode == 0 || !strings.Contains(text, "\n") {
		return render(text)
	}
	segments := strings.Split(text, "\n")
	for i, s := range segments {
		if s != "" {
			segments[i] = render(s)
		}
	}
	return strings.Join(segments, "\n")
}
