package render

import (
	"strconv"
	"strings"

	"github.com/alnah/go-lexical2html/internal/htmlutil"
	"github.com/alnah/go-lexical2html/internal/lexical"
)

// blockAttrs returns the alignment and direction attributes shared by
// paragraphs, headings and quotes.
func blockAttrs(n *lexical.Node) htmlutil.Attrs {
	var attrs htmlutil.Attrs
	switch n.Format.Align {
	case "left", "center", "right", "justify":
		attrs.Set("style", "text-align: "+n.Format.Align)
	}
	if n.Direction != "" && n.Direction != "ltr" {
		attrs.Set("dir", n.Direction)
	}
	return attrs
}

// paragraph emits one <p> per run of children between linebreaks. Trailing
// empty runs are dropped; interior ones stay as empty paragraphs.
func (c *convContext) paragraph(n *lexical.Node) string {
	attrs := blockAttrs(n)
	runs := splitRuns(n.Children)
	if len(runs) == 0 {
		return htmlutil.WrapWithTag("p", "", attrs)
	}

	var b strings.Builder
	for _, run := range runs {
		var content strings.Builder
		for _, child := range run {
			content.WriteString(c.convertNode(inheritStyle(child, n.TextStyle)))
		}
		b.WriteString(htmlutil.WrapWithTag("p", content.String(), attrs))
	}
	return b.String()
}

func splitRuns(children []lexical.Node) [][]*lexical.Node {
	runs := [][]*lexical.Node{nil}
	for i := range children {
		if children[i].Kind() == lexical.KindLinebreak {
			runs = append(runs, nil)
			continue
		}
		last := len(runs) - 1
		runs[last] = append(runs[last], &children[i])
	}
	for len(runs) > 0 && len(runs[len(runs)-1]) == 0 {
		runs = runs[:len(runs)-1]
	}
	return runs
}

// inheritStyle returns child, or a copy of it carrying textStyle when the
// child has no style of its own. The input tree is never modified.
func inheritStyle(child *lexical.Node, textStyle string) *lexical.Node {
	if child.Style != "" || textStyle == "" {
		return child
	}
	derived := *child
	derived.Style = textStyle
	return &derived
}

func (c *convContext) heading(n *lexical.Node) string {
	tag := "h1"
	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		tag = n.Tag
	}
	return htmlutil.WrapWithTag(tag, c.children(n), blockAttrs(n))
}

func (c *convContext) list(n *lexical.Node) string {
	tag := "ul"
	switch n.ListType {
	case "number":
		tag = "ol"
	case "bullet", "check":
	default:
		if n.Tag == "ol" {
			tag = "ol"
		}
	}

	var attrs htmlutil.Attrs
	if n.Start != nil && *n.Start != 1 && tag == "ol" {
		attrs.Set("start", strconv.Itoa(*n.Start))
	}
	if n.ListType == "check" {
		attrs.Set("class", "checklist")
	}
	return htmlutil.WrapWithTag(tag, c.children(n), attrs)
}

func (c *convContext) listItem(n *lexical.Node) string {
	var attrs htmlutil.Attrs
	if n.Value > 0 {
		attrs.Set("value", strconv.Itoa(n.Value))
	}

	content := c.children(n)
	if n.Checked != nil {
		box := htmlutil.Attrs{{Key: "type", Value: "checkbox"}}
		if *n.Checked {
			box.Set("checked", "checked")
		}
		box.Set("disabled", "disabled")
		content = htmlutil.SelfClosingTag("input", box) + " " + content
	}
	return htmlutil.WrapWithTag("li", content, attrs)
}

func (c *convContext) table(n *lexical.Node) string {
	var cols strings.Builder
	for _, w := range n.ColWidths {
		cols.WriteString(htmlutil.SelfClosingTag("col", htmlutil.Attrs{
			{Key: "style", Value: "width: " + htmlutil.FormatFloat(w) + "px"},
		}))
	}

	content := c.children(n)
	if cols.Len() > 0 {
		content = htmlutil.WrapWithTag("colgroup", cols.String(), nil) + content
	}
	return htmlutil.WrapWithTag("table", content, nil)
}

func (c *convContext) tableRow(n *lexical.Node) string {
	var attrs htmlutil.Attrs
	if n.Height.IsSet() {
		attrs.Set("style", "height: "+n.Height.String()+"px")
	}
	return htmlutil.WrapWithTag("tr", c.children(n), attrs)
}

func (c *convContext) tableCell(n *lexical.Node) string {
	tag := "td"
	if n.HeaderState == 1 {
		tag = "th"
	}

	var attrs htmlutil.Attrs
	if n.ColSpan > 1 {
		attrs.Set("colspan", strconv.Itoa(n.ColSpan))
	}
	if n.RowSpan > 1 {
		attrs.Set("rowspan", strconv.Itoa(n.RowSpan))
	}
	if n.BackgroundColor != "" {
		attrs.Set("style", "background-color: "+htmlutil.SanitizeStyle(n.BackgroundColor))
	}
	return htmlutil.WrapWithTag(tag, c.children(n), attrs)
}

func (c *convContext) collapsible(n *lexical.Node) string {
	var attrs htmlutil.Attrs
	if n.Open {
		attrs.Set("open", "open")
	}
	return htmlutil.WrapWithTag("details", c.children(n), attrs)
}

func (c *convContext) layoutContainer(n *lexical.Node) string {
	attrs := htmlutil.Attrs{{Key: "class", Value: "layout-container"}}
	if n.TemplateColumns != "" {
		attrs.Set("style", "grid-template-columns: "+htmlutil.SanitizeStyle(n.TemplateColumns))
	}
	return htmlutil.WrapWithTag("div", c.children(n), attrs)
}

func poll(n *lexical.Node) string {
	question, options := n.PollContent()
	content := htmlutil.WrapWithTag("h4", htmlutil.EscapeHTML(question), nil)

	if len(options) > 0 {
		var items strings.Builder
		for i, opt := range options {
			text := opt.Text
			if text == "" {
				text = "Option " + strconv.Itoa(i+1)
			}
			items.WriteString(htmlutil.WrapWithTag("li", htmlutil.EscapeHTML(text)+" ("+votes(len(opt.Votes))+")", nil))
		}
		content += htmlutil.WrapWithTag("ul", items.String(), nil)
	}
	return htmlutil.WrapWithTag("div", content, htmlutil.Attrs{{Key: "class", Value: "poll"}})
}

func votes(n int) string {
	if n == 1 {
		return "1 vote"
	}
	return strconv.Itoa(n) + " votes"
}
