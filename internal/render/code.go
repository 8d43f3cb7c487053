package render

import (
	"strconv"
	"strings"

	"github.com/alnah/go-lexical2html/internal/htmlutil"
	"github.com/alnah/go-lexical2html/internal/lexical"
)

// codeBlock renders a line-numbered block with copy and fold controls.
func (c *convContext) codeBlock(n *lexical.Node) string {
	lines := strings.Split(c.codeContent(n), "\n")
	for len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	var code, numbers strings.Builder
	for i, line := range lines {
		num := strconv.Itoa(i + 1)
		if strings.TrimSpace(line) == "" {
			line = "<br/>"
		}
		code.WriteString(htmlutil.WrapWithTag("span", line, htmlutil.Attrs{
			{Key: "class", Value: "code-line"},
			{Key: "data-line", Value: num},
		}))
		numbers.WriteString(htmlutil.WrapWithTag("div", num, htmlutil.Attrs{
			{Key: "class", Value: "line-number"},
			{Key: "data-line", Value: num},
			{Key: "onclick", Value: "toggleLineHighlight(this)"},
		}))
	}

	id := "code-" + c.engine.newID()
	lang := n.Language

	var codeAttrs htmlutil.Attrs
	if lang != "" {
		codeAttrs.Set("class", "language-"+lang)
	}
	pre := htmlutil.WrapWithTag("pre", htmlutil.WrapWithTag("code", code.String(), codeAttrs), nil)

	body := codeControls(id) +
		htmlutil.WrapWithTag("div", htmlutil.EscapeHTML(codeHeader(lang, len(lines))), htmlutil.Attrs{{Key: "class", Value: "code-header"}}) +
		htmlutil.WrapWithTag("div", numbers.String(), htmlutil.Attrs{{Key: "class", Value: "code-line-numbers"}}) +
		htmlutil.WrapWithTag("div", pre, htmlutil.Attrs{{Key: "class", Value: "code-content"}})

	return htmlutil.WrapWithTag("div", body, htmlutil.Attrs{
		{Key: "class", Value: "code-block"},
		{Key: "id", Value: id},
		{Key: "data-code-id", Value: id},
		{Key: "data-language", Value: lang},
	})
}

// codeContent renders the children with linebreaks as newlines.
func (c *convContext) codeContent(n *lexical.Node) string {
	c.inCode++
	defer func() { c.inCode-- }()
	return c.children(n)
}

// codeHeader returns e.g. "GO (3 lines)".
func codeHeader(lang string, lines int) string {
	label := strings.ToUpper(lang)
	if label == "" {
		label = "TEXT"
	}
	noun := "lines"
	if lines == 1 {
		noun = "line"
	}
	return label + " (" + strconv.Itoa(lines) + " " + noun + ")"
}

func codeControls(id string) string {
	copyBtn := htmlutil.WrapWithTag("button", "⧉ Copy", htmlutil.Attrs{
		{Key: "type", Value: "button"},
		{Key: "class", Value: "code-btn copy-btn"},
		{Key: "onclick", Value: "copyCode('" + id + "')"},
		{Key: "title", Value: "Copy code"},
	})
	foldBtn := htmlutil.WrapWithTag("button", "⊟ Fold", htmlutil.Attrs{
		{Key: "type", Value: "button"},
		{Key: "class", Value: "code-btn fold-btn"},
		{Key: "onclick", Value: "toggleCodeFold('" + id + "')"},
		{Key: "title", Value: "Fold/Unfold code"},
	})
	return htmlutil.WrapWithTag("div", copyBtn+foldBtn, htmlutil.Attrs{{Key: "class", Value: "code-controls"}})
}
