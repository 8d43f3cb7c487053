package render

import (
	"github.com/alnah/go-lexical2html/internal/excalidraw"
	"github.com/alnah/go-lexical2html/internal/htmlutil"
	"github.com/alnah/go-lexical2html/internal/lexical"
)

// sizeAttrs returns the src, alt, width and height attributes of an image.
func sizeAttrs(n *lexical.Node) htmlutil.Attrs {
	attrs := htmlutil.Attrs{
		{Key: "src", Value: n.Src},
		{Key: "alt", Value: n.AltText},
	}
	if n.Width.IsSet() {
		attrs.Set("width", n.Width.String())
	}
	if n.Height.IsSet() {
		attrs.Set("height", n.Height.String())
	}
	return attrs
}

func (c *convContext) image(n *lexical.Node) string {
	attrs := sizeAttrs(n)
	if n.MaxWidth.IsSet() {
		attrs.Set("style", "max-width: "+n.MaxWidth.String()+"px")
	}
	content := htmlutil.SelfClosingTag("img", attrs)

	if n.ShowCaption && !n.Caption.IsEmpty() {
		var caption string
		if n.Caption.Root != nil {
			caption = c.convertNode(n.Caption.Root)
		} else {
			caption = htmlutil.EscapeHTML(n.Caption.Text)
		}
		content += htmlutil.WrapWithTag("div", caption, htmlutil.Attrs{{Key: "class", Value: "image-caption"}})
	}
	return htmlutil.WrapWithTag("figure", content, nil)
}

func inlineImage(n *lexical.Node) string {
	attrs := sizeAttrs(n)
	attrs.Set("style", "display: inline-block; vertical-align: middle;")
	attrs.Set("data-position", n.Position)
	return htmlutil.SelfClosingTag("img", attrs)
}

// drawing renders the embedded Excalidraw scene; a scene that cannot be decoded
// still yields a placeholder plus a diagnostic.
func (c *convContext) drawing(n *lexical.Node) string {
	out, err := excalidraw.Render(n.SceneData(), excalidraw.Options{
		Width:  float64(n.Width),
		Height: float64(n.Height),
		ID:     c.engine.newID(),
	})
	if err != nil {
		c.warn("Error rendering excalidraw: %v", err)
	}
	return out
}
