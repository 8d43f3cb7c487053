package excalidraw

import (
	"strconv"
	"strings"

	"github.com/alnah/go-lexical2html/internal/htmlutil"
)

// Shape defaults.
const (
	DefaultStroke      = "#000000"
	DefaultStrokeWidth = 1
	DefaultFill        = "transparent"
	DefaultFontSize    = 16
)

// Placeholder size when no display dimensions are given.
const (
	PlaceholderWidth  = 400
	PlaceholderHeight = 200
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Options controls a single render.
type Options struct {
	// Width and Height are the display size; zero means derive from the scene.
	Width  float64
	Height float64
	// ID scopes marker ids so several drawings can share a page.
	ID string
}

// Render converts scene JSON into an SVG wrapped in div.excalidraw-container.
// It always returns usable markup. When the scene cannot be decoded the
// markup is an error placeholder and err says why. A scene with no visible
// elements renders an empty placeholder and no error.
func Render(data []byte, opts Options) (string, error) {
	scene, err := Parse(data)
	if err != nil {
		return placeholder(opts, "Unable to display drawing"), err
	}
	elements := scene.Visible()
	if len(elements) == 0 {
		return placeholder(opts, "Empty drawing"), nil
	}

	frame := ComputeBounds(elements).Frame()
	width, height := frame.VisibleSize(opts.Width, opts.Height)

	r := &sceneRenderer{prefix: markerPrefix(opts.ID)}
	var body strings.Builder
	if bg := scene.AppState.ViewBackgroundColor; bg != "" && !strings.EqualFold(bg, "#ffffff") {
		body.WriteString(htmlutil.SelfClosingTag("rect", htmlutil.Attrs{
			{Key: "x", Value: num(frame.X)},
			{Key: "y", Value: num(frame.Y)},
			{Key: "width", Value: num(frame.Width)},
			{Key: "height", Value: num(frame.Height)},
			{Key: "fill", Value: bg},
		}))
	}
	for _, el := range elements {
		body.WriteString(r.element(el))
	}

	svg := htmlutil.WrapWithTag("svg", r.defs()+body.String(), htmlutil.Attrs{
		{Key: "xmlns", Value: svgNamespace},
		{Key: "class", Value: "excalidraw-svg"},
		{Key: "width", Value: num(width)},
		{Key: "height", Value: num(height)},
		{Key: "viewBox", Value: num(frame.X) + " " + num(frame.Y) + " " + num(frame.Width) + " " + num(frame.Height)},
		{Key: "preserveAspectRatio", Value: "xMidYMid meet"},
	})
	return container(svg), nil
}

// sceneRenderer tracks the arrow markers needed by one scene.
type sceneRenderer struct {
	prefix  string
	markers []string // stroke colors, in first-use order
}

func (r *sceneRenderer) element(el Element) string {
	switch el.Type {
	case "rectangle":
		return r.rectangle(el)
	case "ellipse":
		return r.ellipse(el)
	case "diamond":
		return r.diamond(el)
	case "line":
		return r.line(el, false)
	case "arrow":
		return r.line(el, true)
	case "freedraw":
		return r.freedraw(el)
	case "text":
		return r.text(el)
	default:
		return "<!-- Unknown element type: " + htmlutil.EscapeHTML(el.Type) + " -->"
	}
}

func (r *sceneRenderer) rectangle(el Element) string {
	attrs := htmlutil.Attrs{
		{Key: "x", Value: num(el.X)},
		{Key: "y", Value: num(el.Y)},
		{Key: "width", Value: num(el.Width)},
		{Key: "height", Value: num(el.Height)},
	}
	if el.Roundness != nil {
		radius := num(min(el.Width, el.Height) * 0.1)
		attrs = append(attrs, htmlutil.Attr{Key: "rx", Value: radius}, htmlutil.Attr{Key: "ry", Value: radius})
	}
	return htmlutil.SelfClosingTag("rect", append(attrs, paint(el, fillOf(el))...))
}

func (r *sceneRenderer) ellipse(el Element) string {
	rx, ry := el.Width/2, el.Height/2
	attrs := htmlutil.Attrs{
		{Key: "cx", Value: num(el.X + rx)},
		{Key: "cy", Value: num(el.Y + ry)},
		{Key: "rx", Value: num(rx)},
		{Key: "ry", Value: num(ry)},
	}
	return htmlutil.SelfClosingTag("ellipse", append(attrs, paint(el, fillOf(el))...))
}

func (r *sceneRenderer) diamond(el Element) string {
	cx, cy := el.X+el.Width/2, el.Y+el.Height/2
	points := strings.Join([]string{
		num(cx) + "," + num(el.Y),
		num(el.X+el.Width) + "," + num(cy),
		num(cx) + "," + num(el.Y+el.Height),
		num(el.X) + "," + num(cy),
	}, " ")
	attrs := htmlutil.Attrs{{Key: "points", Value: points}}
	return htmlutil.SelfClosingTag("polygon", append(attrs, paint(el, fillOf(el))...))
}

// line draws a segment from the first to the last point; without two
// points it spans the element box.
func (r *sceneRenderer) line(el Element, arrow bool) string {
	x1, y1, x2, y2 := el.X, el.Y, el.X+el.Width, el.Y+el.Height
	if n := len(el.Points); n >= 2 {
		first, last := el.Points[0], el.Points[n-1]
		x1, y1 = el.X+first[0], el.Y+first[1]
		x2, y2 = el.X+last[0], el.Y+last[1]
	}
	attrs := htmlutil.Attrs{
		{Key: "x1", Value: num(x1)},
		{Key: "y1", Value: num(y1)},
		{Key: "x2", Value: num(x2)},
		{Key: "y2", Value: num(y2)},
	}
	attrs = append(attrs, paint(el, "none")...)
	if arrow {
		attrs = append(attrs, htmlutil.Attr{Key: "marker-end", Value: "url(#" + r.marker(strokeOf(el)) + ")"})
	}
	return htmlutil.SelfClosingTag("line", attrs)
}

func (r *sceneRenderer) freedraw(el Element) string {
	if len(el.Points) == 0 {
		return ""
	}
	var d strings.Builder
	for i, p := range el.Points {
		if i == 0 {
			d.WriteString("M ")
		} else {
			d.WriteString(" L ")
		}
		d.WriteString(num(el.X + p[0]))
		d.WriteByte(' ')
		d.WriteString(num(el.Y + p[1]))
	}
	attrs := htmlutil.Attrs{{Key: "d", Value: d.String()}}
	attrs = append(attrs, paint(el, "none")...)
	attrs = append(attrs,
		htmlutil.Attr{Key: "stroke-linecap", Value: "round"},
		htmlutil.Attr{Key: "stroke-linejoin", Value: "round"},
	)
	return htmlutil.SelfClosingTag("path", attrs)
}

func (r *sceneRenderer) text(el Element) string {
	size := el.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	attrs := htmlutil.Attrs{
		{Key: "x", Value: num(el.X)},
		{Key: "y", Value: num(el.Y + size)},
		{Key: "fill", Value: strokeOf(el)},
		{Key: "font-size", Value: num(size)},
		{Key: "font-family", Value: el.FontFamily.CSS()},
		{Key: "opacity", Value: opacityOf(el)},
	}

	lines := strings.Split(el.Text, "\n")
	if len(lines) == 1 {
		return htmlutil.WrapWithTag("text", htmlutil.EscapeHTML(el.Text), attrs)
	}
	var content strings.Builder
	for i, line := range lines {
		dy := "0"
		if i > 0 {
			dy = num(size * 1.25)
		}
		content.WriteString(htmlutil.WrapWithTag("tspan", htmlutil.EscapeHTML(line), htmlutil.Attrs{
			{Key: "x", Value: num(el.X)},
			{Key: "dy", Value: dy},
		}))
	}
	return htmlutil.WrapWithTag("text", content.String(), attrs)
}

// marker returns the id of the arrowhead marker for color, registering it
// on first use.
func (r *sceneRenderer) marker(color string) string {
	for i, c := range r.markers {
		if c == color {
			return r.markerID(i)
		}
	}
	r.markers = append(r.markers, color)
	return r.markerID(len(r.markers) - 1)
}

func (r *sceneRenderer) markerID(i int) string {
	return r.prefix + "-arrow-" + strconv.Itoa(i)
}

func (r *sceneRenderer) defs() string {
	if len(r.markers) == 0 {
		return ""
	}
	var b strings.Builder
	for i, color := range r.markers {
		head := htmlutil.SelfClosingTag("path", htmlutil.Attrs{
			{Key: "d", Value: "M 0 0 L 10 5 L 0 10 z"},
			{Key: "fill", Value: color},
		})
		b.WriteString(htmlutil.WrapWithTag("marker", head, htmlutil.Attrs{
			{Key: "id", Value: r.markerID(i)},
			{Key: "viewBox", Value: "0 0 10 10"},
			{Key: "refX", Value: "9"},
			{Key: "refY", Value: "5"},
			{Key: "markerWidth", Value: "6"},
			{Key: "markerHeight", Value: "6"},
			{Key: "orient", Value: "auto-start-reverse"},
		}))
	}
	return htmlutil.WrapWithTag("defs", b.String(), nil)
}

func markerPrefix(id string) string {
	if id == "" {
		id = "scene"
	}
	return "excalidraw-" + id
}

// paint returns the stroke, fill and opacity attributes shared by shapes.
func paint(el Element, fill string) htmlutil.Attrs {
	width := el.StrokeWidth
	if width <= 0 {
		width = DefaultStrokeWidth
	}
	return htmlutil.Attrs{
		{Key: "stroke", Value: strokeOf(el)},
		{Key: "stroke-width", Value: num(width)},
		{Key: "fill", Value: fill},
		{Key: "opacity", Value: opacityOf(el)},
	}
}

func strokeOf(el Element) string {
	if el.StrokeColor == "" {
		return DefaultStroke
	}
	return el.StrokeColor
}

func fillOf(el Element) string {
	if el.BackgroundColor == "" {
		return DefaultFill
	}
	return el.BackgroundColor
}

// opacityOf maps the 0-100 scale to SVG's 0-1; unset means fully opaque.
func opacityOf(el Element) string {
	if el.Opacity == nil {
		return "1"
	}
	return num(*el.Opacity / 100)
}

func placeholder(opts Options, message string) string {
	width, height := float64(PlaceholderWidth), float64(PlaceholderHeight)
	if opts.Width > 0 {
		width = opts.Width
	}
	if opts.Height > 0 {
		height = opts.Height
	}
	frame := htmlutil.SelfClosingTag("rect", htmlutil.Attrs{
		{Key: "x", Value: "0"},
		{Key: "y", Value: "0"},
		{Key: "width", Value: num(width)},
		{Key: "height", Value: num(height)},
		{Key: "fill", Value: "#f8f9fa"},
		{Key: "stroke", Value: "#dee2e6"},
		{Key: "stroke-dasharray", Value: "4 4"},
	})
	label := htmlutil.WrapWithTag("text", htmlutil.EscapeHTML(message), htmlutil.Attrs{
		{Key: "x", Value: num(width / 2)},
		{Key: "y", Value: num(height / 2)},
		{Key: "text-anchor", Value: "middle"},
		{Key: "dominant-baseline", Value: "middle"},
		{Key: "fill", Value: "#6c757d"},
		{Key: "font-family", Value: "Arial"},
		{Key: "font-size", Value: "14"},
	})
	svg := htmlutil.WrapWithTag("svg", frame+label, htmlutil.Attrs{
		{Key: "xmlns", Value: svgNamespace},
		{Key: "class", Value: "excalidraw-placeholder"},
		{Key: "width", Value: num(width)},
		{Key: "height", Value: num(height)},
		{Key: "viewBox", Value: "0 0 " + num(width) + " " + num(height)},
	})
	return container(svg)
}

func container(svg string) string {
	return htmlutil.WrapWithTag("div", svg, htmlutil.Attrs{{Key: "class", Value: "excalidraw-container"}})
}

func num(f float64) string {
	return htmlutil.FormatFloat(f)
}
