package excalidraw

import "math"

// Padding is the margin added around the content bounds.
const Padding = 20

// Minimum visible size when no display dimensions are given.
const (
	MinWidth  = 200
	MinHeight = 150
)

// Bounds is an axis-aligned bounding box in scene coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Frame is the padded coordinate system used as the SVG viewBox.
type Frame struct {
	X, Y, Width, Height float64
}

// ComputeBounds returns the box enclosing every element's rectangle and,
// for point-based shapes, every point offset by the element origin.
// Callers pass visible elements only; an empty slice yields a zero box.
func ComputeBounds(elements []Element) Bounds {
	if len(elements) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
	for _, el := range elements {
		b.include(el.X, el.Y)
		b.include(el.X+el.Width, el.Y+el.Height)
		if hasPoints(el.Type) {
			for _, p := range el.Points {
				b.include(el.X+p[0], el.Y+p[1])
			}
		}
	}
	return b
}

func (b *Bounds) include(x, y float64) {
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxX = math.Max(b.MaxX, x)
	b.MaxY = math.Max(b.MaxY, y)
}

// Frame pads b by Padding on every side.
func (b Bounds) Frame() Frame {
	return Frame{
		X:      b.MinX - Padding,
		Y:      b.MinY - Padding,
		Width:  b.MaxX - b.MinX + 2*Padding,
		Height: b.MaxY - b.MinY + 2*Padding,
	}
}

// VisibleSize picks the rendered width and height: explicit display
// dimensions win, otherwise the frame extent floored at MinWidth x MinHeight.
func (f Frame) VisibleSize(displayWidth, displayHeight float64) (float64, float64) {
	w, h := math.Max(f.Width, MinWidth), math.Max(f.Height, MinHeight)
	if displayWidth > 0 {
		w = displayWidth
	}
	if displayHeight > 0 {
		h = displayHeight
	}
	return w, h
}

func hasPoints(elementType string) bool {
	switch elementType {
	case "freedraw", "line", "arrow":
		return true
	}
	return false
}
