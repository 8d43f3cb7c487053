package excalidraw

// Notes:
// - Geometry: bounds include point offsets for point-based shapes; the frame
//   is padded by 20 on every side.
// - Render: placeholders for undecodable and empty scenes, element order
//   preserved, deleted elements skipped, defaults applied.
// - All attribute values pass through the tag builder, so injected quotes
//   cannot break out of an attribute.

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestComputeBounds - Geometry
// ---------------------------------------------------------------------------

func TestComputeBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		elements  []Element
		wantFrame Frame
	}{
		{
			name:      "single rectangle",
			elements:  []Element{{Type: "rectangle", X: 10, Y: 10, Width: 20, Height: 20}},
			wantFrame: Frame{X: -10, Y: -10, Width: 60, Height: 60},
		},
		{
			name: "freedraw points beyond box",
			elements: []Element{{
				Type: "freedraw", X: 0, Y: 0, Width: 10, Height: 10,
				Points: []Point{{0, 0}, {50, -30}},
			}},
			wantFrame: Frame{X: -20, Y: -50, Width: 90, Height: 80},
		},
		{
			name: "points ignored for rectangles",
			elements: []Element{{
				Type: "rectangle", X: 0, Y: 0, Width: 10, Height: 10,
				Points: []Point{{500, 500}},
			}},
			wantFrame: Frame{X: -20, Y: -20, Width: 50, Height: 50},
		},
		{
			name:      "empty",
			elements:  nil,
			wantFrame: Frame{X: -20, Y: -20, Width: 40, Height: 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ComputeBounds(tt.elements).Frame()
			if diff := cmp.Diff(tt.wantFrame, got); diff != "" {
				t.Errorf("Frame mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFrame_VisibleSize(t *testing.T) {
	t.Parallel()

	small := Frame{Width: 60, Height: 60}
	if w, h := small.VisibleSize(0, 0); w != MinWidth || h != MinHeight {
		t.Errorf("VisibleSize(0,0) = %v x %v, want floor %v x %v", w, h, MinWidth, MinHeight)
	}
	if w, h := small.VisibleSize(640, 480); w != 640 || h != 480 {
		t.Errorf("VisibleSize(640,480) = %v x %v", w, h)
	}
	large := Frame{Width: 900, Height: 300}
	if w, h := large.VisibleSize(0, 0); w != 900 || h != 300 {
		t.Errorf("VisibleSize(0,0) = %v x %v, want frame extent", w, h)
	}
}

// ---------------------------------------------------------------------------
// TestRender - SVG output
// ---------------------------------------------------------------------------

func TestRender_Rectangle(t *testing.T) {
	t.Parallel()

	got, err := Render([]byte(`{"elements":[{"type":"rectangle","x":10,"y":10,"width":20,"height":20}]}`), Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		`<div class="excalidraw-container"><svg `,
		`viewBox="-10 -10 60 60"`,
		`width="200" height="150"`,
		`<rect x="10" y="10" width="20" height="20" stroke="#000000" stroke-width="1" fill="transparent" opacity="1"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%s", want, got)
		}
	}
}

func TestRender_DisplayDimensions(t *testing.T) {
	t.Parallel()

	got, err := Render([]byte(`{"elements":[{"type":"ellipse","x":0,"y":0,"width":40,"height":20}]}`), Options{Width: 320, Height: 100})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(got, `width="320" height="100"`) {
		t.Errorf("Render() ignored display size:\n%s", got)
	}
	if !strings.Contains(got, `viewBox="-20 -20 80 60"`) {
		t.Errorf("Render() frame changed with display size:\n%s", got)
	}
	if !strings.Contains(got, `<ellipse cx="20" cy="10" rx="20" ry="10"`) {
		t.Errorf("Render() ellipse geometry wrong:\n%s", got)
	}
}

func TestRender_ShapesInOrder(t *testing.T) {
	t.Parallel()

	scene := `{"elements":[
		{"type":"diamond","x":0,"y":0,"width":20,"height":10},
		{"type":"line","x":0,"y":0,"points":[[0,0],[5,5],[10,0]]},
		{"type":"freedraw","x":1,"y":2,"points":[[0,0],[3,4]]},
		{"type":"text","x":0,"y":0,"text":"a\nb","fontSize":20,"fontFamily":1},
		{"type":"rectangle","x":0,"y":0,"width":10,"height":10,"isDeleted":true}
	]}`
	got, err := Render([]byte(scene), Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	order := []string{
		`<polygon points="10,0 20,5 10,10 0,5"`,
		`<line x1="0" y1="0" x2="10" y2="0"`,
		`<path d="M 1 2 L 4 6"`,
		`<text x="0" y="20"`,
	}
	last := -1
	for _, want := range order {
		idx := strings.Index(got, want)
		if idx < 0 {
			t.Fatalf("Render() missing %q in:\n%s", want, got)
		}
		if idx < last {
			t.Errorf("Render() %q out of order", want)
		}
		last = idx
	}

	if strings.Contains(got, "<rect x=\"0\" y=\"0\" width=\"10\"") {
		t.Error("Render() drew a deleted element")
	}
	if !strings.Contains(got, `font-family="Virgil"`) {
		t.Error("Render() did not map font family 1")
	}
	if !strings.Contains(got, `<tspan x="0" dy="0">a</tspan><tspan x="0" dy="25">b</tspan>`) {
		t.Errorf("Render() multi-line text wrong:\n%s", got)
	}
}

func TestRender_ArrowMarkers(t *testing.T) {
	t.Parallel()

	scene := `{"elements":[
		{"type":"arrow","x":0,"y":0,"points":[[0,0],[10,10]],"strokeColor":"#ff0000"},
		{"type":"arrow","x":0,"y":0,"points":[[0,0],[20,0]],"strokeColor":"#ff0000"},
		{"type":"arrow","x":0,"y":0,"points":[[0,0],[0,20]]}
	]}`
	got, err := Render([]byte(scene), Options{ID: "abc"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if n := strings.Count(got, "<marker "); n != 2 {
		t.Errorf("Render() marker count = %d, want 2 (one per color)", n)
	}
	if !strings.Contains(got, `marker-end="url(#excalidraw-abc-arrow-0)"`) {
		t.Errorf("Render() missing first marker reference:\n%s", got)
	}
	if !strings.Contains(got, `id="excalidraw-abc-arrow-1"`) {
		t.Errorf("Render() missing second marker:\n%s", got)
	}
	if strings.Index(got, "<defs>") > strings.Index(got, "<line") {
		t.Error("Render() defs must precede shapes")
	}
}

func TestRender_StyleValues(t *testing.T) {
	t.Parallel()

	scene := `{
		"elements":[{"type":"rectangle","x":0,"y":0,"width":50,"height":30,
			"strokeColor":"#1e1e1e","backgroundColor":"#ffc9c9","strokeWidth":2,"opacity":50,
			"roundness":{"type":3}}],
		"appState":{"viewBackgroundColor":"#f0f0f0"}
	}`
	got, err := Render([]byte(scene), Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{
		`rx="3" ry="3"`,
		`stroke="#1e1e1e" stroke-width="2" fill="#ffc9c9" opacity="0.5"`,
		`<rect x="-20" y="-20" width="90" height="70" fill="#f0f0f0"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%s", want, got)
		}
	}
}

func TestRender_ZeroOpacity(t *testing.T) {
	t.Parallel()

	got, err := Render([]byte(`{"elements":[{"type":"ellipse","x":0,"y":0,"width":4,"height":4,"opacity":0}]}`), Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(got, `opacity="0"`) {
		t.Errorf("Render() explicit zero opacity lost:\n%s", got)
	}
}

func TestRender_EscapesAttributes(t *testing.T) {
	t.Parallel()

	scene := `{"elements":[{"type":"text","x":0,"y":0,"text":"<b>&</b>","strokeColor":"\"><script>"}]}`
	got, err := Render([]byte(scene), Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(got, "<script>") || strings.Contains(got, "<b>") {
		t.Errorf("Render() leaked markup:\n%s", got)
	}
	if !strings.Contains(got, "&lt;b&gt;&amp;&lt;/b&gt;") {
		t.Errorf("Render() text not escaped:\n%s", got)
	}
}

// ---------------------------------------------------------------------------
// TestRender_Placeholders - Degraded input
// ---------------------------------------------------------------------------

func TestRender_Placeholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      string
		opts      Options
		wantErr   bool
		wantSize  string
		wantLabel string
	}{
		{name: "invalid json", data: `{nope`, wantErr: true, wantSize: `width="400" height="200"`, wantLabel: "Unable to display drawing"},
		{name: "no data", data: ``, wantErr: true, wantSize: `width="400" height="200"`, wantLabel: "Unable to display drawing"},
		{name: "no elements", data: `{"elements":[]}`, wantSize: `width="400" height="200"`, wantLabel: "Empty drawing"},
		{name: "only deleted", data: `{"elements":[{"type":"rectangle","isDeleted":true}]}`, wantSize: `width="400" height="200"`, wantLabel: "Empty drawing"},
		{name: "display size", data: `{"elements":[]}`, opts: Options{Width: 120, Height: 80}, wantSize: `width="120" height="80"`, wantLabel: "Empty drawing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Render([]byte(tt.data), tt.opts)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidScene) {
					t.Errorf("Render() error = %v, want ErrInvalidScene", err)
				}
			} else if err != nil {
				t.Errorf("Render() unexpected error = %v", err)
			}
			if !strings.Contains(got, `class="excalidraw-placeholder"`) {
				t.Errorf("Render() not a placeholder:\n%s", got)
			}
			if !strings.Contains(got, tt.wantSize) {
				t.Errorf("Render() placeholder size missing %q:\n%s", tt.wantSize, got)
			}
			if !strings.Contains(got, tt.wantLabel) {
				t.Errorf("Render() placeholder label missing %q", tt.wantLabel)
			}
		})
	}
}

func TestFontFamily_CSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   FontFamily
		want string
	}{
		{FontFamily{Code: 1}, "Virgil"},
		{FontFamily{Code: 2}, "Helvetica"},
		{FontFamily{Code: 3}, "Cascadia"},
		{FontFamily{Code: 9}, "Arial"},
		{FontFamily{Name: "Comic Sans"}, "Comic Sans"},
	}
	for _, tt := range tests {
		if got := tt.in.CSS(); got != tt.want {
			t.Errorf("%+v.CSS() = %q, want %q", tt.in, got, tt.want)
		}
	}
}
