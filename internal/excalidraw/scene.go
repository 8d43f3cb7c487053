// Package excalidraw renders embedded Excalidraw scenes to inline SVG.
//
// A scene is a flat list of shape elements. Rendering computes the bounding
// box of the visible elements, pads it into a coordinate frame and draws each
// element in order, so later elements paint over earlier ones.
package excalidraw

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidScene is returned when scene data cannot be decoded.
var ErrInvalidScene = errors.New("invalid excalidraw scene")

// Scene is a decoded Excalidraw document.
type Scene struct {
	Elements []Element `json:"elements"`
	AppState AppState  `json:"appState"`
}

// AppState holds the scene-wide settings the renderer uses.
type AppState struct {
	ViewBackgroundColor string `json:"viewBackgroundColor"`
}

// Element is one shape of a scene.
type Element struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	X               float64    `json:"x"`
	Y               float64    `json:"y"`
	Width           float64    `json:"width"`
	Height          float64    `json:"height"`
	Points          []Point    `json:"points"`
	StrokeColor     string     `json:"strokeColor"`
	BackgroundColor string     `json:"backgroundColor"`
	StrokeWidth     float64    `json:"strokeWidth"`
	Opacity         *float64   `json:"opacity"`
	Roundness       *Roundness `json:"roundness"`
	Text            string     `json:"text"`
	FontSize        float64    `json:"fontSize"`
	FontFamily      FontFamily `json:"fontFamily"`
	IsDeleted       bool       `json:"isDeleted"`
}

// Point is an [x, y] offset relative to the element origin.
type Point [2]float64

// Roundness marks a shape with rounded corners.
type Roundness struct {
	Type int `json:"type"`
}

// FontFamily is either an Excalidraw font number or a font name.
type FontFamily struct {
	Code int
	Name string
}

// UnmarshalJSON accepts a number or a string.
func (f *FontFamily) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &f.Name)
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(data, &f.Code)
}

// CSS returns the font-family value for the text element.
func (f FontFamily) CSS() string {
	if f.Name != "" {
		return f.Name
	}
	switch f.Code {
	case 1:
		return "Virgil"
	case 2:
		return "Helvetica"
	case 3:
		return "Cascadia"
	default:
		return "Arial"
	}
}

// Parse decodes scene JSON.
func Parse(data []byte) (*Scene, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no scene data", ErrInvalidScene)
	}
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return &s, nil
}

// Visible returns the elements that are not deleted, in scene order.
func (s *Scene) Visible() []Element {
	out := make([]Element, 0, len(s.Elements))
	for _, el := range s.Elements {
		if !el.IsDeleted {
			out = append(out, el)
		}
	}
	return out
}
