package models

// CanvasSettings describes the drawing surface.
type CanvasSettings struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	BackgroundColor string  `json:"backgroundColor"`
}

// DefaultCanvas is the canvas new sessions start with.
func DefaultCanvas() CanvasSettings {
	return CanvasSettings{Width: 400, Height: 400, BackgroundColor: "#ffffff"}
}

// Scene is the full editable state: canvas settings plus the ordered layers.
// Layer ids are unique within a scene.
type Scene struct {
	Canvas CanvasSettings `json:"canvasSettings"`
	Layers []Layer        `json:"layers"`
}

// Clone returns a deep copy whose layers share no memory with s.
func (s Scene) Clone() Scene {
	out := Scene{
		Canvas: s.Canvas,
		Layers: make([]Layer, len(s.Layers)),
	}
	for i, l := range s.Layers {
		out.Layers[i] = l.Clone()
	}
	return out
}

// IndexOf returns the slice index of the layer with the given id, or -1.
func (s Scene) IndexOf(id string) int {
	for i := range s.Layers {
		if s.Layers[i].ID == id {
			return i
		}
	}
	return -1
}
