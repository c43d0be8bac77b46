package models

import "encoding/json"

// Position is a point in canvas coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayerTransform places a layer on the canvas.
type LayerTransform struct {
	Position Position `json:"position"`
	Rotation float64  `json:"rotation"` // degrees
	ScaleX   float64  `json:"scaleX"`
	ScaleY   float64  `json:"scaleY"`
	SkewX    float64  `json:"skewX"` // degrees
	SkewY    float64  `json:"skewY"` // degrees
}

// IdentityTransform returns a transform that leaves geometry unchanged.
func IdentityTransform() LayerTransform {
	return LayerTransform{ScaleX: 1, ScaleY: 1}
}

// IsIdentity reports whether every component is the identity value.
func (t LayerTransform) IsIdentity() bool {
	return t.Position.X == 0 && t.Position.Y == 0 &&
		t.Rotation == 0 &&
		t.ScaleX == 1 && t.ScaleY == 1 &&
		t.SkewX == 0 && t.SkewY == 0
}

// UnmarshalJSON keeps the scale at 1 when it is omitted.
func (t *LayerTransform) UnmarshalJSON(data []byte) error {
	type alias LayerTransform
	a := alias(IdentityTransform())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = LayerTransform(a)
	return nil
}
