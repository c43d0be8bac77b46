package models

import "encoding/json"

// ColorType selects which paint of a ColorSettings is active.
type ColorType string

const (
	ColorTypeSolid    ColorType = "solid"
	ColorTypeGradient ColorType = "gradient"
	ColorTypePattern  ColorType = "pattern"
)

// GradientType represents the geometry of a gradient paint.
type GradientType string

const (
	GradientTypeLinear GradientType = "linear"
	GradientTypeRadial GradientType = "radial"
	GradientTypeConic  GradientType = "conic"
)

// ColorSettings is a tagged choice between a solid color, a gradient and a
// pattern reference. Only the paint named by Type is used for rendering; the
// others are kept so the editor can switch back without losing state.
type ColorSettings struct {
	Type     ColorType        `json:"type"`
	Solid    string           `json:"solid"`
	Gradient GradientSettings `json:"gradient"`
	Pattern  string           `json:"pattern,omitempty"`
	Opacity  float64          `json:"opacity"` // 0-1, applied on top of stop opacity
}

// GradientSettings describes a gradient paint.
type GradientSettings struct {
	Type    GradientType   `json:"type"`
	Angle   float64        `json:"angle"`   // linear only, degrees
	CenterX float64        `json:"centerX"` // radial/conic, percent
	CenterY float64        `json:"centerY"` // radial/conic, percent
	Stops   []GradientStop `json:"stops"`
}

// GradientStop is one color stop. Stops are rendered in slice order; the
// Position values are not required to be sorted.
type GradientStop struct {
	Color    string   `json:"color"`
	Position float64  `json:"position"` // 0-100
	Opacity  *float64 `json:"opacity,omitempty"`
}

// SolidColor returns an opaque solid paint.
func SolidColor(hex string) ColorSettings {
	return ColorSettings{
		Type:     ColorTypeSolid,
		Solid:    hex,
		Gradient: DefaultGradient(),
		Opacity:  1,
	}
}

// LinearGradient returns a linear gradient paint with the given stops.
func LinearGradient(angle float64, stops ...GradientStop) ColorSettings {
	c := SolidColor("#000000")
	c.Type = ColorTypeGradient
	c.Gradient = GradientSettings{
		Type:    GradientTypeLinear,
		Angle:   angle,
		CenterX: 50,
		CenterY: 50,
		Stops:   stops,
	}
	if len(stops) > 0 {
		c.Solid = stops[0].Color
	}
	return c
}

// DefaultGradient is the advisory gradient carried by solid paints.
func DefaultGradient() GradientSettings {
	return GradientSettings{
		Type:    GradientTypeLinear,
		Angle:   90,
		CenterX: 50,
		CenterY: 50,
		Stops: []GradientStop{
			{Color: "#3b82f6", Position: 0},
			{Color: "#8b5cf6", Position: 100},
		},
	}
}

// UnmarshalJSON fills omitted fields with an opaque solid paint so partially
// specified colors still render.
func (c *ColorSettings) UnmarshalJSON(data []byte) error {
	type alias ColorSettings
	a := alias{Type: ColorTypeSolid, Opacity: 1}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = ColorSettings(a)
	return nil
}
