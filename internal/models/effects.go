package models

import "encoding/json"

// BlendMode is a CSS mix-blend-mode keyword.
type BlendMode string

const (
	BlendNormal     BlendMode = "normal"
	BlendMultiply   BlendMode = "multiply"
	BlendScreen     BlendMode = "screen"
	BlendOverlay    BlendMode = "overlay"
	BlendDarken     BlendMode = "darken"
	BlendLighten    BlendMode = "lighten"
	BlendColorDodge BlendMode = "color-dodge"
	BlendColorBurn  BlendMode = "color-burn"
	BlendHardLight  BlendMode = "hard-light"
	BlendSoftLight  BlendMode = "soft-light"
	BlendDifference BlendMode = "difference"
	BlendExclusion  BlendMode = "exclusion"
)

// Neutral values of the scalar color adjustments.
const (
	NeutralBrightness = 100.0
	NeutralContrast   = 100.0
	NeutralSaturation = 100.0
	NeutralHue        = 0.0
)

// ShadowEffect is a drop shadow.
type ShadowEffect struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	OffsetX float64 `json:"offsetX" yaml:"offset_x"`
	OffsetY float64 `json:"offsetY" yaml:"offset_y"`
	Blur    float64 `json:"blur" yaml:"blur"`
	Spread  float64 `json:"spread" yaml:"spread"`
	Color   string  `json:"color" yaml:"color"`
	Opacity float64 `json:"opacity" yaml:"opacity"`
	Inset   bool    `json:"inset" yaml:"inset"`
}

// GlowEffect is an outer glow.
type GlowEffect struct {
	Enabled   bool    `json:"enabled" yaml:"enabled"`
	Color     string  `json:"color" yaml:"color"`
	Size      float64 `json:"size" yaml:"size"`
	Intensity float64 `json:"intensity" yaml:"intensity"`
}

// StrokeEffect outlines text and shapes. It is drawn as a paint attribute,
// not as a filter primitive.
type StrokeEffect struct {
	Enabled  bool          `json:"enabled"`
	Width    float64       `json:"width"`
	Color    ColorSettings `json:"color"`
	Position string        `json:"position"` // inside, center, outside
}

// VisualEffects groups every per-layer effect.
type VisualEffects struct {
	Shadow     ShadowEffect `json:"shadow"`
	Glow       GlowEffect   `json:"glow"`
	Stroke     StrokeEffect `json:"stroke"`
	Blur       float64      `json:"blur"`
	Brightness float64      `json:"brightness"`
	Contrast   float64      `json:"contrast"`
	Saturation float64      `json:"saturation"`
	Hue        float64      `json:"hue"`
	BlendMode  BlendMode    `json:"blendMode"`
}

// NeutralEffects returns an effects block that renders nothing.
func NeutralEffects() VisualEffects {
	return VisualEffects{
		Shadow: ShadowEffect{
			OffsetX: 4,
			OffsetY: 4,
			Blur:    8,
			Color:   "#000000",
			Opacity: 0.25,
		},
		Glow: GlowEffect{
			Color:     "#ffffff",
			Size:      10,
			Intensity: 0.5,
		},
		Stroke: StrokeEffect{
			Width:    2,
			Color:    SolidColor("#000000"),
			Position: "outside",
		},
		Brightness: NeutralBrightness,
		Contrast:   NeutralContrast,
		Saturation: NeutralSaturation,
		Hue:        NeutralHue,
		BlendMode:  BlendNormal,
	}
}

// HasColorAdjustment reports whether any scalar color adjustment differs
// from neutral.
func (e VisualEffects) HasColorAdjustment() bool {
	return e.Brightness != NeutralBrightness ||
		e.Contrast != NeutralContrast ||
		e.Saturation != NeutralSaturation ||
		e.Hue != NeutralHue
}

// UnmarshalJSON starts from NeutralEffects so omitted adjustments stay
// neutral instead of collapsing to zero brightness.
func (e *VisualEffects) UnmarshalJSON(data []byte) error {
	type alias VisualEffects
	a := alias(NeutralEffects())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = VisualEffects(a)
	return nil
}
