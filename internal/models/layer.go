package models

import "github.com/jinzhu/copier"

// LayerType discriminates the layer variants.
type LayerType string

const (
	LayerTypeText       LayerType = "text"
	LayerTypeShape      LayerType = "shape"
	LayerTypeIcon       LayerType = "icon"
	LayerTypeBackground LayerType = "background"
)

// Valid reports whether t names a known layer variant.
func (t LayerType) Valid() bool {
	switch t {
	case LayerTypeText, LayerTypeShape, LayerTypeIcon, LayerTypeBackground:
		return true
	}
	return false
}

// ShapeType selects the geometry of a shape layer.
type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapeEllipse   ShapeType = "ellipse"
	ShapeTriangle  ShapeType = "triangle"
	ShapePolygon   ShapeType = "polygon"
	ShapeStar      ShapeType = "star"
	ShapeCustom    ShapeType = "custom"
)

// Layer is one paintable unit of a scene. The attributes shared by every
// variant live on Layer; the variant-specific data lives in Payload, whose
// concrete type always matches Type.
type Layer struct {
	ID        string
	Name      string
	Type      LayerType
	Visible   bool
	Locked    bool
	Opacity   float64
	BlendMode BlendMode
	ZIndex    int
	Transform LayerTransform
	Effects   VisualEffects
	Animation LayerAnimation
	Payload   LayerPayload
}

// LayerPayload is implemented by *TextPayload, *ShapePayload, *IconPayload
// and *BackgroundPayload only.
type LayerPayload interface {
	LayerType() LayerType
	clonePayload() LayerPayload
}

// FontSettings is the typography of a text layer.
type FontSettings struct {
	Family         string  `json:"family"`
	Size           float64 `json:"size"`
	Weight         string  `json:"weight"`
	Style          string  `json:"style"`
	LineHeight     float64 `json:"lineHeight"`
	LetterSpacing  float64 `json:"letterSpacing"`
	TextTransform  string  `json:"textTransform"`
	TextDecoration string  `json:"textDecoration"`
}

// DefaultFont returns the font new text layers start with.
func DefaultFont() FontSettings {
	return FontSettings{
		Family:         "Inter, sans-serif",
		Size:           48,
		Weight:         "700",
		Style:          "normal",
		LineHeight:     1.2,
		TextTransform:  "none",
		TextDecoration: "none",
	}
}

// TextPayload is the variant data of a text layer.
type TextPayload struct {
	Content       string
	Font          FontSettings
	Color         ColorSettings
	TextAlign     string
	VerticalAlign string
}

// ShapeStroke is the outline owned by a shape layer.
type ShapeStroke struct {
	Enabled bool    `json:"enabled"`
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
}

// ShapePayload is the variant data of a shape layer. Sides and InnerRadius
// only apply to polygons and stars.
type ShapePayload struct {
	ShapeType    ShapeType
	Width        float64
	Height       float64
	Fill         ColorSettings
	CornerRadius float64
	Sides        int
	InnerRadius  float64
	Stroke       *ShapeStroke
}

// IconPayload is the variant data of an icon layer.
type IconPayload struct {
	IconName string
	Size     float64
	Color    ColorSettings
}

// BackgroundPayload is the variant data of a background layer. Backgrounds
// always cover the full canvas.
type BackgroundPayload struct {
	Fill ColorSettings
}

func (*TextPayload) LayerType() LayerType       { return LayerTypeText }
func (*ShapePayload) LayerType() LayerType      { return LayerTypeShape }
func (*IconPayload) LayerType() LayerType       { return LayerTypeIcon }
func (*BackgroundPayload) LayerType() LayerType { return LayerTypeBackground }

func (p *TextPayload) clonePayload() LayerPayload {
	out := &TextPayload{}
	deepCopy(out, p)
	return out
}

func (p *ShapePayload) clonePayload() LayerPayload {
	out := &ShapePayload{}
	deepCopy(out, p)
	return out
}

func (p *IconPayload) clonePayload() LayerPayload {
	out := &IconPayload{}
	deepCopy(out, p)
	return out
}

func (p *BackgroundPayload) clonePayload() LayerPayload {
	out := &BackgroundPayload{}
	deepCopy(out, p)
	return out
}

// Text returns the text payload, or nil for other variants.
func (l *Layer) Text() *TextPayload {
	p, _ := l.Payload.(*TextPayload)
	return p
}

// Shape returns the shape payload, or nil for other variants.
func (l *Layer) Shape() *ShapePayload {
	p, _ := l.Payload.(*ShapePayload)
	return p
}

// Icon returns the icon payload, or nil for other variants.
func (l *Layer) Icon() *IconPayload {
	p, _ := l.Payload.(*IconPayload)
	return p
}

// Background returns the background payload, or nil for other variants.
func (l *Layer) Background() *BackgroundPayload {
	p, _ := l.Payload.(*BackgroundPayload)
	return p
}

// Clone returns a deep copy that shares no memory with l.
func (l Layer) Clone() Layer {
	out := l
	out.Effects = VisualEffects{}
	deepCopy(&out.Effects, &l.Effects)
	if l.Payload != nil {
		out.Payload = l.Payload.clonePayload()
	}
	return out
}

// deepCopy copies src into dst, which must be pointers to the same struct
// type. Same-type copies cannot fail in copier, so the error is dropped.
func deepCopy(dst, src any) {
	_ = copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true})
}
