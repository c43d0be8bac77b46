package models

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// layerWire is the flat layout layers are persisted and exchanged in: the
// shared attributes plus every variant field, discriminated by "type".
type layerWire struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      LayerType      `json:"type"`
	Visible   bool           `json:"visible"`
	Locked    bool           `json:"locked"`
	Opacity   float64        `json:"opacity"`
	BlendMode BlendMode      `json:"blendMode"`
	ZIndex    int            `json:"zIndex"`
	Transform LayerTransform `json:"transform"`
	Effects   VisualEffects  `json:"effects"`
	Animation LayerAnimation `json:"animation"`

	// text
	Content       string        `json:"content,omitempty"`
	Font          *FontSettings `json:"font,omitempty"`
	TextAlign     string        `json:"textAlign,omitempty"`
	VerticalAlign string        `json:"verticalAlign,omitempty"`

	// text, icon
	Color *ColorSettings `json:"color,omitempty"`

	// shape
	ShapeType    ShapeType    `json:"shapeType,omitempty"`
	Width        float64      `json:"width,omitempty"`
	Height       float64      `json:"height,omitempty"`
	CornerRadius float64      `json:"cornerRadius,omitempty"`
	Sides        int          `json:"sides,omitempty"`
	InnerRadius  float64      `json:"innerRadius,omitempty"`
	Stroke       *ShapeStroke `json:"stroke,omitempty"`

	// shape, background
	Fill *ColorSettings `json:"fill,omitempty"`

	// icon
	IconName string  `json:"iconName,omitempty"`
	Size     float64 `json:"size,omitempty"`
}

func newLayerWire() layerWire {
	return layerWire{
		Visible:   true,
		Opacity:   1,
		BlendMode: BlendNormal,
		Transform: IdentityTransform(),
		Effects:   NeutralEffects(),
		Animation: DefaultAnimation(),
	}
}

func (l Layer) toWire() layerWire {
	w := layerWire{
		ID:        l.ID,
		Name:      l.Name,
		Type:      l.Type,
		Visible:   l.Visible,
		Locked:    l.Locked,
		Opacity:   l.Opacity,
		BlendMode: l.BlendMode,
		ZIndex:    l.ZIndex,
		Transform: l.Transform,
		Effects:   l.Effects,
		Animation: l.Animation,
	}

	switch p := l.Payload.(type) {
	case *TextPayload:
		w.Content = p.Content
		w.Font = &p.Font
		w.Color = &p.Color
		w.TextAlign = p.TextAlign
		w.VerticalAlign = p.VerticalAlign
	case *ShapePayload:
		w.ShapeType = p.ShapeType
		w.Width = p.Width
		w.Height = p.Height
		w.Fill = &p.Fill
		w.CornerRadius = p.CornerRadius
		w.Sides = p.Sides
		w.InnerRadius = p.InnerRadius
		w.Stroke = p.Stroke
	case *IconPayload:
		w.IconName = p.IconName
		w.Size = p.Size
		w.Color = &p.Color
	case *BackgroundPayload:
		w.Fill = &p.Fill
	}
	return w
}

func (w layerWire) toLayer() (Layer, error) {
	l := Layer{
		ID:        w.ID,
		Name:      w.Name,
		Type:      w.Type,
		Visible:   w.Visible,
		Locked:    w.Locked,
		Opacity:   w.Opacity,
		BlendMode: w.BlendMode,
		ZIndex:    w.ZIndex,
		Transform: w.Transform,
		Effects:   w.Effects,
		Animation: w.Animation,
	}

	switch w.Type {
	case LayerTypeText:
		p := &TextPayload{
			Content:       w.Content,
			Font:          DefaultFont(),
			Color:         SolidColor("#000000"),
			TextAlign:     w.TextAlign,
			VerticalAlign: w.VerticalAlign,
		}
		if w.Font != nil {
			p.Font = *w.Font
		}
		if w.Color != nil {
			p.Color = *w.Color
		}
		l.Payload = p
	case LayerTypeShape:
		p := &ShapePayload{
			ShapeType:    w.ShapeType,
			Width:        w.Width,
			Height:       w.Height,
			Fill:         SolidColor("#000000"),
			CornerRadius: w.CornerRadius,
			Sides:        w.Sides,
			InnerRadius:  w.InnerRadius,
			Stroke:       w.Stroke,
		}
		if w.Fill != nil {
			p.Fill = *w.Fill
		}
		l.Payload = p
	case LayerTypeIcon:
		p := &IconPayload{
			IconName: w.IconName,
			Size:     w.Size,
			Color:    SolidColor("#000000"),
		}
		if w.Color != nil {
			p.Color = *w.Color
		}
		l.Payload = p
	case LayerTypeBackground:
		p := &BackgroundPayload{Fill: SolidColor("#ffffff")}
		if w.Fill != nil {
			p.Fill = *w.Fill
		}
		l.Payload = p
	default:
		return Layer{}, fmt.Errorf("unknown layer type %q", w.Type)
	}
	return l, nil
}

// MarshalJSON writes the flat layer layout.
func (l Layer) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.toWire())
}

// UnmarshalJSON reads the flat layer layout. Omitted shared attributes fall
// back to a visible, opaque layer with identity transform.
func (l *Layer) UnmarshalJSON(data []byte) error {
	w := newLayerWire()
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out, err := w.toLayer()
	if err != nil {
		return err
	}
	*l = out
	return nil
}

var (
	_ msgpack.CustomEncoder = Layer{}
	_ msgpack.CustomDecoder = (*Layer)(nil)
)

// EncodeMsgpack writes the same flat layout as MarshalJSON.
func (l Layer) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(l.toWire())
}

// DecodeMsgpack reads the flat layout written by EncodeMsgpack.
func (l *Layer) DecodeMsgpack(dec *msgpack.Decoder) error {
	w := newLayerWire()
	if err := dec.Decode(&w); err != nil {
		return err
	}
	out, err := w.toLayer()
	if err != nil {
		return err
	}
	*l = out
	return nil
}
