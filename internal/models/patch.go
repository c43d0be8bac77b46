package models

// LayerPatch is a partial layer update. Nil fields are left untouched; set
// fields replace the current value wholesale (a shallow merge). Variant
// fields that do not belong to the target layer's type are ignored, and the
// id and type of a layer can never be patched.
type LayerPatch struct {
	Name      *string         `json:"name,omitempty"`
	Visible   *bool           `json:"visible,omitempty"`
	Locked    *bool           `json:"locked,omitempty"`
	Opacity   *float64        `json:"opacity,omitempty"`
	BlendMode *BlendMode      `json:"blendMode,omitempty"`
	ZIndex    *int            `json:"zIndex,omitempty"`
	Transform *LayerTransform `json:"transform,omitempty"`
	Effects   *VisualEffects  `json:"effects,omitempty"`
	Animation *LayerAnimation `json:"animation,omitempty"`

	Content       *string        `json:"content,omitempty"`
	Font          *FontSettings  `json:"font,omitempty"`
	TextAlign     *string        `json:"textAlign,omitempty"`
	VerticalAlign *string        `json:"verticalAlign,omitempty"`
	Color         *ColorSettings `json:"color,omitempty"`

	ShapeType    *ShapeType     `json:"shapeType,omitempty"`
	Width        *float64       `json:"width,omitempty"`
	Height       *float64       `json:"height,omitempty"`
	CornerRadius *float64       `json:"cornerRadius,omitempty"`
	Sides        *int           `json:"sides,omitempty"`
	InnerRadius  *float64       `json:"innerRadius,omitempty"`
	Stroke       *ShapeStroke   `json:"stroke,omitempty"`
	Fill         *ColorSettings `json:"fill,omitempty"`

	IconName *string  `json:"iconName,omitempty"`
	Size     *float64 `json:"size,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p LayerPatch) IsEmpty() bool {
	return p == LayerPatch{}
}

// ApplyTo merges the patch into l.
func (p LayerPatch) ApplyTo(l *Layer) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Visible != nil {
		l.Visible = *p.Visible
	}
	if p.Locked != nil {
		l.Locked = *p.Locked
	}
	if p.Opacity != nil {
		l.Opacity = *p.Opacity
	}
	if p.BlendMode != nil {
		l.BlendMode = *p.BlendMode
	}
	if p.ZIndex != nil {
		l.ZIndex = *p.ZIndex
	}
	if p.Transform != nil {
		l.Transform = *p.Transform
	}
	if p.Effects != nil {
		e := VisualEffects{}
		deepCopy(&e, p.Effects)
		l.Effects = e
	}
	if p.Animation != nil {
		l.Animation = *p.Animation
	}

	switch v := l.Payload.(type) {
	case *TextPayload:
		setIf(&v.Content, p.Content)
		setIf(&v.Font, p.Font)
		setIf(&v.TextAlign, p.TextAlign)
		setIf(&v.VerticalAlign, p.VerticalAlign)
		setColor(&v.Color, p.Color)
	case *ShapePayload:
		setIf(&v.ShapeType, p.ShapeType)
		setIf(&v.Width, p.Width)
		setIf(&v.Height, p.Height)
		setIf(&v.CornerRadius, p.CornerRadius)
		setIf(&v.Sides, p.Sides)
		setIf(&v.InnerRadius, p.InnerRadius)
		setColor(&v.Fill, p.Fill)
		if p.Stroke != nil {
			s := *p.Stroke
			v.Stroke = &s
		}
	case *IconPayload:
		setIf(&v.IconName, p.IconName)
		setIf(&v.Size, p.Size)
		setColor(&v.Color, p.Color)
	case *BackgroundPayload:
		setColor(&v.Fill, p.Fill)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setColor(dst *ColorSettings, src *ColorSettings) {
	if src == nil {
		return
	}
	c := ColorSettings{}
	deepCopy(&c, src)
	*dst = c
}
