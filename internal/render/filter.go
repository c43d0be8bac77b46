package render

import (
	"math"
	"strings"

	"github.com/logo-studio/backend/internal/models"
)

// PrimitiveKind identifies a filter primitive.
type PrimitiveKind int

const (
	PrimitiveDropShadow PrimitiveKind = iota
	PrimitiveGlow
	PrimitiveBlur
	PrimitiveColorMatrix
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveDropShadow:
		return "drop-shadow"
	case PrimitiveGlow:
		return "glow"
	case PrimitiveBlur:
		return "blur"
	case PrimitiveColorMatrix:
		return "color-matrix"
	}
	return "unknown"
}

// FilterPrimitive is one step of a filter chain. Only the fields relevant
// to Kind are set.
type FilterPrimitive struct {
	Kind         PrimitiveKind
	DX, DY       float64
	StdDeviation float64
	Color        string
	Opacity      float64
	Matrix       [20]float64 // row-major 4x5, PrimitiveColorMatrix only
}

// FilterDescription is the ordered primitive chain of a layer filter.
type FilterDescription struct {
	Primitives []FilterPrimitive
}

// FilterID is the def id of a layer's filter.
func FilterID(layerID string) string {
	return "filter-" + layerID
}

// ResolveFilter builds the filter chain for an effects block, or returns nil
// when nothing would change the layer. Primitives always come in the order
// drop shadow, glow, blur, color matrix because each reads the previous
// result. Stroke is not a filter and is ignored here.
func ResolveFilter(e models.VisualEffects) *FilterDescription {
	var prims []FilterPrimitive

	if e.Shadow.Enabled {
		dx, dy := e.Shadow.OffsetX, e.Shadow.OffsetY
		if e.Shadow.Inset {
			// approximated by casting the shadow back over the shape
			dx, dy = -dx, -dy
		}
		prims = append(prims, FilterPrimitive{
			Kind:         PrimitiveDropShadow,
			DX:           dx,
			DY:           dy,
			StdDeviation: math.Max(e.Shadow.Blur, 0) / 2,
			Color:        e.Shadow.Color,
			Opacity:      clamp01(e.Shadow.Opacity),
		})
	}

	if e.Glow.Enabled {
		prims = append(prims, FilterPrimitive{
			Kind:         PrimitiveGlow,
			StdDeviation: math.Max(e.Glow.Size, 0) / 2,
			Color:        e.Glow.Color,
			Opacity:      clamp01(e.Glow.Intensity),
		})
	}

	if e.Blur > 0 {
		prims = append(prims, FilterPrimitive{
			Kind:         PrimitiveBlur,
			StdDeviation: e.Blur,
		})
	}

	if e.HasColorAdjustment() {
		prims = append(prims, FilterPrimitive{
			Kind:   PrimitiveColorMatrix,
			Matrix: colorAdjustMatrix(e.Brightness, e.Contrast, e.Saturation, e.Hue),
		})
	}

	if len(prims) == 0 {
		return nil
	}
	return &FilterDescription{Primitives: prims}
}

func writeFilter(b *strings.Builder, id string, f *FilterDescription) {
	b.WriteString(`<filter id="` + esc(id) + `" x="-50%" y="-50%" width="200%" height="200%">`)
	in := "SourceGraphic"
	for i, p := range f.Primitives {
		out := p.Kind.String() + "-" + num(float64(i))
		switch p.Kind {
		case PrimitiveDropShadow:
			b.WriteString(`<feDropShadow in="` + in + `" dx="` + num(p.DX) + `" dy="` + num(p.DY) +
				`" stdDeviation="` + num(p.StdDeviation) + `" flood-color="` + esc(p.Color) +
				`" flood-opacity="` + num(p.Opacity) + `" result="` + out + `"/>`)
		case PrimitiveGlow:
			b.WriteString(`<feGaussianBlur in="SourceAlpha" stdDeviation="` + num(p.StdDeviation) + `" result="` + out + `-blur"/>`)
			b.WriteString(`<feFlood flood-color="` + esc(p.Color) + `" flood-opacity="` + num(p.Opacity) + `" result="` + out + `-color"/>`)
			b.WriteString(`<feComposite in="` + out + `-color" in2="` + out + `-blur" operator="in" result="` + out + `-halo"/>`)
			b.WriteString(`<feMerge result="` + out + `"><feMergeNode in="` + out + `-halo"/><feMergeNode in="` + in + `"/></feMerge>`)
		case PrimitiveBlur:
			b.WriteString(`<feGaussianBlur in="` + in + `" stdDeviation="` + num(p.StdDeviation) + `" result="` + out + `"/>`)
		case PrimitiveColorMatrix:
			vals := make([]string, len(p.Matrix))
			for j, v := range p.Matrix {
				vals[j] = num(v)
			}
			b.WriteString(`<feColorMatrix in="` + in + `" type="matrix" values="` + strings.Join(vals, " ") + `" result="` + out + `"/>`)
		}
		in = out
	}
	b.WriteString(`</filter>`)
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
