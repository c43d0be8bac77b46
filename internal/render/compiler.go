package render

import (
	"sort"
	"strings"

	"github.com/logo-studio/backend/internal/models"
)

// Paint roles, used to mint one gradient id per colored attribute.
const (
	roleFill   = "fill"
	roleColor  = "color"
	roleStroke = "stroke"
)

// Compiler turns scenes into SVG documents.
type Compiler struct {
	icons IconResolver
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithIconResolver renders icon layers with glyphs from r. Icons r does not
// know keep the letter placeholder.
func WithIconResolver(r IconResolver) Option {
	return func(c *Compiler) {
		c.icons = r
	}
}

// NewCompiler creates a compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile renders a scene with the default compiler.
func Compile(scene models.Scene) string {
	return NewCompiler().Compile(scene)
}

// Compile renders scene as a standalone <svg> element without an XML
// prolog. Hidden layers contribute nothing, not even definitions. Visible
// layers paint in ascending ZIndex order, ties keeping slice order.
func (c *Compiler) Compile(scene models.Scene) string {
	layers := paintOrder(scene.Layers)

	var defs strings.Builder
	for _, l := range layers {
		for _, slot := range paintSlots(l) {
			if slot.color.Type == models.ColorTypeGradient {
				writeGradient(&defs, GradientID(l.ID, slot.role), slot.color.Gradient)
			}
		}
	}
	filters := make([]bool, len(layers))
	for i, l := range layers {
		if f := ResolveFilter(l.Effects); f != nil {
			writeFilter(&defs, FilterID(l.ID), f)
			filters[i] = true
		}
	}
	writeAnimations(&defs, layers)

	w, h := num(scene.Canvas.Width), num(scene.Canvas.Height)
	var b strings.Builder
	b.WriteString(`<svg width="` + w + `" height="` + h + `" viewBox="0 0 ` + w + ` ` + h + `" xmlns="http://www.w3.org/2000/svg">`)
	b.WriteString(`<defs>`)
	b.WriteString(defs.String())
	b.WriteString(`</defs>`)
	for i, l := range layers {
		c.writeLayer(&b, scene.Canvas, l, filters[i])
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// paintOrder returns the visible layers sorted by ZIndex.
func paintOrder(all []models.Layer) []*models.Layer {
	var out []*models.Layer
	for i := range all {
		if all[i].Visible && all[i].Payload != nil {
			out = append(out, &all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

type paintSlot struct {
	role  string
	color models.ColorSettings
}

// paintSlots lists the color settings a layer's fragment will reference.
func paintSlots(l *models.Layer) []paintSlot {
	var slots []paintSlot
	switch p := l.Payload.(type) {
	case *models.TextPayload:
		slots = append(slots, paintSlot{roleColor, p.Color})
		if strokeEffectActive(l.Effects) {
			slots = append(slots, paintSlot{roleStroke, l.Effects.Stroke.Color})
		}
	case *models.ShapePayload:
		slots = append(slots, paintSlot{roleFill, p.Fill})
		if !shapeStrokeActive(p.Stroke) && strokeEffectActive(l.Effects) {
			slots = append(slots, paintSlot{roleStroke, l.Effects.Stroke.Color})
		}
	case *models.IconPayload:
		slots = append(slots, paintSlot{roleColor, p.Color})
	case *models.BackgroundPayload:
		slots = append(slots, paintSlot{roleFill, p.Fill})
	}
	return slots
}

func (c *Compiler) writeLayer(b *strings.Builder, canvas models.CanvasSettings, l *models.Layer, filtered bool) {
	switch p := l.Payload.(type) {
	case *models.BackgroundPayload:
		writeBackground(b, canvas, l, p, filtered)
	case *models.ShapePayload:
		writeShape(b, l, p, filtered)
	case *models.TextPayload:
		writeText(b, l, p, filtered)
	case *models.IconPayload:
		c.writeIcon(b, l, p, filtered)
	}
}

// commonAttrs writes the attributes every fragment carries.
func commonAttrs(b *strings.Builder, l *models.Layer, transformable, filtered bool) {
	b.WriteString(` id="layer-` + esc(l.ID) + `" opacity="` + num(l.Opacity) + `"`)
	if transformable {
		if t, ok := ComposeTransform(l.Transform); ok {
			b.WriteString(` transform="` + t + `"`)
		}
	}
	if filtered {
		b.WriteString(` filter="url(#` + esc(FilterID(l.ID)) + `)"`)
	}
	mode := l.BlendMode
	if mode == "" || mode == models.BlendNormal {
		mode = l.Effects.BlendMode
	}
	if mode != "" && mode != models.BlendNormal {
		b.WriteString(` style="mix-blend-mode:` + esc(string(mode)) + `"`)
	}
}

func shapeStrokeActive(s *models.ShapeStroke) bool {
	return s != nil && s.Enabled && s.Width > 0
}

func strokeEffectActive(e models.VisualEffects) bool {
	return e.Stroke.Enabled && e.Stroke.Width > 0
}

// strokeAttrs writes the effect stroke of a layer, if any.
func strokeAttrs(b *strings.Builder, l *models.Layer) {
	s := l.Effects.Stroke
	if !strokeEffectActive(l.Effects) {
		return
	}
	paintAttrs(b, "stroke", ResolvePaint(s.Color, GradientID(l.ID, roleStroke)))
	b.WriteString(` stroke-width="` + num(s.Width) + `"`)
	if s.Position == "outside" {
		b.WriteString(` paint-order="stroke"`)
	}
}

func writeBackground(b *strings.Builder, canvas models.CanvasSettings, l *models.Layer, p *models.BackgroundPayload, filtered bool) {
	b.WriteString(`<rect x="0" y="0" width="` + num(canvas.Width) + `" height="` + num(canvas.Height) + `"`)
	paintAttrs(b, "fill", ResolvePaint(p.Fill, GradientID(l.ID, roleFill)))
	commonAttrs(b, l, false, filtered)
	b.WriteString(`/>`)
}
