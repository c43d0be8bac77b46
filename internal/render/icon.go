package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/logo-studio/backend/internal/models"
	"github.com/lucasb-eyer/go-colorful"
)

// Glyph is a vector icon drawn in a square viewBox of side ViewBox.
type Glyph struct {
	ViewBox float64
	Paths   []string // path data, filled with the icon color
}

// IconResolver maps icon names to glyphs. It is supplied by the icon set the
// editor ships; the compiler itself knows no icons.
type IconResolver interface {
	ResolveIcon(name string) (Glyph, bool)
}

// IconSet is a fixed in-memory IconResolver.
type IconSet map[string]Glyph

// ResolveIcon implements IconResolver.
func (s IconSet) ResolveIcon(name string) (Glyph, bool) {
	g, ok := s[name]
	return g, ok
}

func (c *Compiler) writeIcon(b *strings.Builder, l *models.Layer, p *models.IconPayload, filtered bool) {
	size := num(p.Size)
	paint := ResolvePaint(p.Color, GradientID(l.ID, roleColor))

	b.WriteString(`<g`)
	commonAttrs(b, l, true, filtered)
	b.WriteString(`>`)

	if g, ok := c.resolve(p.IconName); ok {
		vb := num(g.ViewBox)
		b.WriteString(`<svg x="0" y="0" width="` + size + `" height="` + size + `" viewBox="0 0 ` + vb + ` ` + vb + `"`)
		paintAttrs(b, "fill", paint)
		b.WriteString(`>`)
		for _, d := range g.Paths {
			b.WriteString(`<path d="` + esc(d) + `"/>`)
		}
		b.WriteString(`</svg></g>`)
		return
	}

	// Placeholder: a rounded tile in the icon color with the name's initial.
	b.WriteString(`<rect x="0" y="0" width="` + size + `" height="` + size + `" rx="` + num(p.Size*0.2) + `"`)
	paintAttrs(b, "fill", paint)
	b.WriteString(`/>`)
	b.WriteString(`<text x="` + num(p.Size/2) + `" y="` + num(p.Size/2) + `" text-anchor="middle" dominant-baseline="central"` +
		` font-family="sans-serif" font-weight="bold" font-size="` + num(p.Size*0.5) + `" fill="` + glyphColor(p.Color) + `">`)
	b.WriteString(esc(initial(p.IconName)))
	b.WriteString(`</text></g>`)
}

func (c *Compiler) resolve(name string) (Glyph, bool) {
	if c.icons == nil {
		return Glyph{}, false
	}
	g, ok := c.icons.ResolveIcon(name)
	if !ok || g.ViewBox <= 0 {
		return Glyph{}, false
	}
	return g, true
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// glyphColor picks black or white, whichever reads better on the tile.
// Unparseable colors get white.
func glyphColor(c models.ColorSettings) string {
	hex := c.Solid
	if c.Type == models.ColorTypeGradient && len(c.Gradient.Stops) > 0 {
		hex = c.Gradient.Stops[0].Color
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return "#ffffff"
	}
	r, g, b := col.LinearRgb()
	if 0.2126*r+0.7152*g+0.0722*b > 0.4 {
		return "#000000"
	}
	return "#ffffff"
}
