package render

import (
	"strings"

	"github.com/logo-studio/backend/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func writeText(b *strings.Builder, l *models.Layer, p *models.TextPayload, filtered bool) {
	f := p.Font
	b.WriteString(`<text x="0" y="0"`)
	if f.Family != "" {
		b.WriteString(` font-family="` + esc(f.Family) + `"`)
	}
	b.WriteString(` font-size="` + num(f.Size) + `"`)
	if f.Weight != "" {
		b.WriteString(` font-weight="` + esc(f.Weight) + `"`)
	}
	if f.Style != "" {
		b.WriteString(` font-style="` + esc(f.Style) + `"`)
	}
	if f.LetterSpacing != 0 {
		b.WriteString(` letter-spacing="` + num(f.LetterSpacing) + `"`)
	}
	if f.TextDecoration != "" && f.TextDecoration != "none" {
		b.WriteString(` text-decoration="` + esc(f.TextDecoration) + `"`)
	}
	b.WriteString(` text-anchor="` + textAnchor(p.TextAlign) + `" dominant-baseline="` + baseline(p.VerticalAlign) + `"`)

	paintAttrs(b, "fill", ResolvePaint(p.Color, GradientID(l.ID, roleColor)))
	strokeAttrs(b, l)
	commonAttrs(b, l, true, filtered)
	b.WriteString(`>`)

	lines := strings.Split(applyTextTransform(p.Content, f.TextTransform), "\n")
	if len(lines) == 1 {
		b.WriteString(esc(lines[0]))
	} else {
		lh := f.LineHeight
		if lh <= 0 {
			lh = 1.2
		}
		for i, line := range lines {
			dy := "0"
			if i > 0 {
				dy = num(f.Size * lh)
			}
			b.WriteString(`<tspan x="0" dy="` + dy + `">` + esc(line) + `</tspan>`)
		}
	}
	b.WriteString(`</text>`)
}

func textAnchor(align string) string {
	switch align {
	case "center":
		return "middle"
	case "right":
		return "end"
	}
	return "start"
}

func baseline(align string) string {
	switch align {
	case "top":
		return "hanging"
	case "middle":
		return "middle"
	case "bottom":
		return "text-after-edge"
	}
	return "auto"
}

func applyTextTransform(s, transform string) string {
	switch transform {
	case "uppercase":
		return cases.Upper(language.Und).String(s)
	case "lowercase":
		return cases.Lower(language.Und).String(s)
	case "capitalize":
		return cases.Title(language.Und, cases.NoLower).String(s)
	}
	return s
}
