// Package render compiles a scene into SVG markup.
//
// The compiler is pure: the same scene always produces byte-identical
// output and the scene is never modified.
package render

import (
	"math"
	"strings"

	"github.com/logo-studio/backend/internal/models"
)

// Paint is a resolved fill or stroke value.
type Paint struct {
	Value   string  // attribute text: a color or url(#id)
	Opacity float64 // ColorSettings.Opacity, independent of stop opacity
}

// ResolvePaint turns color settings into a paint reference. gradientID is the
// id the caller registered (or will register) in <defs> for this occurrence.
// Color strings are passed through unvalidated.
func ResolvePaint(c models.ColorSettings, gradientID string) Paint {
	p := Paint{Opacity: c.Opacity}
	switch c.Type {
	case models.ColorTypeGradient:
		p.Value = "url(#" + gradientID + ")"
	case models.ColorTypePattern:
		p.Value = "url(#" + PatternID(c.Pattern) + ")"
	default:
		p.Value = c.Solid
	}
	return p
}

// PatternID is the id an externally supplied pattern definition is expected
// to carry.
func PatternID(key string) string {
	return "pattern-" + key
}

// GradientID is the def id of the gradient painting role of a layer.
func GradientID(layerID, role string) string {
	return "gradient-" + layerID + "-" + role
}

// writeGradient emits one gradient definition. Stops are written in slice
// order; they are never sorted.
func writeGradient(b *strings.Builder, id string, g models.GradientSettings) {
	switch g.Type {
	case models.GradientTypeRadial, models.GradientTypeConic:
		// SVG has no conic gradient; it falls back to a radial one.
		b.WriteString(`<radialGradient id="` + esc(id) + `" cx="` + num(g.CenterX) + `%" cy="` + num(g.CenterY) + `%" r="50%">`)
		writeStops(b, g.Stops)
		b.WriteString(`</radialGradient>`)
	default:
		x1, y1, x2, y2 := linearEndpoints(g.Angle)
		b.WriteString(`<linearGradient id="` + esc(id) + `" x1="` + num(x1) + `%" y1="` + num(y1) + `%" x2="` + num(x2) + `%" y2="` + num(y2) + `%">`)
		writeStops(b, g.Stops)
		b.WriteString(`</linearGradient>`)
	}
}

func writeStops(b *strings.Builder, stops []models.GradientStop) {
	for _, s := range stops {
		b.WriteString(`<stop offset="` + num(s.Position) + `%" stop-color="` + esc(s.Color) + `"`)
		if s.Opacity != nil {
			b.WriteString(` stop-opacity="` + num(*s.Opacity) + `"`)
		}
		b.WriteString(`/>`)
	}
}

// linearEndpoints maps an angle to gradient vector endpoints in percent of
// the bounding box. 0 degrees runs left to right, angles turn clockwise.
func linearEndpoints(angle float64) (x1, y1, x2, y2 float64) {
	rad := angle * math.Pi / 180
	dx := math.Cos(rad) * 50
	dy := math.Sin(rad) * 50
	return 50 - dx, 50 - dy, 50 + dx, 50 + dy
}

// paintAttrs writes a fill or stroke attribute pair for p.
func paintAttrs(b *strings.Builder, attr string, p Paint) {
	b.WriteString(` ` + attr + `="` + esc(p.Value) + `"`)
	if p.Opacity < 1 {
		b.WriteString(` ` + attr + `-opacity="` + num(p.Opacity) + `"`)
	}
}
