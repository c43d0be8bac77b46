package render

import (
	"math"
	"strings"

	"github.com/logo-studio/backend/internal/models"
)

// Shapes are laid out in layer-local space with their bounding box at the
// origin; the translate of the layer transform carries them to their
// position, so a circle's center lands on position + size/2.
func writeShape(b *strings.Builder, l *models.Layer, p *models.ShapePayload, filtered bool) {
	w, h := p.Width, p.Height

	switch p.ShapeType {
	case models.ShapeCircle:
		r := math.Min(w, h) / 2
		b.WriteString(`<circle cx="` + num(w/2) + `" cy="` + num(h/2) + `" r="` + num(r) + `"`)
	case models.ShapeEllipse:
		b.WriteString(`<ellipse cx="` + num(w/2) + `" cy="` + num(h/2) + `" rx="` + num(w/2) + `" ry="` + num(h/2) + `"`)
	case models.ShapeTriangle:
		b.WriteString(`<polygon points="` + formatPoints(regularPolygon(w, h, 3)) + `"`)
	case models.ShapePolygon:
		sides := p.Sides
		if sides < 3 {
			sides = 6
		}
		b.WriteString(`<polygon points="` + formatPoints(regularPolygon(w, h, sides)) + `"`)
	case models.ShapeStar:
		b.WriteString(`<polygon points="` + formatPoints(star(w, h, p.Sides, p.InnerRadius)) + `"`)
	default:
		// rectangle, and custom shapes until they carry their own path
		b.WriteString(`<rect x="0" y="0" width="` + num(w) + `" height="` + num(h) + `"`)
		if p.CornerRadius > 0 {
			b.WriteString(` rx="` + num(p.CornerRadius) + `" ry="` + num(p.CornerRadius) + `"`)
		}
	}

	paintAttrs(b, "fill", ResolvePaint(p.Fill, GradientID(l.ID, roleFill)))
	if shapeStrokeActive(p.Stroke) {
		b.WriteString(` stroke="` + esc(p.Stroke.Color) + `" stroke-width="` + num(p.Stroke.Width) + `"`)
	} else {
		strokeAttrs(b, l)
	}
	commonAttrs(b, l, true, filtered)
	b.WriteString(`/>`)
}

type point struct{ x, y float64 }

// regularPolygon samples n vertices on the circle of radius min(w,h)/2
// centered in the w×h box, starting at the top and going clockwise.
func regularPolygon(w, h float64, n int) []point {
	cx, cy := w/2, h/2
	r := math.Min(w, h) / 2
	pts := make([]point, n)
	for i := 0; i < n; i++ {
		a := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		pts[i] = point{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return pts
}

// star alternates outer and inner vertices. inner is a ratio of the outer
// radius when in (0,1], an absolute radius when larger, and 0.5 otherwise.
func star(w, h float64, points int, inner float64) []point {
	if points < 3 {
		points = 5
	}
	cx, cy := w/2, h/2
	outer := math.Min(w, h) / 2
	var ri float64
	switch {
	case inner > 0 && inner <= 1:
		ri = outer * inner
	case inner > 1:
		ri = inner
	default:
		ri = outer * 0.5
	}

	pts := make([]point, 2*points)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = ri
		}
		a := math.Pi*float64(i)/float64(points) - math.Pi/2
		pts[i] = point{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return pts
}

func formatPoints(pts []point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.x) + "," + num(p.y)
	}
	return strings.Join(parts, " ")
}
