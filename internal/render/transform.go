package render

import (
	"math"
	"strings"

	"github.com/logo-studio/backend/internal/models"
)

// ComposeTransform builds the SVG transform list of a layer. Components are
// concatenated as translate, rotate, scale, skewX, skewY and each one is
// left out when it is the identity. ok is false when nothing remains, in
// which case no transform attribute should be written.
func ComposeTransform(t models.LayerTransform) (expr string, ok bool) {
	var parts []string
	if t.Position.X != 0 || t.Position.Y != 0 {
		parts = append(parts, "translate("+num(t.Position.X)+" "+num(t.Position.Y)+")")
	}
	if t.Rotation != 0 {
		parts = append(parts, "rotate("+num(t.Rotation)+")")
	}
	if t.ScaleX != 1 || t.ScaleY != 1 {
		parts = append(parts, "scale("+num(t.ScaleX)+" "+num(t.ScaleY)+")")
	}
	if t.SkewX != 0 {
		parts = append(parts, "skewX("+num(t.SkewX)+")")
	}
	if t.SkewY != 0 {
		parts = append(parts, "skewY("+num(t.SkewY)+")")
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}

// Matrix is a 2D affine transform [a c e; b d f; 0 0 1], the same layout as
// SVG's matrix(a b c d e f).
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul returns m × n: n is applied first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply maps a point through m.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// TransformMatrix returns the single affine matrix equivalent to the
// transform list produced by ComposeTransform.
func TransformMatrix(t models.LayerTransform) Matrix {
	m := Identity()
	m = m.Mul(Matrix{A: 1, D: 1, E: t.Position.X, F: t.Position.Y})

	rad := t.Rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	m = m.Mul(Matrix{A: cos, B: sin, C: -sin, D: cos})

	m = m.Mul(Matrix{A: t.ScaleX, D: t.ScaleY})
	m = m.Mul(Matrix{A: 1, C: math.Tan(t.SkewX * math.Pi / 180), D: 1})
	m = m.Mul(Matrix{A: 1, B: math.Tan(t.SkewY * math.Pi / 180), D: 1})
	return m
}
