package render

import (
	"strings"
	"testing"

	"github.com/logo-studio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFilter_NeutralIsNil(t *testing.T) {
	e := models.NeutralEffects()
	assert.Nil(t, ResolveFilter(e))

	// stroke is painted, never filtered
	e.Stroke.Enabled = true
	assert.Nil(t, ResolveFilter(e))
}

func TestResolveFilter_Order(t *testing.T) {
	e := models.NeutralEffects()
	e.Hue = 180
	e.Blur = 2
	e.Glow.Enabled = true
	e.Shadow.Enabled = true

	f := ResolveFilter(e)
	require.NotNil(t, f)

	var kinds []PrimitiveKind
	for _, p := range f.Primitives {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []PrimitiveKind{PrimitiveDropShadow, PrimitiveGlow, PrimitiveBlur, PrimitiveColorMatrix}, kinds)
}

func TestResolveFilter_Shadow(t *testing.T) {
	e := models.NeutralEffects()
	e.Shadow = models.ShadowEffect{Enabled: true, OffsetX: 3, OffsetY: -2, Blur: 6, Color: "#123456", Opacity: 1.5}

	f := ResolveFilter(e)
	require.NotNil(t, f)
	require.Len(t, f.Primitives, 1)
	p := f.Primitives[0]
	assert.Equal(t, 3.0, p.DX)
	assert.Equal(t, -2.0, p.DY)
	assert.Equal(t, 3.0, p.StdDeviation)
	assert.Equal(t, 1.0, p.Opacity)

	e.Shadow.Inset = true
	p = ResolveFilter(e).Primitives[0]
	assert.Equal(t, -3.0, p.DX)
	assert.Equal(t, 2.0, p.DY)
}

func TestResolveFilter_ColorAdjustments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.VisualEffects)
	}{
		{"brightness", func(e *models.VisualEffects) { e.Brightness = 150 }},
		{"contrast", func(e *models.VisualEffects) { e.Contrast = 50 }},
		{"saturation", func(e *models.VisualEffects) { e.Saturation = 0 }},
		{"hue", func(e *models.VisualEffects) { e.Hue = 90 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := models.NeutralEffects()
			tt.mutate(&e)
			f := ResolveFilter(e)
			require.NotNil(t, f)
			require.Len(t, f.Primitives, 1)
			assert.Equal(t, PrimitiveColorMatrix, f.Primitives[0].Kind)
		})
	}
}

func TestColorAdjustMatrix(t *testing.T) {
	neutral := colorAdjustMatrix(100, 100, 100, 0)
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, neutral[i*5+j], 1e-9, "row %d col %d", i, j)
		}
	}

	half := colorAdjustMatrix(50, 100, 100, 0)
	assert.InDelta(t, 0.5, half[0], 1e-9)
	assert.InDelta(t, 0.5, half[6], 1e-9)
	assert.InDelta(t, 0.5, half[12], 1e-9)
	assert.InDelta(t, 1, half[18], 1e-9)

	grey := colorAdjustMatrix(100, 100, 0, 0)
	assert.InDelta(t, 0.213, grey[0], 1e-9)
	assert.InDelta(t, 0.213, grey[5], 1e-9)
	assert.InDelta(t, 0.213, grey[10], 1e-9)
}

func TestWriteFilter_ChainsResults(t *testing.T) {
	e := models.NeutralEffects()
	e.Shadow.Enabled = true
	e.Blur = 4

	var b strings.Builder
	writeFilter(&b, FilterID("x"), ResolveFilter(e))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, `<filter id="filter-x"`))
	assert.Contains(t, out, `<feDropShadow in="SourceGraphic"`)
	assert.Contains(t, out, `result="drop-shadow-0"`)
	assert.Contains(t, out, `<feGaussianBlur in="drop-shadow-0" stdDeviation="4" result="blur-1"/>`)
	assert.True(t, strings.HasSuffix(out, `</filter>`))
}

func TestWriteFilter_Glow(t *testing.T) {
	e := models.NeutralEffects()
	e.Glow = models.GlowEffect{Enabled: true, Color: "#ffcc00", Size: 12, Intensity: 0.8}

	var b strings.Builder
	writeFilter(&b, "f", ResolveFilter(e))
	out := b.String()

	assert.Contains(t, out, `<feGaussianBlur in="SourceAlpha" stdDeviation="6" result="glow-0-blur"/>`)
	assert.Contains(t, out, `<feFlood flood-color="#ffcc00" flood-opacity="0.8"`)
	assert.Contains(t, out, `<feMergeNode in="SourceGraphic"/>`)
}
