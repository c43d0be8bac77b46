package presets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/logo-studio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textLayer() models.Layer {
	return models.Layer{
		ID:        "t",
		Name:      "Title",
		Type:      models.LayerTypeText,
		Visible:   true,
		Opacity:   1,
		Effects:   models.NeutralEffects(),
		Animation: models.DefaultAnimation(),
		Payload:   &models.TextPayload{Content: "Hi", Color: models.SolidColor("#000")},
	}
}

func TestDefault(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, lib.List())
	for _, name := range []string{"soft-shadow", "neon-glow", "outline", "sunset", "vintage", "fade-in"} {
		_, ok := lib.Lookup(name)
		assert.True(t, ok, name)
	}

	g, ok := lib.ResolveIcon("heart")
	require.True(t, ok)
	assert.Equal(t, 24.0, g.ViewBox)
	assert.Contains(t, lib.IconNames(), "star")
}

func TestParse(t *testing.T) {
	content := `
presets:
  - name: glow
    label: Glow
    applies_to: [text]
    effects:
      glow:
        enabled: true
        color: "#ff0000"
        size: 8
        intensity: 0.6
      blur: 1
icons:
  dot:
    view_box: 10
    paths: ["M5 0a5 5 0 1 0 0 10a5 5 0 1 0 0-10z"]
`
	lib, err := Parse(strings.NewReader(content))
	require.NoError(t, err)

	p, ok := lib.Lookup("glow")
	require.True(t, ok)
	assert.Equal(t, "Glow", p.Label)
	assert.Equal(t, []models.LayerType{models.LayerTypeText}, p.AppliesTo)
	require.NotNil(t, p.Effects.Glow)
	assert.Equal(t, 8.0, p.Effects.Glow.Size)
	assert.Equal(t, 1.0, *p.Effects.Blur)

	_, ok = lib.ResolveIcon("dot")
	assert.True(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "presets:\n  - label: x\n"},
		{"duplicate", "presets:\n  - name: a\n  - name: a\n"},
		{"bad layer type", "presets:\n  - name: a\n    applies_to: [sticker]\n"},
		{"empty gradient", "presets:\n  - name: a\n    gradient:\n      type: linear\n"},
		{"icon without paths", "icons:\n  x:\n    view_box: 24\n"},
		{"not yaml", "presets: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - name: mine\n    opacity: 0.7\n"), 0644))

	lib, err := LoadFile(path)
	require.NoError(t, err)
	p, ok := lib.Lookup("mine")
	require.True(t, ok)
	assert.Equal(t, 0.7, *p.Opacity)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMerge_UserPresetsWin(t *testing.T) {
	base, err := Default()
	require.NoError(t, err)
	user, err := Parse(strings.NewReader("presets:\n  - name: outline\n    label: Thick Outline\n    stroke:\n      width: 6\n      color: \"#000\"\n  - name: extra\n"))
	require.NoError(t, err)

	merged := base.Merge(user)
	p, ok := merged.Lookup("outline")
	require.True(t, ok)
	assert.Equal(t, "Thick Outline", p.Label)
	_, ok = merged.Lookup("extra")
	assert.True(t, ok)
	assert.Len(t, merged.List(), len(base.List())+1)

	// the merged library keeps the built-in icons
	_, ok = merged.ResolveIcon("star")
	assert.True(t, ok)
}

func TestPatch_Effects(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)
	p, _ := lib.Lookup("neon-glow")

	l := textLayer()
	l.Effects.Blur = 3
	patch, ok := p.Patch(l)
	require.True(t, ok)
	require.NotNil(t, patch.Effects)

	assert.True(t, patch.Effects.Glow.Enabled)
	assert.Equal(t, "#22d3ee", patch.Effects.Glow.Color)
	assert.Equal(t, 110.0, patch.Effects.Brightness)
	// untouched settings survive
	assert.Equal(t, 3.0, patch.Effects.Blur)
	assert.Nil(t, patch.Opacity)
}

func TestPatch_Stroke(t *testing.T) {
	lib, _ := Default()
	p, _ := lib.Lookup("outline")

	patch, ok := p.Patch(textLayer())
	require.True(t, ok)
	s := patch.Effects.Stroke
	assert.True(t, s.Enabled)
	assert.Equal(t, 2.0, s.Width)
	assert.Equal(t, "#111827", s.Color.Solid)
	assert.Equal(t, "outside", s.Position)
}

func TestPatch_GradientTargetsMainColor(t *testing.T) {
	lib, _ := Default()
	p, _ := lib.Lookup("sunset")

	patch, ok := p.Patch(textLayer())
	require.True(t, ok)
	require.NotNil(t, patch.Color)
	assert.Nil(t, patch.Fill)
	assert.Equal(t, models.ColorTypeGradient, patch.Color.Type)
	assert.Equal(t, "#f97316", patch.Color.Gradient.Stops[0].Color)

	shape := textLayer()
	shape.Type = models.LayerTypeShape
	shape.Payload = &models.ShapePayload{}
	patch, ok = p.Patch(shape)
	require.True(t, ok)
	require.NotNil(t, patch.Fill)
	assert.Nil(t, patch.Color)

	ocean, _ := lib.Lookup("ocean")
	patch, _ = ocean.Patch(shape)
	assert.Equal(t, models.GradientTypeRadial, patch.Fill.Gradient.Type)
}

func TestPatch_Animation(t *testing.T) {
	lib, _ := Default()
	p, _ := lib.Lookup("spin")

	icon := textLayer()
	icon.Type = models.LayerTypeIcon
	patch, ok := p.Patch(icon)
	require.True(t, ok)
	require.NotNil(t, patch.Animation)
	assert.True(t, patch.Animation.Enabled)
	assert.Equal(t, models.AnimationRotate, patch.Animation.Type)
	assert.Equal(t, models.IterationInfinite, patch.Animation.IterationCount)
	assert.Equal(t, "linear", patch.Animation.Easing)
}

func TestPatch_NotApplicable(t *testing.T) {
	lib, _ := Default()
	p, _ := lib.Lookup("spin")

	_, ok := p.Patch(textLayer())
	assert.False(t, ok)
	assert.True(t, p.Applies(models.LayerTypeShape))
}
