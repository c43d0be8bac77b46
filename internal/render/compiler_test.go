package render

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/logo-studio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseLayer(id string, z int) models.Layer {
	return models.Layer{
		ID:        id,
		Name:      id,
		Visible:   true,
		Opacity:   1,
		BlendMode: models.BlendNormal,
		ZIndex:    z,
		Transform: models.IdentityTransform(),
		Effects:   models.NeutralEffects(),
		Animation: models.DefaultAnimation(),
	}
}

func backgroundLayer(id string, z int, fill models.ColorSettings) models.Layer {
	l := baseLayer(id, z)
	l.Type = models.LayerTypeBackground
	l.Payload = &models.BackgroundPayload{Fill: fill}
	return l
}

func textLayer(id string, z int, content string) models.Layer {
	l := baseLayer(id, z)
	l.Type = models.LayerTypeText
	l.Payload = &models.TextPayload{
		Content:   content,
		Font:      models.DefaultFont(),
		Color:     models.SolidColor("#111111"),
		TextAlign: "left",
	}
	return l
}

func shapeLayer(id string, z int, shape models.ShapeType, w, h float64) models.Layer {
	l := baseLayer(id, z)
	l.Type = models.LayerTypeShape
	l.Payload = &models.ShapePayload{
		ShapeType: shape,
		Width:     w,
		Height:    h,
		Fill:      models.SolidColor("#3b82f6"),
	}
	return l
}

func iconLayer(id string, z int, name string, color string) models.Layer {
	l := baseLayer(id, z)
	l.Type = models.LayerTypeIcon
	l.Payload = &models.IconPayload{IconName: name, Size: 64, Color: models.SolidColor(color)}
	return l
}

func gradient() models.ColorSettings {
	return models.LinearGradient(45,
		models.GradientStop{Color: "#ff0000", Position: 100},
		models.GradientStop{Color: "#0000ff", Position: 0},
	)
}

func TestCompile_BackgroundAndText(t *testing.T) {
	scene := models.Scene{
		Canvas: models.CanvasSettings{Width: 100, Height: 100},
		Layers: []models.Layer{
			backgroundLayer("bg", 0, models.SolidColor("#ffffff")),
			textLayer("txt", 1, "Hi"),
		},
	}

	out := Compile(scene)

	assert.True(t, strings.HasPrefix(out, `<svg width="100" height="100" viewBox="0 0 100 100"`))
	assert.True(t, strings.HasSuffix(out, `</svg>`))
	assert.NotContains(t, out, "<?xml")

	rect := strings.Index(out, `<rect x="0" y="0" width="100" height="100" fill="#ffffff"`)
	text := strings.Index(out, `<text`)
	hi := strings.Index(out, `>Hi</text>`)
	require.NotEqual(t, -1, rect)
	require.NotEqual(t, -1, text)
	require.NotEqual(t, -1, hi)
	assert.Less(t, rect, text)
	assert.Less(t, text, hi)
}

func TestCompile_Deterministic(t *testing.T) {
	shadowed := shapeLayer("s1", 2, models.ShapeStar, 80, 80)
	shadowed.Effects.Shadow.Enabled = true
	shadowed.Effects.Hue = 90
	shadowed.Animation.Enabled = true
	shadowed.Animation.Type = models.AnimationPulse

	scene := models.Scene{
		Canvas: models.CanvasSettings{Width: 300, Height: 200},
		Layers: []models.Layer{
			backgroundLayer("bg", 0, gradient()),
			shadowed,
			textLayer("t1", 1, "Logo"),
			iconLayer("i1", 3, "heart", "#ff0000"),
		},
	}

	assert.Equal(t, Compile(scene), Compile(scene))
}

func TestCompile_DoesNotMutateScene(t *testing.T) {
	build := func() models.Scene {
		l := shapeLayer("s1", 0, models.ShapeRectangle, 10, 10)
		l.Payload.(*models.ShapePayload).Fill = gradient()
		return models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{l, textLayer("t", 0, "x")}}
	}
	scene := build()

	Compile(scene)

	assert.Equal(t, build(), scene)
}

func TestCompile_HiddenLayersLeaveNoTrace(t *testing.T) {
	hidden := shapeLayer("hidden-layer", 5, models.ShapeCircle, 50, 50)
	hidden.Visible = false
	hidden.Payload.(*models.ShapePayload).Fill = gradient()
	hidden.Effects.Blur = 4
	hidden.Animation.Enabled = true
	hidden.Animation.Type = models.AnimationFade

	scene := models.Scene{
		Canvas: models.DefaultCanvas(),
		Layers: []models.Layer{textLayer("shown", 0, "x"), hidden},
	}

	out := Compile(scene)
	assert.NotContains(t, out, "hidden-layer")
	assert.NotContains(t, out, "<linearGradient")
	assert.NotContains(t, out, "<filter")
	assert.NotContains(t, out, "<style>")
}

func TestCompile_PaintOrder(t *testing.T) {
	scene := models.Scene{
		Canvas: models.DefaultCanvas(),
		Layers: []models.Layer{
			textLayer("top", 9, "a"),
			textLayer("bottom", 1, "b"),
			textLayer("tie-first", 4, "c"),
			textLayer("tie-second", 4, "d"),
		},
	}

	out := Compile(scene)
	order := []string{"bottom", "tie-first", "tie-second", "top"}
	last := -1
	for _, id := range order {
		idx := strings.Index(out, `id="layer-`+id+`"`)
		require.NotEqual(t, -1, idx, id)
		assert.Greater(t, idx, last, id)
		last = idx
	}
}

func TestCompile_IdentityTransformOmitted(t *testing.T) {
	scene := models.Scene{
		Canvas: models.DefaultCanvas(),
		Layers: []models.Layer{shapeLayer("s", 0, models.ShapeRectangle, 20, 20)},
	}
	assert.NotContains(t, Compile(scene), "transform=")

	moved := shapeLayer("s", 0, models.ShapeRectangle, 20, 20)
	moved.Transform.Position = models.Position{X: 10, Y: 5}
	moved.Transform.Rotation = 30
	scene.Layers = []models.Layer{moved}
	assert.Contains(t, Compile(scene), `transform="translate(10 5) rotate(30)"`)
}

func TestCompile_BackgroundIgnoresTransform(t *testing.T) {
	bg := backgroundLayer("bg", 0, models.SolidColor("#000000"))
	bg.Transform.Position = models.Position{X: 50, Y: 50}
	bg.Transform.Rotation = 45
	scene := models.Scene{
		Canvas: models.CanvasSettings{Width: 640, Height: 480},
		Layers: []models.Layer{bg},
	}

	out := Compile(scene)
	assert.Contains(t, out, `width="640" height="480" fill="#000000"`)
	assert.NotContains(t, out, "transform=")
}

func TestCompile_GradientPerOccurrence(t *testing.T) {
	a := shapeLayer("a", 0, models.ShapeRectangle, 10, 10)
	a.Payload.(*models.ShapePayload).Fill = gradient()
	b := shapeLayer("b", 1, models.ShapeRectangle, 10, 10)
	b.Payload.(*models.ShapePayload).Fill = gradient()

	out := Compile(models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{a, b}})

	assert.Equal(t, 2, strings.Count(out, "<linearGradient"))
	assert.Contains(t, out, `id="gradient-a-fill"`)
	assert.Contains(t, out, `id="gradient-b-fill"`)
	assert.Contains(t, out, `fill="url(#gradient-a-fill)"`)

	defs := out[strings.Index(out, "<defs>"):strings.Index(out, "</defs>")]
	// stops keep slice order even though positions are descending
	assert.Less(t, strings.Index(defs, `offset="100%" stop-color="#ff0000"`), strings.Index(defs, `offset="0%" stop-color="#0000ff"`))
}

func TestCompile_DefsOrder(t *testing.T) {
	l := shapeLayer("s", 0, models.ShapeRectangle, 10, 10)
	l.Payload.(*models.ShapePayload).Fill = gradient()
	l.Effects.Blur = 3

	out := Compile(models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{l}})

	defsStart := strings.Index(out, "<defs>")
	grad := strings.Index(out, "<linearGradient")
	filter := strings.Index(out, `<filter id="filter-s"`)
	defsEnd := strings.Index(out, "</defs>")
	frag := strings.Index(out, `<rect x="0" y="0" width="10"`)
	assert.True(t, defsStart < grad && grad < filter && filter < defsEnd && defsEnd < frag)
	assert.Contains(t, out, `filter="url(#filter-s)"`)
}

func TestCompile_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		shape models.ShapeType
		w, h  float64
		sides int
		want  string
	}{
		{"rectangle", models.ShapeRectangle, 100, 50, 0, `<rect x="0" y="0" width="100" height="50"`},
		{"circle", models.ShapeCircle, 100, 50, 0, `<circle cx="50" cy="25" r="25"`},
		{"ellipse", models.ShapeEllipse, 100, 50, 0, `<ellipse cx="50" cy="25" rx="50" ry="25"`},
		{"triangle", models.ShapeTriangle, 100, 100, 0, `<polygon points="50,0 93.301,75 6.699,75"`},
		{"square polygon", models.ShapePolygon, 100, 100, 4, `<polygon points="50,0 100,50 50,100 0,50"`},
		{"polygon radius uses short side", models.ShapePolygon, 200, 100, 4, `<polygon points="100,0 150,50 100,100 50,50"`},
		{"polygon with too few sides is a hexagon", models.ShapePolygon, 100, 100, 2,
			`<polygon points="50,0 93.301,25 93.301,75 50,100 6.699,75 6.699,25"`},
		{"default star", models.ShapeStar, 100, 100, 0,
			`<polygon points="50,0 64.695,29.775 97.553,34.549 73.776,57.725 79.389,90.451 50,75 20.611,90.451 26.224,57.725 2.447,34.549 35.305,29.775"`},
		{"custom falls back to rect", models.ShapeCustom, 100, 50, 0, `<rect x="0" y="0" width="100" height="50"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := shapeLayer("s", 0, tt.shape, tt.w, tt.h)
			l.Payload.(*models.ShapePayload).Sides = tt.sides
			scene := models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{l}}
			assert.Contains(t, Compile(scene), tt.want)
		})
	}
}

func TestCompile_ShapeStroke(t *testing.T) {
	l := shapeLayer("s", 0, models.ShapeRectangle, 10, 10)
	p := l.Payload.(*models.ShapePayload)

	p.Stroke = &models.ShapeStroke{Enabled: true, Color: "#00ff00", Width: 0}
	out := Compile(models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{l}})
	assert.NotContains(t, out, "stroke=")

	p.Stroke.Width = 3
	out = Compile(models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{l}})
	assert.Contains(t, out, `stroke="#00ff00" stroke-width="3"`)
}

func TestCompile_TextStrokeAndEscaping(t *testing.T) {
	l := textLayer("t", 0, `A & <B>`)
	l.Effects.Stroke.Enabled = true
	l.Effects.Stroke.Width = 2
	l.Effects.Stroke.Color = models.SolidColor("#ff00ff")
	l.Payload.(*models.TextPayload).TextAlign = "center"

	out := Compile(models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{l}})
	assert.Contains(t, out, `stroke="#ff00ff" stroke-width="2"`)
	assert.Contains(t, out, `text-anchor="middle"`)
	assert.Contains(t, out, `A &amp; &lt;B&gt;</text>`)
}

func TestCompile_TextTransformAndLines(t *testing.T) {
	l := textLayer("t", 0, "hello world\nsecond")
	l.Payload.(*models.TextPayload).Font.TextTransform = "capitalize"

	out := Compile(models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{l}})
	assert.Contains(t, out, `<tspan x="0" dy="0">Hello World</tspan>`)
	assert.Contains(t, out, `<tspan x="0" dy="57.6">Second</tspan>`)
}

func TestCompile_IconPlaceholder(t *testing.T) {
	scene := models.Scene{
		Canvas: models.DefaultCanvas(),
		Layers: []models.Layer{
			iconLayer("dark", 0, "rocket", "#000000"),
			iconLayer("light", 1, "sun", "#ffffff"),
		},
	}

	out := Compile(scene)
	assert.Contains(t, out, `<g id="layer-dark"`)
	assert.Contains(t, out, `fill="#ffffff">R</text>`)
	assert.Contains(t, out, `fill="#000000">S</text>`)
	assert.Contains(t, out, `rx="12.8"`)
}

func TestCompile_IconResolver(t *testing.T) {
	icons := IconSet{"heart": {ViewBox: 24, Paths: []string{"M12 21 L3 12 Z"}}}
	c := NewCompiler(WithIconResolver(icons))
	scene := models.Scene{
		Canvas: models.DefaultCanvas(),
		Layers: []models.Layer{
			iconLayer("known", 0, "heart", "#ff0000"),
			iconLayer("unknown", 1, "zap", "#ff0000"),
		},
	}

	out := c.Compile(scene)
	assert.Contains(t, out, `viewBox="0 0 24 24" fill="#ff0000"><path d="M12 21 L3 12 Z"/>`)
	assert.Contains(t, out, `>Z</text>`)
}

func TestCompile_BlendModeAndOpacity(t *testing.T) {
	l := textLayer("t", 0, "x")
	l.Opacity = 0.5
	l.BlendMode = models.BlendMultiply

	out := Compile(models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{l}})
	assert.Contains(t, out, `opacity="0.5"`)
	assert.Contains(t, out, `style="mix-blend-mode:multiply"`)
}

func TestCompile_Animations(t *testing.T) {
	a := textLayer("a", 0, "x")
	a.Animation = models.LayerAnimation{Type: models.AnimationFade, Enabled: true, Duration: 2, IterationCount: models.IterationInfinite}
	b := textLayer("b", 1, "y")
	b.Animation = models.LayerAnimation{Type: models.AnimationFade, Enabled: true, Duration: 1}
	c := textLayer("c", 2, "z")
	c.Animation = models.LayerAnimation{Type: models.AnimationRotate, Enabled: false}

	out := Compile(models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{a, b, c}})
	assert.Equal(t, 1, strings.Count(out, "@keyframes logo-fade"))
	assert.NotContains(t, out, "logo-rotate")
	assert.Contains(t, out, `[id="layer-a"]{animation:logo-fade 2s ease 0s infinite normal both;`)
}

func TestCompile_AnimationSelectorQuotesID(t *testing.T) {
	l := textLayer(`a"b\c<d`, 0, "x")
	l.Animation = models.LayerAnimation{Type: models.AnimationPulse, Enabled: true, Duration: 1}

	out := Compile(models.Scene{Canvas: models.DefaultCanvas(), Layers: []models.Layer{l}})
	assert.Contains(t, out, `[id="layer-a\"b\\c\3c d"]{animation:logo-pulse`)
	requireWellFormed(t, out)
}

func TestCompile_OutputIsWellFormedXML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"control character", "Hi\x01", ">Hi</text>"},
		{"vertical tab", "A\x0bB", ">AB</text>"},
		{"invalid utf8", "bad\xffutf8", ">badutf8</text>"},
		{"markup", `<a & "b">`, ">&lt;a &amp; &#34;b&#34;&gt;</text>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := textLayer("t", 1, tt.content)
			text.Effects.Shadow.Enabled = true
			text.Effects.Shadow.Blur = 4
			text.Animation = models.LayerAnimation{Type: models.AnimationFade, Enabled: true, Duration: 1}
			scene := models.Scene{
				Canvas: models.DefaultCanvas(),
				Layers: []models.Layer{
					backgroundLayer("bg", 0, gradient()),
					text,
					iconLayer("i", 2, "rocket", "#000000"),
				},
			}

			out := Compile(scene)
			assert.Contains(t, out, tt.want)
			requireWellFormed(t, out)
		})
	}
}

func TestApplyTextTransform(t *testing.T) {
	tests := []struct {
		transform string
		in        string
		want      string
	}{
		{"uppercase", "Logo studio", "LOGO STUDIO"},
		{"lowercase", "LOGO Studio", "logo studio"},
		{"capitalize", "logo studio", "Logo Studio"},
		{"none", "Logo", "Logo"},
	}
	for _, tt := range tests {
		t.Run(tt.transform, func(t *testing.T) {
			assert.Equal(t, tt.want, applyTextTransform(tt.in, tt.transform))
		})
	}
}

func requireWellFormed(t *testing.T, out string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err)
	}
}

func TestCompile_EmptyScene(t *testing.T) {
	out := Compile(models.Scene{Canvas: models.CanvasSettings{Width: 10, Height: 20}})
	assert.Equal(t, `<svg width="10" height="20" viewBox="0 0 10 20" xmlns="http://www.w3.org/2000/svg"><defs></defs></svg>`, out)
}
