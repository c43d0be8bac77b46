// Package presets loads named layer styles and the icon set from YAML.
package presets

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/logo-studio/backend/internal/models"
	"github.com/logo-studio/backend/internal/render"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Preset is a named style. Only the sections it sets are applied; the rest
// of the layer is left alone.
type Preset struct {
	Name      string             `yaml:"name" json:"name"`
	Label     string             `yaml:"label" json:"label"`
	AppliesTo []models.LayerType `yaml:"applies_to" json:"appliesTo,omitempty"`
	Opacity   *float64           `yaml:"opacity" json:"opacity,omitempty"`
	BlendMode *models.BlendMode  `yaml:"blend_mode" json:"blendMode,omitempty"`
	Effects   *EffectsSpec       `yaml:"effects" json:"effects,omitempty"`
	Stroke    *StrokeSpec        `yaml:"stroke" json:"stroke,omitempty"`
	Gradient  *GradientSpec      `yaml:"gradient" json:"gradient,omitempty"`
	Animation *AnimationSpec     `yaml:"animation" json:"animation,omitempty"`
}

// EffectsSpec overrides parts of a layer's effects.
type EffectsSpec struct {
	Shadow     *models.ShadowEffect `yaml:"shadow" json:"shadow,omitempty"`
	Glow       *models.GlowEffect   `yaml:"glow" json:"glow,omitempty"`
	Blur       *float64             `yaml:"blur" json:"blur,omitempty"`
	Brightness *float64             `yaml:"brightness" json:"brightness,omitempty"`
	Contrast   *float64             `yaml:"contrast" json:"contrast,omitempty"`
	Saturation *float64             `yaml:"saturation" json:"saturation,omitempty"`
	Hue        *float64             `yaml:"hue" json:"hue,omitempty"`
}

// StrokeSpec enables the effect stroke.
type StrokeSpec struct {
	Width    float64 `yaml:"width" json:"width"`
	Color    string  `yaml:"color" json:"color"`
	Position string  `yaml:"position" json:"position"`
}

// GradientSpec replaces the main color of a layer with a gradient.
type GradientSpec struct {
	Type  models.GradientType `yaml:"type" json:"type"`
	Angle float64             `yaml:"angle" json:"angle"`
	Stops []StopSpec          `yaml:"stops" json:"stops"`
}

// StopSpec is one gradient stop.
type StopSpec struct {
	Color    string   `yaml:"color" json:"color"`
	Position float64  `yaml:"position" json:"position"`
	Opacity  *float64 `yaml:"opacity" json:"opacity,omitempty"`
}

// AnimationSpec enables an animation.
type AnimationSpec struct {
	Type       models.AnimationType `yaml:"type" json:"type"`
	Duration   float64              `yaml:"duration" json:"duration"`
	Delay      float64              `yaml:"delay" json:"delay"`
	Easing     string               `yaml:"easing" json:"easing"`
	Iterations string               `yaml:"iterations" json:"iterations"`
}

// IconSpec is the YAML form of an icon glyph.
type IconSpec struct {
	ViewBox float64  `yaml:"view_box"`
	Paths   []string `yaml:"paths"`
}

type file struct {
	Presets []Preset            `yaml:"presets"`
	Icons   map[string]IconSpec `yaml:"icons"`
}

// PresetName returns the preset's name.
func (p Preset) PresetName() string {
	return p.Name
}

// Applies reports whether the preset can be used on layers of type t.
func (p Preset) Applies(t models.LayerType) bool {
	if len(p.AppliesTo) == 0 {
		return true
	}
	for _, a := range p.AppliesTo {
		if a == t {
			return true
		}
	}
	return false
}

// Patch returns the update that applies the preset to l, merged over l's
// current effects so unrelated settings survive.
func (p Preset) Patch(l models.Layer) (models.LayerPatch, bool) {
	if !p.Applies(l.Type) {
		return models.LayerPatch{}, false
	}

	var patch models.LayerPatch
	if p.Opacity != nil {
		o := *p.Opacity
		patch.Opacity = &o
	}
	if p.BlendMode != nil {
		m := *p.BlendMode
		patch.BlendMode = &m
	}

	if p.Effects != nil || p.Stroke != nil {
		e := l.Clone().Effects
		if p.Effects != nil {
			p.Effects.applyTo(&e)
		}
		if p.Stroke != nil {
			e.Stroke = models.StrokeEffect{
				Enabled:  true,
				Width:    p.Stroke.Width,
				Color:    models.SolidColor(p.Stroke.Color),
				Position: p.Stroke.Position,
			}
		}
		patch.Effects = &e
	}

	if p.Gradient != nil {
		c := p.Gradient.colorSettings()
		switch l.Type {
		case models.LayerTypeText, models.LayerTypeIcon:
			patch.Color = &c
		case models.LayerTypeShape, models.LayerTypeBackground:
			patch.Fill = &c
		}
	}

	if p.Animation != nil {
		a := l.Animation
		a.Type = p.Animation.Type
		a.Enabled = p.Animation.Type != models.AnimationNone
		if p.Animation.Duration > 0 {
			a.Duration = p.Animation.Duration
		}
		a.Delay = p.Animation.Delay
		if p.Animation.Easing != "" {
			a.Easing = p.Animation.Easing
		}
		if p.Animation.Iterations != "" {
			a.IterationCount = p.Animation.Iterations
		}
		patch.Animation = &a
	}

	return patch, true
}

func (s *EffectsSpec) applyTo(e *models.VisualEffects) {
	if s.Shadow != nil {
		e.Shadow = *s.Shadow
	}
	if s.Glow != nil {
		e.Glow = *s.Glow
	}
	setIf(&e.Blur, s.Blur)
	setIf(&e.Brightness, s.Brightness)
	setIf(&e.Contrast, s.Contrast)
	setIf(&e.Saturation, s.Saturation)
	setIf(&e.Hue, s.Hue)
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func (g *GradientSpec) colorSettings() models.ColorSettings {
	stops := make([]models.GradientStop, len(g.Stops))
	for i, s := range g.Stops {
		stops[i] = models.GradientStop{Color: s.Color, Position: s.Position}
		if s.Opacity != nil {
			o := *s.Opacity
			stops[i].Opacity = &o
		}
	}
	c := models.LinearGradient(g.Angle, stops...)
	if g.Type != "" {
		c.Gradient.Type = g.Type
	}
	return c
}

// Library is a set of presets and icons. A loaded Library is read-only and
// safe for concurrent use.
type Library struct {
	presets []Preset
	byName  map[string]int
	icons   render.IconSet
}

// Default returns the built-in library.
func Default() (*Library, error) {
	lib, err := Parse(bytes.NewReader(defaultsYAML))
	if err != nil {
		return nil, fmt.Errorf("parsing built-in presets: %w", err)
	}
	return lib, nil
}

// LoadFile parses a presets file.
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a presets document.
func Parse(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	lib := &Library{
		byName: make(map[string]int, len(doc.Presets)),
		icons:  make(render.IconSet, len(doc.Icons)),
	}
	for _, p := range doc.Presets {
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, dup := lib.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		lib.byName[p.Name] = len(lib.presets)
		lib.presets = append(lib.presets, p)
	}
	for name, icon := range doc.Icons {
		if icon.ViewBox <= 0 || len(icon.Paths) == 0 {
			return nil, fmt.Errorf("icon %q: view_box and paths are required", name)
		}
		lib.icons[name] = render.Glyph{ViewBox: icon.ViewBox, Paths: icon.Paths}
	}
	return lib, nil
}

func validate(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset without a name")
	}
	for _, t := range p.AppliesTo {
		if !t.Valid() {
			return fmt.Errorf("preset %q: unknown layer type %q", p.Name, t)
		}
	}
	if p.Gradient != nil && len(p.Gradient.Stops) == 0 {
		return fmt.Errorf("preset %q: gradient needs at least one stop", p.Name)
	}
	return nil
}

// Merge returns a library holding l's presets and icons overlaid with
// other's. Entries of other replace same-named entries of l.
func (l *Library) Merge(other *Library) *Library {
	out := &Library{
		byName: make(map[string]int),
		icons:  make(render.IconSet),
	}
	for _, src := range []*Library{l, other} {
		for _, p := range src.presets {
			if i, ok := out.byName[p.Name]; ok {
				out.presets[i] = p
				continue
			}
			out.byName[p.Name] = len(out.presets)
			out.presets = append(out.presets, p)
		}
		for name, g := range src.icons {
			out.icons[name] = g
		}
	}
	return out
}

// List returns the presets in file order.
func (l *Library) List() []Preset {
	out := make([]Preset, len(l.presets))
	copy(out, l.presets)
	return out
}

// Lookup finds a preset by name.
func (l *Library) Lookup(name string) (Preset, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Preset{}, false
	}
	return l.presets[i], true
}

// ResolveIcon implements render.IconResolver.
func (l *Library) ResolveIcon(name string) (render.Glyph, bool) {
	return l.icons.ResolveIcon(name)
}

// IconNames returns the known icon names, sorted.
func (l *Library) IconNames() []string {
	names := make([]string, 0, len(l.icons))
	for name := range l.icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
