package render

import (
	"strings"

	"github.com/logo-studio/backend/internal/models"
)

// Keyframes use the individual translate/rotate/scale properties so they
// compose with the layer's transform attribute instead of replacing it.
var keyframes = map[models.AnimationType]string{
	models.AnimationFade:   `from{opacity:0}to{opacity:1}`,
	models.AnimationSlide:  `from{translate:-40px 0}to{translate:0 0}`,
	models.AnimationBounce: `0%,100%{translate:0 0}50%{translate:0 -12px}`,
	models.AnimationRotate: `from{rotate:0deg}to{rotate:360deg}`,
	models.AnimationPulse:  `0%,100%{scale:1}50%{scale:1.08}`,
	models.AnimationScale:  `from{scale:0}to{scale:1}`,
}

func animationName(t models.AnimationType) string {
	return "logo-" + string(t)
}

// writeAnimations emits a <style> block with the keyframes used by the
// given layers, in order of first use, and one rule per animated layer.
func writeAnimations(b *strings.Builder, layers []*models.Layer) {
	var used []models.AnimationType
	seen := make(map[models.AnimationType]bool)
	var rules strings.Builder

	for _, l := range layers {
		a := l.Animation
		if !a.Enabled {
			continue
		}
		if _, ok := keyframes[a.Type]; !ok {
			continue
		}
		if !seen[a.Type] {
			seen[a.Type] = true
			used = append(used, a.Type)
		}

		iterations := a.IterationCount
		if iterations == "" {
			iterations = "1"
		}
		easing := a.Easing
		if easing == "" {
			easing = "ease"
		}
		direction := a.Direction
		if direction == "" {
			direction = "normal"
		}
		rules.WriteString(`[id=` + cssString("layer-"+l.ID) + `]{animation:` + animationName(a.Type) + ` ` +
			num(a.Duration) + `s ` + esc(easing) + ` ` + num(a.Delay) + `s ` + esc(iterations) + ` ` + esc(direction) +
			` both;transform-box:fill-box;transform-origin:center}`)
	}

	if len(used) == 0 {
		return
	}
	b.WriteString(`<style>`)
	for _, t := range used {
		b.WriteString(`@keyframes ` + animationName(t) + `{` + keyframes[t] + `}`)
	}
	b.WriteString(rules.String())
	b.WriteString(`</style>`)
}
