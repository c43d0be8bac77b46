package models

// AnimationType names an entrance or looping animation.
type AnimationType string

const (
	AnimationNone   AnimationType = "none"
	AnimationFade   AnimationType = "fade"
	AnimationSlide  AnimationType = "slide"
	AnimationBounce AnimationType = "bounce"
	AnimationRotate AnimationType = "rotate"
	AnimationPulse  AnimationType = "pulse"
	AnimationScale  AnimationType = "scale"
)

// IterationInfinite is the IterationCount value for endless animations.
const IterationInfinite = "infinite"

// LayerAnimation configures a CSS animation on a layer.
type LayerAnimation struct {
	Type           AnimationType `json:"type"`
	Enabled        bool          `json:"enabled"`
	Duration       float64       `json:"duration"` // seconds
	Delay          float64       `json:"delay"`    // seconds
	IterationCount string        `json:"iterationCount"`
	Direction      string        `json:"direction"`
	Easing         string        `json:"easing"`
}

// DefaultAnimation returns a disabled animation with the editor defaults.
func DefaultAnimation() LayerAnimation {
	return LayerAnimation{
		Type:           AnimationNone,
		Duration:       1,
		IterationCount: "1",
		Direction:      "normal",
		Easing:         "ease",
	}
}
