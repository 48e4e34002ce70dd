// Package motion holds the declarative animation table shared by the
// animated components: which visual properties an animation kind moves,
// the from/to values for entering and exiting slots, and the easing curves
// used to interpolate between them.
//
// Nothing in this package draws. The TUI style layer maps a Visual onto
// terminal attributes (colour blend for opacity, row offset for
// translation, faint text for blur).
package motion

import (
	"fmt"
	"strings"
	"time"

	"github.com/craftui/craftui/internal/errors"
)

// Animation names a transition kind.
type Animation string

const (
	None     Animation = "none"
	Fade     Animation = "fade"
	FadeUp   Animation = "fade-up"
	FadeDown Animation = "fade-down"
	Scale    Animation = "scale"
	Blur     Animation = "blur"
	BlurUp   Animation = "blur-up"
)

// Defaults used by the view switcher when no configuration is supplied.
const (
	DefaultAnimation = FadeUp
	DefaultDuration  = 220 * time.Millisecond
	DefaultEasing    = "cubic-bezier(0.2, 0.8, 0.2, 1)"
)

// Animations returns every supported animation kind.
func Animations() []Animation {
	return []Animation{None, Fade, FadeUp, FadeDown, Scale, Blur, BlurUp}
}

// ParseAnimation validates a configured animation name.
func ParseAnimation(s string) (Animation, error) {
	a := Animation(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Animations() {
		if a == known {
			return a, nil
		}
	}
	return "", errors.NewMotionError(s, errors.ErrUnknownAnimation)
}

// Role distinguishes the slot entering the view from the one leaving it.
type Role int

const (
	Entering Role = iota
	Exiting
)

func (r Role) String() string {
	if r == Exiting {
		return "exiting"
	}
	return "active"
}

// Visual is the animatable state of a slot. TranslateY and Blur are in CSS
// pixels; Scale is a uniform factor.
type Visual struct {
	Opacity    float64
	TranslateY float64
	Scale      float64
	Blur       float64
}

// Rest is the fully visible, untransformed state.
var Rest = Visual{Opacity: 1, Scale: 1}

// Hidden is Rest with zero opacity.
var Hidden = Visual{Opacity: 0, Scale: 1}

// Lerp interpolates from v toward to by t in [0, 1].
func (v Visual) Lerp(to Visual, t float64) Visual {
	if t <= 0 {
		return v
	}
	if t >= 1 {
		return to
	}
	mix := func(a, b float64) float64 { return a + (b-a)*t }
	return Visual{
		Opacity:    mix(v.Opacity, to.Opacity),
		TranslateY: mix(v.TranslateY, to.TranslateY),
		Scale:      mix(v.Scale, to.Scale),
		Blur:       mix(v.Blur, to.Blur),
	}
}

// StylePair is the start and end visual of one slot transition.
type StylePair struct {
	From Visual
	To   Visual
}

func shifted(y float64) Visual {
	v := Rest
	v.TranslateY = y
	return v
}

// Pair returns the from/to visuals for an animation kind and slot role.
// Unknown kinds behave like fade-up.
func Pair(a Animation, role Role) StylePair {
	enter := role == Entering
	switch a {
	case None:
		if enter {
			return StylePair{From: Rest, To: Rest}
		}
		return StylePair{From: Rest, To: Hidden}
	case Fade:
		if enter {
			return StylePair{From: Hidden, To: Rest}
		}
		return StylePair{From: Rest, To: Hidden}
	case FadeDown:
		if enter {
			from := shifted(-8)
			from.Opacity = 0
			return StylePair{From: from, To: Rest}
		}
		to := shifted(8)
		to.Opacity = 0
		return StylePair{From: Rest, To: to}
	case Scale:
		small := Visual{Opacity: 0, Scale: 0.985}
		if enter {
			return StylePair{From: small, To: Rest}
		}
		return StylePair{From: Rest, To: small}
	case Blur, BlurUp:
		radius := 8.0
		if a == BlurUp {
			radius = 6
		}
		blurred := Visual{Opacity: 0, Scale: 1, Blur: radius}
		if enter {
			return StylePair{From: blurred, To: Rest}
		}
		return StylePair{From: Rest, To: blurred}
	default:
		if enter {
			from := shifted(8)
			from.Opacity = 0
			return StylePair{From: from, To: Rest}
		}
		to := shifted(-8)
		to.Opacity = 0
		return StylePair{From: Rest, To: to}
	}
}

// Animates reports whether a transition of kind a produces any motion.
// Reduced motion and the none kind both resolve straight to the end state.
func Animates(a Animation, reducedMotion bool) bool {
	return a != None && !reducedMotion
}

// Transition bundles a kind with its timing.
type Transition struct {
	Animation Animation
	Duration  time.Duration
	Easing    string
}

// String renders the transition the way a stylesheet would declare it.
func (t Transition) String() string {
	if t.Animation == None {
		return "none"
	}
	ms := t.Duration.Milliseconds()
	return fmt.Sprintf("opacity %dms %s, transform %dms %s, filter %dms %s",
		ms, t.Easing, ms, t.Easing, ms, t.Easing)
}

// At returns the visual of a slot that started transitioning elapsed ago.
// A slot that has not started (settled == false) sits at the from state.
func (t Transition) At(role Role, reducedMotion, settled bool, elapsed time.Duration) Visual {
	pair := Pair(t.Animation, role)
	if !Animates(t.Animation, reducedMotion) {
		return pair.To
	}
	if !settled {
		return pair.From
	}
	return pair.From.Lerp(pair.To, Progress(elapsed, t.Duration, t.Easing))
}

// Done reports whether a settled transition has reached its end state.
func (t Transition) Done(reducedMotion, settled bool, elapsed time.Duration) bool {
	if !Animates(t.Animation, reducedMotion) {
		return true
	}
	return settled && elapsed >= t.Duration
}

// Progress maps elapsed time to eased progress in [0, 1]. Easing strings
// that fail to parse fall back to linear.
func Progress(elapsed, duration time.Duration, easing string) float64 {
	if duration <= 0 || elapsed >= duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	curve, err := ParseEasing(easing)
	if err != nil {
		curve = Linear
	}
	return curve.Ease(float64(elapsed) / float64(duration))
}
