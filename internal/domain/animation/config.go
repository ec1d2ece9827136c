package animation

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
)

// Lookup is the read side of the token store the calculators depend on.
type Lookup interface {
	Get(name tokens.Name) tokens.Literal
}

// Spring is a physical spring description.
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// AngularFrequency returns sqrt(k/m), the undamped angular frequency.
func (s Spring) AngularFrequency() float64 {
	if s.Mass <= 0 || s.Stiffness <= 0 {
		return 0
	}
	return math.Sqrt(s.Stiffness / s.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)).
func (s Spring) DampingRatio() float64 {
	critical := 2 * math.Sqrt(s.Stiffness*s.Mass)
	if critical <= 0 {
		return 1
	}
	return s.Damping / critical
}

// Harmonica builds a frame-stepped spring for the given frame rate.
func (s Spring) Harmonica(fps int) harmonica.Spring {
	if fps <= 0 {
		fps = 60
	}
	return harmonica.NewSpring(harmonica.FPS(fps), s.AngularFrequency(), s.DampingRatio())
}

// Tween is a fixed-duration transition with an easing curve.
type Tween struct {
	Duration time.Duration
	Easing   string
}

// ContentConfig bundles the two transitions of the expanding region.
type ContentConfig struct {
	Height  Spring
	Opacity Tween
	// MeasuredHeight is the height the damping was derived from.
	MeasuredHeight float64
}

// SpringFor reads the spring constants of a target. Values that do not
// parse read as zero.
func SpringFor(lookup Lookup, target tokens.Target) Spring {
	return Spring{
		Stiffness: floatOf(lookup, target.Stiffness()),
		Damping:   floatOf(lookup, target.Damping()),
		Mass:      floatOf(lookup, target.Mass()),
	}
}

// ArrowAnimation returns the spring driving the header arrow rotation.
func ArrowAnimation(lookup Lookup) Spring {
	return SpringFor(lookup, tokens.TargetArrow)
}

// ContentAnimation returns the expansion parameters for content of the
// given measured height. Only damping depends on height.
func ContentAnimation(lookup Lookup, height float64, curve DampingCurve) ContentConfig {
	spring := SpringFor(lookup, tokens.TargetContent)
	spring.Damping = curve.Damping(height, spring.Damping)
	return ContentConfig{
		Height: spring,
		Opacity: Tween{
			Duration: DurationOr(lookup.Get(tokens.AccordionContentOpacityDuration).String(), DefaultFade),
			Easing:   lookup.Get(tokens.AccordionContentOpacityEasing).String(),
		},
		MeasuredHeight: height,
	}
}

// AccordionTransition returns the base tween of the accordion.
func AccordionTransition(lookup Lookup) Tween {
	return Tween{
		Duration: TransitionDuration(lookup),
		Easing:   lookup.Get(tokens.AccordionTransitionEasing).String(),
	}
}

// LockDuration is how long a toggle request blocks the next one. It reads
// only ACCORDION_TRANSITION_DURATION and falls back to DefaultToggleLock.
func LockDuration(lookup Lookup) time.Duration {
	return DurationOr(lookup.Get(tokens.AccordionTransitionDuration).String(), DefaultToggleLock)
}

// TransitionDuration is the resolved accordion duration driving the tween
// and the settle timer. It falls back to ACCORDION_ANIMATION_DURATION and
// then to DefaultToggleLock.
func TransitionDuration(lookup Lookup) time.Duration {
	if ms, ok := ExtractMs(lookup.Get(tokens.AccordionTransitionDuration).String()); ok && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return DurationOr(lookup.Get(tokens.AccordionAnimationDuration).String(), DefaultToggleLock)
}

func floatOf(lookup Lookup, name tokens.Name) float64 {
	f, ok := lookup.Get(name).Float()
	if !ok {
		return 0
	}
	return f
}
