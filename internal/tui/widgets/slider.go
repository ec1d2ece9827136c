package widgets

import (
	"context"
	"fmt"
	"math"
	"strings"

	apptokens "github.com/alexisbeaulieu97/motionkit/internal/application/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/animation"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
)

// Slider is a bounded numeric input whose thumb glides to the new value
// over SLIDER_TRANSITION_DURATION.
type Slider struct {
	Label     string
	Min       float64
	Max       float64
	Increment float64

	svc      *apptokens.Service
	fps      int
	value    float64
	pos, vel float64
}

// NewSlider builds a slider bound to the token scope of ctx.
func NewSlider(ctx context.Context, label string, min, max, step, value float64, fps int) (*Slider, error) {
	svc, err := apptokens.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("slider %q: %w", label, err)
	}
	if max <= min {
		return nil, fmt.Errorf("slider %q: max %v must exceed min %v", label, max, min)
	}
	if step <= 0 {
		step = (max - min) / 10
	}
	s := &Slider{Label: label, Min: min, Max: max, Increment: step, svc: svc, fps: fps}
	s.value = s.clamp(value)
	s.pos = s.value
	return s, nil
}

// Value is the committed value.
func (s *Slider) Value() float64 {
	return s.value
}

// Position is the animated thumb position.
func (s *Slider) Position() float64 {
	return s.pos
}

// Increase moves the value up one step.
func (s *Slider) Increase() {
	s.SetValue(s.value + s.Increment)
}

// Decrease moves the value down one step.
func (s *Slider) Decrease() {
	s.SetValue(s.value - s.Increment)
}

// SetValue commits v clamped to the range.
func (s *Slider) SetValue(v float64) {
	s.value = s.clamp(v)
}

// Spring returns the critically damped spring that settles within the
// slider transition duration.
func (s *Slider) Spring() animation.Spring {
	d := animation.DurationOr(s.svc.Get(tokens.SliderTransitionDuration).String(), animation.DefaultFade)
	if d <= 0 {
		return animation.Spring{}
	}
	// A critically damped spring is within 1% of its target after ~6.6/omega.
	omega := 6.6 / d.Seconds()
	return animation.Spring{Stiffness: omega * omega, Damping: 2 * omega, Mass: 1}
}

// Step advances the thumb one frame and reports whether it is still moving.
func (s *Slider) Step() bool {
	s.pos, s.vel = stepSpring(s.Spring(), s.fps, s.pos, s.vel, s.value)
	return !settled(s.pos, s.vel, s.value)
}

// View renders the track with the thumb at its animated position.
func (s *Slider) View(width int, focused bool, theme Theme) string {
	track := width - len(s.Label) - 12
	if track < 10 {
		track = 10
	}
	ratio := (s.pos - s.Min) / (s.Max - s.Min)
	thumb := int(math.Round(ratio * float64(track-1)))
	if thumb < 0 {
		thumb = 0
	}
	if thumb > track-1 {
		thumb = track - 1
	}

	label := theme.Label
	if focused {
		label = theme.HeaderFocused
	}
	return fmt.Sprintf("%s %s%s%s %s",
		label.Render(s.Label),
		theme.Track.Render(strings.Repeat("─", thumb)),
		theme.Thumb.Render("●"),
		theme.Track.Render(strings.Repeat("─", track-1-thumb)),
		theme.Label.Render(fmt.Sprintf("%g", s.value)),
	)
}

func (s *Slider) clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}
