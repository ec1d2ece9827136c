// Package widgets renders the animated accordion and slider with lipgloss.
// Widgets read their timing from the token service of the active scope and
// step their springs once per frame.
package widgets

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"

	apptokens "github.com/alexisbeaulieu97/motionkit/internal/application/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/animation"
)

// RowUnits is the height one rendered body line contributes to the
// measured content height the damping curve reads.
const RowUnits = 20.0

// settleEpsilon bounds the distance and velocity under which a spring is
// considered at rest.
const settleEpsilon = 0.01

// AccordionOption configures an Accordion.
type AccordionOption func(*accordionConfig)

type accordionConfig struct {
	clock animation.Clock
	curve animation.DampingCurve
	fps   int
	open  bool
}

// WithClock drives the toggle timers from c.
func WithClock(c animation.Clock) AccordionOption {
	return func(cfg *accordionConfig) { cfg.clock = c }
}

// WithCurve overrides the height damping curve.
func WithCurve(c animation.DampingCurve) AccordionOption {
	return func(cfg *accordionConfig) { cfg.curve = c }
}

// WithFPS sets the frame rate the springs are stepped at.
func WithFPS(fps int) AccordionOption {
	return func(cfg *accordionConfig) { cfg.fps = fps }
}

// Expanded starts the accordion open.
func Expanded() AccordionOption {
	return func(cfg *accordionConfig) { cfg.open = true }
}

// Accordion is an expandable section whose body height, arrow rotation and
// body fade follow the accordion tokens.
type Accordion struct {
	Title string

	svc    *apptokens.Service
	toggle *animation.Toggle
	fps    int
	body   []string
	// rows mirrors len(body) for the measurer, which runs on timer goroutines.
	rows atomic.Int64

	height, heightVel float64
	angle, angleVel   float64
	fade              time.Duration
}

// NewAccordion builds an accordion bound to the token scope of ctx.
func NewAccordion(ctx context.Context, title string, body []string, opts ...AccordionOption) (*Accordion, error) {
	svc, err := apptokens.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("accordion %q: %w", title, err)
	}

	cfg := accordionConfig{curve: animation.DefaultDampingCurve(), fps: 60}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Accordion{
		Title: title,
		svc:   svc,
		fps:   cfg.fps,
		body:  append([]string(nil), body...),
	}
	a.rows.Store(int64(len(a.body)))

	toggleOpts := []animation.Option{
		animation.WithMeasurer(a.measure),
		animation.WithCurve(cfg.curve),
		animation.WithInitialState(cfg.open),
	}
	if cfg.clock != nil {
		toggleOpts = append(toggleOpts, animation.WithClock(cfg.clock))
	}
	a.toggle = animation.NewToggle(svc, toggleOpts...)

	if cfg.open {
		a.height = float64(len(a.body))
		a.angle = 90
		a.toggle.Remeasure()
		a.fade = a.Content().Opacity.Duration
	}
	return a, nil
}

func (a *Accordion) measure() float64 {
	return float64(a.rows.Load()) * RowUnits
}

// Toggle requests an open/close flip. Requests during the lock are dropped.
func (a *Accordion) Toggle() bool {
	accepted := a.toggle.Request()
	if accepted {
		a.fade = 0
	}
	return accepted
}

// SetOpen forces the target state.
func (a *Accordion) SetOpen(open bool) bool {
	changed := a.toggle.Set(open)
	if changed {
		a.fade = 0
	}
	return changed
}

// SetBody replaces the content and re-measures.
func (a *Accordion) SetBody(lines []string) {
	a.body = append([]string(nil), lines...)
	a.rows.Store(int64(len(a.body)))
	a.toggle.Remeasure()
}

// State returns the toggle snapshot.
func (a *Accordion) State() animation.Snapshot {
	return a.toggle.Snapshot()
}

// Content returns the expansion parameters for the current measurement.
func (a *Accordion) Content() animation.ContentConfig {
	return a.toggle.Content()
}

// VisibleRows is the number of body rows currently revealed.
func (a *Accordion) VisibleRows() int {
	rows := int(math.Round(a.height))
	if rows < 0 {
		return 0
	}
	if rows > len(a.body) {
		return len(a.body)
	}
	return rows
}

// ArrowAngle returns the arrow rotation in degrees, 0 closed and 90 open.
func (a *Accordion) ArrowAngle() float64 {
	return a.angle
}

// Opacity returns the body fade progress in [0, 1].
func (a *Accordion) Opacity() float64 {
	if !a.toggle.Snapshot().IsOpen() {
		return 0
	}
	d := a.Content().Opacity.Duration
	if d <= 0 {
		return 1
	}
	return math.Min(1, float64(a.fade)/float64(d))
}

// Step advances every spring by one frame. It reports whether the widget is
// still in motion.
func (a *Accordion) Step() bool {
	snap := a.toggle.Snapshot()

	targetRows, targetAngle := 0.0, 0.0
	if snap.IsOpen() {
		targetRows, targetAngle = float64(len(a.body)), 90
		a.fade += time.Second / time.Duration(a.fpsOrDefault())
	}

	a.height, a.heightVel = stepSpring(a.toggle.Content().Height, a.fps, a.height, a.heightVel, targetRows)
	a.angle, a.angleVel = stepSpring(animation.ArrowAnimation(a.svc), a.fps, a.angle, a.angleVel, targetAngle)

	moving := !settled(a.height, a.heightVel, targetRows) || !settled(a.angle, a.angleVel, targetAngle)
	return moving || snap.Animating
}

// Close cancels the pending toggle timers.
func (a *Accordion) Close() {
	a.toggle.Close()
}

// View renders the header and the revealed part of the body.
func (a *Accordion) View(width int, focused bool, theme Theme) string {
	header := theme.Header
	if focused {
		header = theme.HeaderFocused
	}
	arrow := "▶"
	if a.angle >= 45 {
		arrow = "▼"
	}

	lines := []string{header.Width(width).Render(fmt.Sprintf("%s %s", arrow, a.Title))}
	if rows := a.VisibleRows(); rows > 0 {
		style := theme.Body.Foreground(theme.Fade(a.Opacity()))
		for _, line := range a.body[:rows] {
			lines = append(lines, style.Width(width).Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *Accordion) fpsOrDefault() int {
	if a.fps <= 0 {
		return 60
	}
	return a.fps
}

// stepSpring advances one frame. A spring without a usable frequency
// jumps straight to the target.
func stepSpring(spring animation.Spring, fps int, pos, vel, target float64) (float64, float64) {
	if spring.AngularFrequency() <= 0 {
		return target, 0
	}
	pos, vel = spring.Harmonica(fps).Update(pos, vel, target)
	if settled(pos, vel, target) {
		return target, 0
	}
	return pos, vel
}

func settled(pos, vel, target float64) bool {
	return math.Abs(pos-target) < settleEpsilon && math.Abs(vel) < settleEpsilon
}
