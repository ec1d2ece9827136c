package tui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/motionkit/internal/application/aliases"
	"github.com/alexisbeaulieu97/motionkit/internal/application/stylevars"
	apptokens "github.com/alexisbeaulieu97/motionkit/internal/application/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/animation"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/motionkit/internal/tui/widgets"
)

type pane int

const (
	paneDemo pane = iota
	paneTokens
)

type mode int

const (
	modeBrowse mode = iota
	modeEditValue
	modeEditAlias
	modeConfirmReset
)

type frameMsg struct{}

// Options carries the collaborators of the demo.
type Options struct {
	Names  *aliases.Names
	Values *aliases.Values
	Sheet  *stylevars.Sheet
	Logs   *logging.EventBuffer
	Clock  animation.Clock
	Curve  animation.DampingCurve
	FPS    int
	Width  int
}

// Model contains the Bubbletea state of the motion demo: a column of
// accordions with a slider and the token configurator.
type Model struct {
	ctx  context.Context
	svc  *apptokens.Service
	opts Options

	accordions []*widgets.Accordion
	slider     *widgets.Slider
	focus      int

	config configurator
	input  textinput.Model
	pane   pane
	mode   mode

	keys  keyMap
	help  help.Model
	theme widgets.Theme

	status   string
	failed   bool
	ticking  bool
	quitting bool
}

// NewModel builds the demo inside the token scope of ctx. It fails when no
// scope is open.
func NewModel(ctx context.Context, opts Options) (Model, error) {
	svc, err := apptokens.FromContext(ctx)
	if err != nil {
		return Model{}, err
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Width <= 0 {
		opts.Width = 72
	}
	if opts.Curve == (animation.DampingCurve{}) {
		opts.Curve = animation.DefaultDampingCurve()
	}

	m := Model{
		ctx:    ctx,
		svc:    svc,
		opts:   opts,
		config: newConfigurator(svc, opts.Names, opts.Values),
		keys:   newKeyMap(),
		help:   help.New(),
		theme:  widgets.DefaultTheme(),
		// Init starts the frame loop.
		ticking: true,
	}

	accOpts := []widgets.AccordionOption{widgets.WithCurve(opts.Curve), widgets.WithFPS(opts.FPS)}
	if opts.Clock != nil {
		accOpts = append(accOpts, widgets.WithClock(opts.Clock))
	}
	sections := []struct {
		title string
		body  []string
		open  bool
	}{
		{title: "Arrow spring", body: m.springLines(tokens.TargetArrow), open: true},
		{title: "Content spring", body: m.springLines(tokens.TargetContent)},
		{title: "Timing", body: m.timingLines()},
		{title: "Style variables", body: m.styleLines()},
	}
	for _, s := range sections {
		o := accOpts
		if s.open {
			o = append(append([]widgets.AccordionOption(nil), accOpts...), widgets.Expanded())
		}
		acc, err := widgets.NewAccordion(ctx, s.title, s.body, o...)
		if err != nil {
			m.Close()
			return Model{}, err
		}
		m.accordions = append(m.accordions, acc)
	}

	m.slider, err = widgets.NewSlider(ctx, "Spring stiffness", 50, 500, 10, m.stiffness(), opts.FPS)
	if err != nil {
		m.Close()
		return Model{}, err
	}

	m.input = textinput.New()
	m.input.CharLimit = 64
	return m, nil
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frame(m.opts.FPS)
}

// Close stops every widget timer.
func (m Model) Close() {
	for _, acc := range m.accordions {
		acc.Close()
	}
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func frame(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(time.Time) tea.Msg { return frameMsg{} })
}

// focusCount is the number of focusable demo widgets: every accordion plus
// the slider.
func (m Model) focusCount() int {
	return len(m.accordions) + 1
}

func (m Model) stiffness() float64 {
	f, ok := m.svc.Get(tokens.TargetContent.Stiffness()).Float()
	if !ok {
		return 200
	}
	return f
}

func (m Model) springLines(target tokens.Target) []string {
	lines := []string{fmt.Sprintf("preset     %s", m.config.display(target.PresetName()))}
	for _, name := range target.SpringNames() {
		marker := ""
		if m.svc.IsDerived(name) {
			marker = " (preset)"
		}
		lines = append(lines, fmt.Sprintf("%-10s %s%s", m.config.label(name), m.svc.Get(name).String(), marker))
	}
	return lines
}

func (m Model) timingLines() []string {
	tween := animation.AccordionTransition(m.svc)
	content := animation.ContentAnimation(m.svc, 0, m.opts.Curve)
	return []string{
		fmt.Sprintf("transition %s %s", tween.Duration, tween.Easing),
		fmt.Sprintf("fade       %s %s", content.Opacity.Duration, content.Opacity.Easing),
		fmt.Sprintf("slider     %s", m.svc.Get(tokens.SliderTransitionDuration).String()),
	}
}

func (m Model) styleLines() []string {
	vars := m.svc.Snapshot().StyleVariables()
	if m.opts.Sheet != nil {
		if published := m.opts.Sheet.Variables(); len(published) > 0 {
			vars = published
		}
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, vars[k]))
	}
	return lines
}

// refresh rebuilds the accordion bodies after a token change.
func (m *Model) refresh() {
	bodies := [][]string{
		m.springLines(tokens.TargetArrow),
		m.springLines(tokens.TargetContent),
		m.timingLines(),
		m.styleLines(),
	}
	for i, acc := range m.accordions {
		if i < len(bodies) {
			acc.SetBody(bodies[i])
		}
	}
	m.slider.SetValue(m.stiffness())
}
