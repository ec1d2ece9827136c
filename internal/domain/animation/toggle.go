package animation

import (
	"sync"
)

// State is the open/close phase of an expandable region.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

// Event names the transition that produced a Snapshot.
type Event int

const (
	EventTriggered Event = iota
	EventMeasured
	EventUnlocked
	EventSettled
)

func (e Event) String() string {
	switch e {
	case EventMeasured:
		return "measured"
	case EventUnlocked:
		return "unlocked"
	case EventSettled:
		return "settled"
	default:
		return "triggered"
	}
}

// Measurer returns the current laid-out height of the expandable content.
// It may return 0 when nothing has been laid out yet.
type Measurer func() float64

// Snapshot is the observable state of a Toggle.
type Snapshot struct {
	Event     Event
	State     State
	Locked    bool
	Animating bool
	Height    float64
}

// IsOpen reports whether the target state is open.
func (s Snapshot) IsOpen() bool {
	return s.State == Open || s.State == Opening
}

// Option configures a Toggle.
type Option func(*Toggle)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(t *Toggle) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithMeasurer installs the layout measurement primitive.
func WithMeasurer(m Measurer) Option {
	return func(t *Toggle) {
		if m != nil {
			t.measure = m
		}
	}
}

// WithCurve overrides the dynamic damping curve.
func WithCurve(c DampingCurve) Option {
	return func(t *Toggle) { t.curve = c }
}

// WithObserver registers a callback invoked after every transition. It runs
// on whichever goroutine fired the transition and must not call back into
// the Toggle synchronously.
func WithObserver(fn func(Snapshot)) Option {
	return func(t *Toggle) {
		if fn != nil {
			t.observers = append(t.observers, fn)
		}
	}
}

// WithInitialState opens the toggle without animating.
func WithInitialState(open bool) Option {
	return func(t *Toggle) {
		if open {
			t.state = Open
		}
	}
}

// Toggle is the open/close state machine of the accordion. Requests are
// ignored while the lock is held; the lock is released after the base
// transition duration and the animation flag clears after the resolved
// duration plus SettleBuffer. Each in-flight timer is owned by exactly one
// handle and every superseding transition stops the previous handles.
type Toggle struct {
	mu sync.Mutex

	clock     Clock
	lookup    Lookup
	measure   Measurer
	curve     DampingCurve
	observers []func(Snapshot)

	state     State
	locked    bool
	animating bool
	height    float64
	measured  bool
	closed    bool

	generation   uint64
	lockTimer    Timer
	settleTimer  Timer
	measureTimer Timer
}

// NewToggle builds a closed Toggle reading durations from lookup.
func NewToggle(lookup Lookup, opts ...Option) *Toggle {
	t := &Toggle{
		clock:   SystemClock{},
		lookup:  lookup,
		measure: func() float64 { return 0 },
		curve:   DefaultDampingCurve(),
		state:   Closed,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Request flips the toggle unless the lock is held. It reports whether the
// request was accepted.
func (t *Toggle) Request() bool {
	t.mu.Lock()
	if t.locked || t.closed {
		t.mu.Unlock()
		return false
	}
	snap := t.triggerLocked(!t.isOpenLocked())
	t.mu.Unlock()

	t.notify(snap)
	return true
}

// Set drives the toggle to the requested target regardless of the lock.
// Pending timers of the previous transition are cancelled and never fire.
func (t *Toggle) Set(open bool) bool {
	t.mu.Lock()
	if t.closed || t.isOpenLocked() == open {
		t.mu.Unlock()
		return false
	}
	snap := t.triggerLocked(open)
	t.mu.Unlock()

	t.notify(snap)
	return true
}

// Remeasure re-reads the content height, e.g. after a host resize.
func (t *Toggle) Remeasure() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.height = t.measure()
	t.measured = true
	snap := t.snapshotLocked(EventMeasured)
	t.mu.Unlock()

	t.notify(snap)
}

// Snapshot returns the current state.
func (t *Toggle) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked(EventTriggered)
}

// Content returns the content animation derived from the latest measured
// height and the current token values.
func (t *Toggle) Content() ContentConfig {
	t.mu.Lock()
	height := t.height
	t.mu.Unlock()
	return ContentAnimation(t.lookup, height, t.curve)
}

// Close cancels every pending timer. Late callbacks become no-ops.
func (t *Toggle) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.generation++
	t.stopTimersLocked()
}

func (t *Toggle) isOpenLocked() bool {
	return t.state == Open || t.state == Opening
}

func (t *Toggle) triggerLocked(open bool) Snapshot {
	t.stopTimersLocked()
	t.generation++
	gen := t.generation

	t.locked = true
	if open {
		t.state = Opening
	} else {
		t.state = Closing
	}

	if !t.measured {
		t.height = t.measure()
		t.measured = true
	}
	// Re-measure once the host has committed the expanded layout.
	t.measureTimer = t.clock.AfterFunc(0, t.guard(gen, func() Event {
		t.height = t.measure()
		return EventMeasured
	}))

	t.animating = true
	t.lockTimer = t.clock.AfterFunc(LockDuration(t.lookup), t.guard(gen, func() Event {
		t.locked = false
		t.lockTimer = nil
		return EventUnlocked
	}))
	t.settleTimer = t.clock.AfterFunc(TransitionDuration(t.lookup)+SettleBuffer, t.guard(gen, func() Event {
		t.animating = false
		t.settleTimer = nil
		switch t.state {
		case Opening:
			t.state = Open
		case Closing:
			t.state = Closed
		}
		return EventSettled
	}))

	return t.snapshotLocked(EventTriggered)
}

// guard wraps a timer callback so it only applies while its generation is
// current.
func (t *Toggle) guard(gen uint64, apply func() Event) func() {
	return func() {
		t.mu.Lock()
		if t.closed || gen != t.generation {
			t.mu.Unlock()
			return
		}
		snap := t.snapshotLocked(apply())
		t.mu.Unlock()

		t.notify(snap)
	}
}

func (t *Toggle) stopTimersLocked() {
	for _, timer := range []Timer{t.lockTimer, t.settleTimer, t.measureTimer} {
		if timer != nil {
			timer.Stop()
		}
	}
	t.lockTimer, t.settleTimer, t.measureTimer = nil, nil, nil
}

func (t *Toggle) snapshotLocked(ev Event) Snapshot {
	return Snapshot{
		Event:     ev,
		State:     t.state,
		Locked:    t.locked,
		Animating: t.animating,
		Height:    t.height,
	}
}

func (t *Toggle) notify(s Snapshot) {
	for _, fn := range t.observers {
		fn(s)
	}
}
