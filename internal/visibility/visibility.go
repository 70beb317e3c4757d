package visibility

import (
	"sync"
	"time"

	"github.com/capsync/capsync/internal/timing"
)

// State is the transient animation state of the caption panel,
// independent of the persisted user preference.
type State int

const (
	Invisible State = iota
	Visible
	Hiding
)

func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case Hiding:
		return "hiding"
	default:
		return "invisible"
	}
}

// Sink receives show/hide intents for the presentation layer.
type Sink interface {
	Show()
	Hide()
}

// Options tunes the machine's timers.
type Options struct {
	// AutoHideDelay is how long captions stay shown after the last
	// RequestShow before the auto-hide timer fires.
	AutoHideDelay time.Duration
	// FadeDuration is how long the hide transition runs before the
	// state settles on Invisible.
	FadeDuration time.Duration
}

func DefaultOptions() Options {
	return Options{
		AutoHideDelay: 2 * time.Second,
		FadeDuration:  1 * time.Second,
	}
}

// Machine drives caption visibility from interaction events and
// timers. At most one auto-hide timer is pending at any instant; every
// transition that supersedes a timer cancels it first, so a stale
// callback can never corrupt a newer state.
type Machine struct {
	mu           sync.Mutex
	state        State
	userHidden   bool
	showInFlight bool

	hideTimer timing.Timer // pending auto-hide, nil when disarmed
	fadeTimer timing.Timer // in-flight hide transition, nil when idle

	sched timing.Scheduler
	sink  Sink
	opts  Options

	// OnUserHidden fires after SetUserHidden changes the preference;
	// the engine uses it to persist the flag and record analytics.
	// Called without the machine lock held.
	OnUserHidden func(hidden bool)
	// OnUserShown fires when SetUserHidden(false) forces visibility;
	// the engine uses it to re-arm scrolling to the active cue.
	OnUserShown func()
}

func NewMachine(sched timing.Scheduler, sink Sink, opts Options) *Machine {
	if opts.AutoHideDelay <= 0 {
		opts.AutoHideDelay = DefaultOptions().AutoHideDelay
	}
	if opts.FadeDuration <= 0 {
		opts.FadeDuration = DefaultOptions().FadeDuration
	}
	return &Machine{sched: sched, sink: sink, opts: opts}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) UserHidden() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userHidden
}

// RequestShow reacts to user activity. It is a no-op when the user has
// explicitly hidden captions or while another show is in flight. Every
// branch that leaves the panel visible re-arms the auto-hide timer.
func (m *Machine) RequestShow() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.userHidden || m.showInFlight {
		return
	}
	m.showInFlight = true
	defer func() { m.showInFlight = false }()

	switch m.state {
	case Invisible:
		m.state = Visible
		m.sink.Show()
	case Hiding:
		// Cancel the fade mid-flight and snap to fully shown.
		m.cancelFade()
		m.state = Visible
		m.sink.Show()
	case Visible:
		// Only the pending timer needs refreshing.
	}
	m.armAutoHide()
}

// SetUserHidden applies the user's explicit toggle. Hiding dismisses
// the panel immediately, overriding any pending timers; showing forces
// visibility. Repeated calls with the same value are no-ops.
func (m *Machine) SetUserHidden(hidden bool) {
	m.mu.Lock()
	if m.userHidden == hidden {
		m.mu.Unlock()
		return
	}
	m.userHidden = hidden
	m.cancelAutoHide()
	m.cancelFade()

	var shown func()
	if hidden {
		if m.state != Invisible {
			m.state = Invisible
			m.sink.Hide()
		}
	} else {
		if m.state != Visible {
			m.state = Visible
			m.sink.Show()
		}
		shown = m.OnUserShown
	}
	changed := m.OnUserHidden
	m.mu.Unlock()

	if shown != nil {
		shown()
	}
	if changed != nil {
		changed(hidden)
	}
}

// autoHide is the pending timer's callback.
func (m *Machine) autoHide() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hideTimer = nil
	// Captions are meant to persist while the user wants them shown.
	// This also guards against a stale timer that survived a
	// preference flip.
	if !m.userHidden {
		return
	}
	if m.state != Visible {
		return
	}
	m.state = Hiding
	m.sink.Hide()
	m.fadeTimer = m.sched.After(m.opts.FadeDuration, m.finishHide)
}

// finishHide completes the fade transition.
func (m *Machine) finishHide() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fadeTimer = nil
	if m.state == Hiding {
		m.state = Invisible
	}
}

func (m *Machine) armAutoHide() {
	m.cancelAutoHide()
	m.hideTimer = m.sched.After(m.opts.AutoHideDelay, m.autoHide)
}

func (m *Machine) cancelAutoHide() {
	if m.hideTimer != nil {
		m.hideTimer.Cancel()
		m.hideTimer = nil
	}
}

func (m *Machine) cancelFade() {
	if m.fadeTimer != nil {
		m.fadeTimer.Cancel()
		m.fadeTimer = nil
	}
}
