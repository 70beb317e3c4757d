package visibility

import (
	"testing"
	"time"

	"github.com/capsync/capsync/internal/timing"
)

type recordingSink struct {
	shows int
	hides int
}

func (r *recordingSink) Show() { r.shows++ }
func (r *recordingSink) Hide() { r.hides++ }

func newTestMachine() (*Machine, *recordingSink, *timing.ManualScheduler) {
	sched := timing.NewManualScheduler()
	sink := &recordingSink{}
	m := NewMachine(sched, sink, Options{
		AutoHideDelay: 2 * time.Second,
		FadeDuration:  time.Second,
	})
	return m, sink, sched
}

func TestRequestShowFromInvisible(t *testing.T) {
	m, sink, sched := newTestMachine()

	m.RequestShow()
	if m.State() != Visible {
		t.Fatalf("state = %v, want visible", m.State())
	}
	if sink.shows != 1 {
		t.Errorf("shows = %d, want 1", sink.shows)
	}
	if sched.Pending() != 1 {
		t.Errorf("pending timers = %d, want 1 auto-hide", sched.Pending())
	}
}

func TestRepeatedRequestShowKeepsOneTimer(t *testing.T) {
	m, _, sched := newTestMachine()

	for i := 0; i < 5; i++ {
		m.RequestShow()
	}
	if sched.Pending() != 1 {
		t.Fatalf("pending timers after 5 shows = %d, want exactly 1", sched.Pending())
	}
}

func TestRequestShowNoOpWhenUserHidden(t *testing.T) {
	m, sink, sched := newTestMachine()
	m.SetUserHidden(true)

	m.RequestShow()
	if m.State() != Invisible {
		t.Errorf("state = %v, want invisible", m.State())
	}
	if sink.shows != 0 {
		t.Errorf("shows = %d, want 0", sink.shows)
	}
	if sched.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", sched.Pending())
	}
}

func TestAutoHideStaysVisibleWhileUserWantsCaptions(t *testing.T) {
	m, sink, sched := newTestMachine()

	m.RequestShow()
	sched.Advance(10 * time.Second)

	if m.State() != Visible {
		t.Errorf("state = %v, want visible: captions persist while not user-hidden", m.State())
	}
	if sink.hides != 0 {
		t.Errorf("hides = %d, want 0", sink.hides)
	}
}

func TestAutoHideRunsFadeWhenUserHidden(t *testing.T) {
	m, sink, sched := newTestMachine()
	m.RequestShow()

	// Compose the documented auto-hide precondition directly: a
	// visible panel whose user preference flipped to hidden while an
	// auto-hide timer is still pending.
	m.mu.Lock()
	m.userHidden = true
	m.armAutoHide()
	m.mu.Unlock()

	sched.Advance(2 * time.Second)
	if m.State() != Hiding {
		t.Fatalf("state after delay = %v, want hiding", m.State())
	}
	if sink.hides != 1 {
		t.Errorf("hides = %d, want 1", sink.hides)
	}

	sched.Advance(time.Second)
	if m.State() != Invisible {
		t.Errorf("state after fade = %v, want invisible", m.State())
	}
}

func TestRequestShowCancelsInFlightFade(t *testing.T) {
	m, sink, sched := newTestMachine()
	m.RequestShow()
	m.mu.Lock()
	m.userHidden = true
	m.armAutoHide()
	m.mu.Unlock()
	sched.Advance(2 * time.Second)
	if m.State() != Hiding {
		t.Fatalf("state = %v, want hiding", m.State())
	}

	// User activity mid-fade snaps back to fully shown.
	m.mu.Lock()
	m.userHidden = false
	m.mu.Unlock()
	m.RequestShow()
	if m.State() != Visible {
		t.Fatalf("state = %v, want visible", m.State())
	}
	if sink.shows != 2 {
		t.Errorf("shows = %d, want 2", sink.shows)
	}

	// The cancelled fade must never complete.
	sched.Advance(5 * time.Second)
	if m.State() != Visible {
		t.Errorf("state after cancelled fade window = %v, want visible", m.State())
	}
}

func TestSetUserHiddenDismissesImmediately(t *testing.T) {
	m, sink, sched := newTestMachine()
	m.RequestShow()

	m.SetUserHidden(true)
	if m.State() != Invisible {
		t.Fatalf("state = %v, want invisible", m.State())
	}
	if sink.hides != 1 {
		t.Errorf("hides = %d, want 1", sink.hides)
	}
	if sched.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0 after dismissal", sched.Pending())
	}

	// The superseded auto-hide timer must not fire later.
	sched.Advance(time.Minute)
	if sink.hides != 1 {
		t.Errorf("stale timer fired: hides = %d, want 1", sink.hides)
	}
}

func TestSetUserHiddenFalseForcesVisible(t *testing.T) {
	m, sink, _ := newTestMachine()
	m.SetUserHidden(true)

	rearmed := false
	m.OnUserShown = func() { rearmed = true }

	m.SetUserHidden(false)
	if m.State() != Visible {
		t.Fatalf("state = %v, want visible", m.State())
	}
	if sink.shows != 1 {
		t.Errorf("shows = %d, want 1", sink.shows)
	}
	if !rearmed {
		t.Error("OnUserShown hook did not fire")
	}
}

func TestSetUserHiddenIdempotent(t *testing.T) {
	m, _, _ := newTestMachine()

	calls := 0
	m.OnUserHidden = func(bool) { calls++ }

	m.SetUserHidden(true)
	m.SetUserHidden(true)
	if calls != 1 {
		t.Errorf("OnUserHidden calls = %d, want 1", calls)
	}
}

func TestStaleAutoHideAgainstVisibleState(t *testing.T) {
	m, sink, sched := newTestMachine()
	m.RequestShow()

	// Fire the timer directly against a visible, not-user-hidden
	// panel: the guard must treat it as a no-op.
	sched.Advance(2 * time.Second)
	if m.State() != Visible {
		t.Errorf("state = %v, want visible", m.State())
	}
	if sink.hides != 0 {
		t.Errorf("hides = %d, want 0", sink.hides)
	}
}
