package timing

import "time"

// Timer is an armed delay that can be cancelled before it fires.
type Timer interface {
	Cancel()
}

// Scheduler arms one-shot timers. The engine owns exactly one
// scheduler; components never call time.AfterFunc directly so tests
// and simulations can substitute a virtual clock.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// StdScheduler arms real wall-clock timers.
type StdScheduler struct{}

func (StdScheduler) After(d time.Duration, fn func()) Timer {
	return stdTimer{time.AfterFunc(d, fn)}
}

type stdTimer struct {
	t *time.Timer
}

func (s stdTimer) Cancel() {
	s.t.Stop()
}
