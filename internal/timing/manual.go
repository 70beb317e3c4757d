package timing

import "time"

// ManualScheduler is a virtual clock for tests and scripted
// simulations. Time only moves when Advance is called; due timers fire
// synchronously, in deadline order, on the calling goroutine. Not safe
// for concurrent use.
type ManualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	deadline  time.Duration
	fn        func()
	fired     bool
	cancelled bool
}

func (t *manualTimer) Cancel() {
	t.cancelled = true
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) After(d time.Duration, fn func()) Timer {
	t := &manualTimer{deadline: m.now + d, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Now reports the current virtual time.
func (m *ManualScheduler) Now() time.Duration {
	return m.now
}

// Pending counts timers that are armed but have not fired.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.fired && !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing every due timer in
// deadline order. Callbacks may arm new timers; those fire too if
// their deadline falls within the advanced window.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.earliestDue(target)
		if next == nil {
			break
		}
		if next.deadline > m.now {
			m.now = next.deadline
		}
		next.fired = true
		next.fn()
	}
	m.now = target
	m.compact()
}

func (m *ManualScheduler) earliestDue(target time.Duration) *manualTimer {
	var due *manualTimer
	for _, t := range m.timers {
		if t.fired || t.cancelled || t.deadline > target {
			continue
		}
		if due == nil || t.deadline < due.deadline {
			due = t
		}
	}
	return due
}

func (m *ManualScheduler) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.fired && !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live
}
