package scroll

import (
	"sync"
	"time"

	"github.com/capsync/capsync/internal/timing"
)

// Sink receives scroll-to intents for the presentation layer.
type Sink interface {
	ScrollTo(offset int)
}

// TargetFunc resolves the offset for the currently active cue. It
// reports false when no cue is active or no geometry is known.
type TargetFunc func() (offset int, ok bool)

// DefaultFreezeWindow is the quiescence window after the last user
// interaction before auto-scroll resumes on its own.
const DefaultFreezeWindow = 10 * time.Second

// ComputeOffset returns the signed vertical offset that centers a cue
// of the given height inside the container.
func ComputeOffset(cueHeight, containerHeight int) int {
	return containerHeight/2 - cueHeight/2
}

// Coordinator keeps the active cue centered, except while the user is
// interacting with the caption panel. The frozen flag purely gates
// scrolling; it never affects cue tracking or visibility.
type Coordinator struct {
	mu          sync.Mutex
	frozen      bool
	playing     bool
	freezeTimer timing.Timer

	sched  timing.Scheduler
	sink   Sink
	target TargetFunc
	window time.Duration
}

func NewCoordinator(sched timing.Scheduler, sink Sink, target TargetFunc, window time.Duration) *Coordinator {
	if window <= 0 {
		window = DefaultFreezeWindow
	}
	return &Coordinator{
		sched:  sched,
		sink:   sink,
		target: target,
		window: window,
	}
}

func (c *Coordinator) Frozen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frozen
}

// SetPlaying records whether playback is active; interaction end only
// re-triggers scrolling while the video is actually playing.
func (c *Coordinator) SetPlaying(playing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = playing
}

// ScrollToActive emits a scroll-to intent for the active cue. No-op
// while frozen or when no cue is active.
func (c *Coordinator) ScrollToActive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scrollToActive()
}

func (c *Coordinator) scrollToActive() {
	if c.frozen {
		return
	}
	offset, ok := c.target()
	if !ok {
		return
	}
	c.sink.ScrollTo(offset)
}

// InteractionStart freezes auto-scroll and arms (or refreshes) the
// quiescence timer that will thaw it.
func (c *Coordinator) InteractionStart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frozen = true
	c.cancelFreezeTimer()
	c.freezeTimer = c.sched.After(c.window, c.thaw)
}

// InteractionEnd thaws auto-scroll immediately and, if playback is
// active, snaps the active cue back to center.
func (c *Coordinator) InteractionEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelFreezeTimer()
	c.frozen = false
	if c.playing {
		c.scrollToActive()
	}
}

// thaw is the quiescence timer's callback.
func (c *Coordinator) thaw() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.freezeTimer = nil
	c.frozen = false
}

func (c *Coordinator) cancelFreezeTimer() {
	if c.freezeTimer != nil {
		c.freezeTimer.Cancel()
		c.freezeTimer = nil
	}
}
