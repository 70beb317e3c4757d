package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/capsync/capsync/internal/captions"
	"github.com/capsync/capsync/internal/logging"
	"github.com/capsync/capsync/internal/scroll"
	"github.com/capsync/capsync/internal/timeconv"
	"github.com/capsync/capsync/internal/timing"
	"github.com/capsync/capsync/internal/visibility"
)

// PlaybackSample is one raw position reading from the player backend.
// Samples arrive in non-decreasing time order at player-driven
// frequency.
type PlaybackSample struct {
	Raw     float64 // backend-native seconds
	Speed   float64
	Backend timeconv.Backend
}

// Presenter receives the engine's synchronization and visibility
// intents. Rendering, DOM positioning, and input binding live behind
// this boundary.
type Presenter interface {
	CueChanged(change captions.Change)
	Show()
	Hide()
	ScrollTo(offset int)
	RequestSeek(rawSeconds float64)
}

// Geometry supplies the measurements the scroll contract needs. The
// presentation layer owns sizing; the engine only does the centering
// arithmetic.
type Geometry interface {
	CueHeight(index int) int
	ContainerHeight() int
}

// PreferenceStore persists the user's hidden preference across player
// sessions.
type PreferenceStore interface {
	Load(videoID string) (hidden bool, ok bool, err error)
	Save(videoID string, hidden bool) error
}

// Analytics records user-facing caption events.
type Analytics interface {
	Record(event string, attrs map[string]string)
}

// Options configures a single engine instance.
type Options struct {
	VideoID       string
	Converter     timeconv.Converter
	AutoHideDelay time.Duration
	FadeDuration  time.Duration
	FreezeWindow  time.Duration

	Scheduler timing.Scheduler
	Presenter Presenter
	Geometry  Geometry
	Prefs     PreferenceStore
	Analytics Analytics
	Logger    *logging.Logger
}

// Engine wires the converter, tracker, visibility machine, and scroll
// coordinator together. Components own their state exclusively; all
// cross-component effects flow through explicit calls here, and a
// mutex serializes event handlers so every transition runs to
// completion before the next one starts.
type Engine struct {
	mu sync.Mutex

	sessionID string
	videoID   string
	conv      timeconv.Converter

	track   *captions.Track
	tracker *captions.Tracker

	vis *visibility.Machine
	scr *scroll.Coordinator

	presenter Presenter
	geometry  Geometry
	prefs     PreferenceStore
	analytics Analytics
	log       *logging.Logger

	lastSpeed   float64
	lastBackend timeconv.Backend

	// restoring suppresses the persist/analytics hook while the
	// stored preference is being re-applied at load time.
	restoring bool
}

func New(opts Options) *Engine {
	if opts.Presenter == nil {
		panic("engine: Presenter is required")
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timing.StdScheduler{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	e := &Engine{
		sessionID: uuid.NewString(),
		videoID:   opts.VideoID,
		conv:      opts.Converter,
		tracker:   captions.NewTracker(captions.NewIndex(nil)),
		presenter: opts.Presenter,
		geometry:  opts.Geometry,
		prefs:     opts.Prefs,
		analytics: opts.Analytics,
		log:       opts.Logger,
		lastSpeed: 1,
	}

	e.vis = visibility.NewMachine(opts.Scheduler, presenterSink{opts.Presenter}, visibility.Options{
		AutoHideDelay: opts.AutoHideDelay,
		FadeDuration:  opts.FadeDuration,
	})
	e.vis.OnUserHidden = e.userHiddenChanged
	e.vis.OnUserShown = func() { e.scr.ScrollToActive() }

	e.scr = scroll.NewCoordinator(opts.Scheduler, presenterSink{opts.Presenter}, e.activeTarget, opts.FreezeWindow)

	return e
}

// presenterSink adapts the Presenter to the component-level sinks.
type presenterSink struct {
	p Presenter
}

func (s presenterSink) Show()               { s.p.Show() }
func (s presenterSink) Hide()               { s.p.Hide() }
func (s presenterSink) ScrollTo(offset int) { s.p.ScrollTo(offset) }

// SessionID identifies this engine instance in analytics and logs.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// LoadTrack installs a new caption track, replacing any previous one,
// and applies the persisted hidden preference. A nil track deactivates
// lookups entirely; that is the expected "no caption track" condition,
// not an error.
func (e *Engine) LoadTrack(track *captions.Track) {
	e.mu.Lock()
	e.track = track
	e.tracker = captions.NewTracker(captions.NewIndex(track))
	e.mu.Unlock()

	hidden := false
	if e.prefs != nil && e.videoID != "" {
		stored, ok, err := e.prefs.Load(e.videoID)
		if err != nil {
			e.log.Debugw("hidden preference unavailable",
				"session", e.sessionID,
				"video_id", e.videoID,
				"error", err,
			)
		} else if ok {
			hidden = stored
		}
	}

	if hidden {
		e.restoring = true
		e.vis.SetUserHidden(true)
		e.restoring = false
	} else {
		e.vis.RequestShow()
	}

	e.log.Debugw("caption track loaded",
		"session", e.sessionID,
		"video_id", e.videoID,
		"cues", track.Len(),
		"hidden", hidden,
	)
}

// HandleSample processes one playback position tick: normalize, update
// the active cue, and re-center when the cue changed.
func (e *Engine) HandleSample(s PlaybackSample) {
	e.mu.Lock()
	e.lastSpeed = s.Speed
	e.lastBackend = s.Backend

	canonical := e.conv.Normalize(s.Raw, s.Speed, s.Backend)
	change, changed := e.tracker.Update(canonical)
	e.mu.Unlock()

	if !changed {
		return
	}
	e.presenter.CueChanged(change)
	e.scr.ScrollToActive()
}

// RequestShow surfaces user activity to the visibility machine.
func (e *Engine) RequestShow() {
	e.vis.RequestShow()
}

// SetUserHidden applies the explicit caption toggle.
func (e *Engine) SetUserHidden(hidden bool) {
	e.vis.SetUserHidden(hidden)
}

// UserHidden reports the current preference.
func (e *Engine) UserHidden() bool {
	return e.vis.UserHidden()
}

// VisibilityState exposes the transient animation state.
func (e *Engine) VisibilityState() visibility.State {
	return e.vis.State()
}

// InteractionStart freezes auto-scroll while the user works the panel.
func (e *Engine) InteractionStart() {
	e.scr.InteractionStart()
}

// InteractionEnd thaws auto-scroll and re-centers if playing.
func (e *Engine) InteractionEnd() {
	e.scr.InteractionEnd()
}

// SetPlaying records playback activity for the scroll contract.
func (e *Engine) SetPlaying(playing bool) {
	e.scr.SetPlaying(playing)
}

// ActivateCue handles a user click on cue i: convert its start time
// back into the raw unit of the active backend and ask the player to
// seek there.
func (e *Engine) ActivateCue(i int) error {
	e.mu.Lock()
	track := e.track
	speed, backend := e.lastSpeed, e.lastBackend
	e.mu.Unlock()

	if track == nil || i < 0 || i >= track.Len() {
		return fmt.Errorf("no cue at index %d", i)
	}
	raw := e.conv.SeekTime(track.Start(i), speed, backend)
	e.presenter.RequestSeek(raw)
	return nil
}

// ActiveCue reports the tracked cue, if any.
func (e *Engine) ActiveCue() (captions.Cue, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.tracker.Active()
	if !ok || e.track == nil {
		return captions.Cue{}, false
	}
	return e.track.Cue(i), true
}

// activeTarget resolves the centering offset for the active cue.
func (e *Engine) activeTarget() (int, bool) {
	e.mu.Lock()
	i, ok := e.tracker.Active()
	geom := e.geometry
	e.mu.Unlock()

	if !ok || geom == nil {
		return 0, false
	}
	return scroll.ComputeOffset(geom.CueHeight(i), geom.ContainerHeight()), true
}

func (e *Engine) userHiddenChanged(hidden bool) {
	if e.restoring {
		return
	}
	if e.prefs != nil && e.videoID != "" {
		if err := e.prefs.Save(e.videoID, hidden); err != nil {
			e.log.Errorw("persist hidden preference",
				"session", e.sessionID,
				"video_id", e.videoID,
				"error", err,
			)
		}
	}
	if e.analytics != nil {
		event := "captions.shown"
		if hidden {
			event = "captions.hidden"
		}
		e.analytics.Record(event, map[string]string{
			"session":  e.sessionID,
			"video_id": e.videoID,
		})
	}
}
