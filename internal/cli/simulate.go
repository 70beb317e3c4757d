package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/capsync/capsync/internal/captions"
	"github.com/capsync/capsync/internal/config"
	"github.com/capsync/capsync/internal/cuesource"
	"github.com/capsync/capsync/internal/engine"
	"github.com/capsync/capsync/internal/media"
	"github.com/capsync/capsync/internal/prefstore"
	"github.com/capsync/capsync/internal/scenario"
	"github.com/capsync/capsync/internal/timeconv"
	"github.com/capsync/capsync/internal/timing"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario_file]",
	Short: "Replay a scripted playback session against the sync engine",
	Long: `Replay a scripted session from a YAML scenario file on a virtual
clock and report every intent the engine emits: cue changes, show/hide
transitions, scroll targets, and seek requests.

The scenario names a caption file (.srt or .vtt) and a timed list of
position updates and interaction events. Timers fire deterministically
on the virtual clock, so runs are reproducible.

Examples:
  capsync simulate session.yaml
  capsync simulate session.yaml --media lecture.mp4
  capsync simulate session.yaml --cue-height 48 --viewport 600`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().
		String("media", "", "Media file whose real duration bounds scripted positions")
	simulateCmd.Flags().
		Int("cue-height", 30, "Rendered cue height in pixels for scroll centering")
	simulateCmd.Flags().
		Int("viewport", 400, "Caption container height in pixels")
	simulateCmd.Flags().
		Bool("no-prefs", false, "Skip the persistent hidden-preference store")
}

// simEvent is one recorded engine intent with its virtual timestamp.
type simEvent struct {
	at     time.Duration
	kind   string
	detail string
}

// simPresenter records every intent the engine emits, stamped with the
// virtual clock.
type simPresenter struct {
	sched  *timing.ManualScheduler
	events []simEvent
}

func (p *simPresenter) record(kind, detail string) {
	p.events = append(p.events, simEvent{at: p.sched.Now(), kind: kind, detail: detail})
}

func (p *simPresenter) CueChanged(c captions.Change) {
	prev := "none"
	if c.HasPrevious {
		prev = fmt.Sprintf("%d", c.Previous)
	}
	p.record("cue-changed", fmt.Sprintf("%s -> %d", prev, c.Current))
}

func (p *simPresenter) Show()               { p.record("show", "") }
func (p *simPresenter) Hide()               { p.record("hide", "") }
func (p *simPresenter) ScrollTo(offset int) { p.record("scroll", fmt.Sprintf("offset %d", offset)) }
func (p *simPresenter) RequestSeek(raw float64) {
	p.record("seek", fmt.Sprintf("raw %.3fs", raw))
}

type fixedGeometry struct {
	cueHeight int
	viewport  int
}

func (g fixedGeometry) CueHeight(int) int    { return g.cueHeight }
func (g fixedGeometry) ContainerHeight() int { return g.viewport }

// logAnalytics reports analytics events through the CLI logger.
type logAnalytics struct{}

func (logAnalytics) Record(event string, attrs map[string]string) {
	args := make([]any, 0, len(attrs)*2)
	for k, v := range attrs {
		args = append(args, k, v)
	}
	logger.Infow("analytics "+event, args...)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	scenarioPath := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}

	captionsPath := sc.Captions
	if !filepath.IsAbs(captionsPath) {
		captionsPath = filepath.Join(filepath.Dir(scenarioPath), captionsPath)
	}
	track, err := cuesource.Load(captionsPath)
	if err != nil {
		return err
	}

	mediaPath, _ := cmd.Flags().GetString("media")
	var mediaDuration time.Duration
	if mediaPath != "" {
		mediaDuration, err = media.Duration(mediaPath)
		if err != nil {
			return fmt.Errorf("probe media duration: %w", err)
		}
		logger.Infow("media probed",
			"path", mediaPath,
			"duration", mediaDuration.String(),
		)
	}

	cueHeight, _ := cmd.Flags().GetInt("cue-height")
	viewport, _ := cmd.Flags().GetInt("viewport")
	noPrefs, _ := cmd.Flags().GetBool("no-prefs")

	var prefs engine.PreferenceStore
	if !noPrefs {
		store, err := prefstore.Open(cfg.PrefsDBPath())
		if err != nil {
			return err
		}
		defer store.Close()
		prefs = store
	}

	sched := timing.NewManualScheduler()
	presenter := &simPresenter{sched: sched}

	eng := engine.New(engine.Options{
		VideoID:       sc.VideoID,
		Converter:     timeconv.Converter{FlashLatencyMs: cfg.Sync.FlashLatencyMs},
		AutoHideDelay: time.Duration(cfg.Visibility.AutoHideDelayMs) * time.Millisecond,
		FadeDuration:  time.Duration(cfg.Visibility.FadeDurationMs) * time.Millisecond,
		FreezeWindow:  time.Duration(cfg.Scroll.FreezeWindowMs) * time.Millisecond,
		Scheduler:     sched,
		Presenter:     presenter,
		Geometry:      fixedGeometry{cueHeight: cueHeight, viewport: viewport},
		Prefs:         prefs,
		Analytics:     logAnalytics{},
		Logger:        logger,
	})

	logger.Infow("simulation starting",
		"session", eng.SessionID(),
		"scenario", scenarioPath,
		"cues", track.Len(),
		"steps", len(sc.Steps),
	)

	eng.LoadTrack(track)
	eng.SetPlaying(true)

	backend := sc.ParsedBackend()
	for _, step := range sc.Steps {
		if at := time.Duration(step.At) * time.Millisecond; at > sched.Now() {
			sched.Advance(at - sched.Now())
		}
		if err := applyStep(eng, sc, step, backend, mediaDuration); err != nil {
			return err
		}
	}

	// Let outstanding auto-hide, fade, and freeze timers settle.
	settle := time.Duration(cfg.Visibility.AutoHideDelayMs+cfg.Visibility.FadeDurationMs+cfg.Scroll.FreezeWindowMs) * time.Millisecond
	sched.Advance(settle)

	reportSimulation(presenter.events)
	fmt.Printf("Simulation complete: %d steps, %d events, %s virtual time\n",
		len(sc.Steps), len(presenter.events), sched.Now())
	return nil
}

func applyStep(eng *engine.Engine, sc *scenario.Scenario, step scenario.Step, backend timeconv.Backend, mediaDuration time.Duration) error {
	switch step.Action {
	case scenario.ActionPosition:
		raw := step.Raw
		if mediaDuration > 0 && raw > mediaDuration.Seconds() {
			raw = mediaDuration.Seconds()
		}
		eng.HandleSample(engine.PlaybackSample{
			Raw:     raw,
			Speed:   sc.Speed,
			Backend: backend,
		})
	case scenario.ActionInteractionStart:
		eng.InteractionStart()
	case scenario.ActionInteractionEnd:
		eng.InteractionEnd()
	case scenario.ActionShow:
		eng.RequestShow()
	case scenario.ActionToggleHidden:
		eng.SetUserHidden(!eng.UserHidden())
	case scenario.ActionClick:
		if err := eng.ActivateCue(step.Cue); err != nil {
			return fmt.Errorf("step at %dms: %w", step.At, err)
		}
	case scenario.ActionPlay:
		eng.SetPlaying(true)
	case scenario.ActionPause:
		eng.SetPlaying(false)
	}
	return nil
}

func reportSimulation(events []simEvent) {
	if len(events) == 0 {
		fmt.Println("No events emitted.")
		return
	}

	if isTerminal(os.Stdout) {
		rows := make([][]string, 0, len(events))
		for _, evt := range events {
			rows = append(rows, []string{
				fmt.Sprintf("%dms", evt.at.Milliseconds()),
				evt.kind,
				evt.detail,
			})
		}
		fmt.Println(renderTable([]string{"Time", "Event", "Detail"}, rows))
		return
	}

	for _, evt := range events {
		if evt.detail == "" {
			fmt.Printf("%dms\t%s\n", evt.at.Milliseconds(), evt.kind)
			continue
		}
		fmt.Printf("%dms\t%s\t%s\n", evt.at.Milliseconds(), evt.kind, evt.detail)
	}
}
