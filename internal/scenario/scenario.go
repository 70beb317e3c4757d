// Package scenario describes scripted playback sessions for the
// simulator: a caption file plus a timed sequence of position updates
// and interaction events, executed on a virtual clock.
package scenario

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/capsync/capsync/internal/timeconv"
)

// Step actions understood by the simulator.
const (
	ActionPosition         = "position"
	ActionInteractionStart = "interact-start"
	ActionInteractionEnd   = "interact-end"
	ActionShow             = "show"
	ActionToggleHidden     = "toggle-hidden"
	ActionClick            = "click"
	ActionPlay             = "play"
	ActionPause            = "pause"
)

// Step is one scripted event. At is virtual milliseconds since the
// start of the session.
type Step struct {
	At     int64   `yaml:"at"`
	Action string  `yaml:"action"`
	Raw    float64 `yaml:"raw,omitempty"`
	Cue    int     `yaml:"cue,omitempty"`
}

// Scenario is a complete scripted session.
type Scenario struct {
	Captions string  `yaml:"captions"`
	VideoID  string  `yaml:"video_id"`
	Backend  string  `yaml:"backend"`
	Speed    float64 `yaml:"speed"`
	Steps    []Step  `yaml:"steps"`
}

// Load reads and validates a scenario file. Steps are sorted by their
// virtual timestamp; speed defaults to 1x and backend to native.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	if strings.TrimSpace(sc.Captions) == "" {
		return nil, fmt.Errorf("scenario is missing a captions file")
	}
	if sc.Speed == 0 {
		sc.Speed = 1
	}
	if sc.Speed < 0 {
		return nil, fmt.Errorf("speed must be positive, got %v", sc.Speed)
	}
	if _, err := timeconv.ParseBackend(sc.Backend); err != nil {
		return nil, err
	}

	for i, step := range sc.Steps {
		if step.At < 0 {
			return nil, fmt.Errorf("step %d: negative timestamp %d", i, step.At)
		}
		switch step.Action {
		case ActionPosition, ActionInteractionStart, ActionInteractionEnd,
			ActionShow, ActionToggleHidden, ActionClick, ActionPlay, ActionPause:
		default:
			return nil, fmt.Errorf("step %d: unknown action %q", i, step.Action)
		}
	}

	sort.SliceStable(sc.Steps, func(i, j int) bool {
		return sc.Steps[i].At < sc.Steps[j].At
	})
	return &sc, nil
}

// ParsedBackend returns the backend enum the scenario selects.
func (s *Scenario) ParsedBackend() timeconv.Backend {
	backend, _ := timeconv.ParseBackend(s.Backend)
	return backend
}
