package timeconv

import (
	"fmt"
	"math"
	"strings"
)

// Backend identifies which playback engine supplies the raw time
// signal. Only the legacy flash backend has speed- and latency-skewed
// clock semantics; every other backend reports real seconds.
type Backend int

const (
	BackendNative Backend = iota
	BackendLegacyFlash
)

func (b Backend) String() string {
	switch b {
	case BackendLegacyFlash:
		return "flash"
	default:
		return "native"
	}
}

// ParseBackend maps a config/CLI string onto a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return BackendNative, nil
	case "flash", "legacy-flash", "legacy_flash":
		return BackendLegacyFlash, nil
	default:
		return BackendNative, fmt.Errorf("unknown backend %q: use native or flash", s)
	}
}

// DefaultFlashLatencyMs compensates for the round-trip signaling delay
// of the legacy flash bridge.
const DefaultFlashLatencyMs = 250

// Converter normalizes raw playback clock readings into canonical
// milliseconds and converts cue start times back into the raw unit of
// the active backend. Pure and deterministic; a zero speed is treated
// as 1x rather than dividing by zero.
type Converter struct {
	FlashLatencyMs int64
}

func New() Converter {
	return Converter{FlashLatencyMs: DefaultFlashLatencyMs}
}

// Normalize converts a raw position reading (seconds) into canonical
// milliseconds. The legacy flash clock advances at the playback rate,
// so its reading is rescaled by speed and shifted by the fixed latency
// compensation. Negative readings clamp to zero; a live player can
// briefly report garbage and the engine must not propagate it.
func (c Converter) Normalize(raw, speed float64, backend Backend) int64 {
	if raw < 0 || math.IsNaN(raw) {
		raw = 0
	}
	if backend == BackendLegacyFlash {
		return int64(math.Round(convertSpeed(raw, speed)*1000)) + c.flashLatency()
	}
	return int64(math.Round(raw * 1000))
}

// SeekTime converts a cue start time (canonical milliseconds) into the
// raw seconds the active backend expects for a seek request. Only the
// legacy flash backend needs the inverse speed and latency transforms.
func (c Converter) SeekTime(startMs int64, speed float64, backend Backend) float64 {
	if backend == BackendLegacyFlash {
		raw := float64(startMs-c.flashLatency()) / 1000
		if s := effectiveSpeed(speed); s != 1 {
			raw /= s
		}
		if raw < 0 {
			raw = 0
		}
		return raw
	}
	raw := float64(startMs) / 1000
	if raw < 0 {
		raw = 0
	}
	return raw
}

func (c Converter) flashLatency() int64 {
	if c.FlashLatencyMs < 0 {
		return 0
	}
	return c.FlashLatencyMs
}

// convertSpeed rescales a legacy clock reading that itself advances at
// the playback rate back onto the 1x timeline.
func convertSpeed(raw, speed float64) float64 {
	return raw * effectiveSpeed(speed)
}

func effectiveSpeed(speed float64) float64 {
	if speed <= 0 || math.IsNaN(speed) {
		return 1
	}
	return speed
}
