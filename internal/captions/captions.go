package captions

import "fmt"

// Cue is a single caption with its start position on the timeline.
type Cue struct {
	Index int
	Start int64 // milliseconds
	Text  string
}

// Track is a time-ordered caption sequence. It is immutable once
// built; reloading captions replaces the track wholesale.
type Track struct {
	starts []int64
	texts  []string
}

// NewTrack builds a track from parallel start-time and text sequences.
// Start times must be non-decreasing; equal start times are allowed.
func NewTrack(startsMs []int64, texts []string) (*Track, error) {
	if len(startsMs) != len(texts) {
		return nil, fmt.Errorf(
			"cue sequence length mismatch: %d start times, %d texts",
			len(startsMs),
			len(texts),
		)
	}
	for i := 1; i < len(startsMs); i++ {
		if startsMs[i] < startsMs[i-1] {
			return nil, fmt.Errorf(
				"cue start times must be non-decreasing: cue %d starts at %dms, cue %d at %dms",
				i-1, startsMs[i-1], i, startsMs[i],
			)
		}
	}

	track := &Track{
		starts: make([]int64, len(startsMs)),
		texts:  make([]string, len(texts)),
	}
	copy(track.starts, startsMs)
	copy(track.texts, texts)
	return track, nil
}

func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.starts)
}

// Cue returns the cue at position i. Panics if i is out of range, as
// with any slice access.
func (t *Track) Cue(i int) Cue {
	return Cue{Index: i, Start: t.starts[i], Text: t.texts[i]}
}

// Start returns the start time of cue i in milliseconds.
func (t *Track) Start(i int) int64 {
	return t.starts[i]
}
