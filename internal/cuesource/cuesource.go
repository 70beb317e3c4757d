// Package cuesource turns caption files into the track the sync
// engine consumes. The engine itself never touches files or formats;
// this is the cue-data collaborator at its interface boundary.
package cuesource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/capsync/capsync/internal/captions"
)

// Load reads an .srt or .vtt file and produces the engine's track. An
// empty file yields an empty track, which the engine treats as "no
// caption track", not an error.
func Load(path string) (*captions.Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open caption file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return LoadSRT(file)
	case ".vtt":
		return LoadVTT(file)
	default:
		return nil, fmt.Errorf("unsupported caption format: %s", ext)
	}
}

// LoadSRT parses SubRip captions from r.
func LoadSRT(r io.Reader) (*captions.Track, error) {
	cues, err := parseSRT(r)
	if err != nil {
		return nil, err
	}
	return buildTrack(cues)
}

// LoadVTT parses WebVTT captions from r.
func LoadVTT(r io.Reader) (*captions.Track, error) {
	cues, err := parseVTT(r)
	if err != nil {
		return nil, err
	}
	return buildTrack(cues)
}

type rawCue struct {
	startMs int64
	text    string
}

// buildTrack sorts cues by start time and splits them into the
// parallel sequences the track is built from. Caption files are
// normally ordered already; sorting keeps a sloppy file from violating
// the track's non-decreasing invariant.
func buildTrack(cues []rawCue) (*captions.Track, error) {
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].startMs < cues[j].startMs
	})

	starts := make([]int64, len(cues))
	texts := make([]string, len(cues))
	for i, c := range cues {
		starts[i] = c.startMs
		texts[i] = c.text
	}
	return captions.NewTrack(starts, texts)
}
