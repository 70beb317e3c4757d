// Package media probes real media files so simulations can bound
// scripted playback by the actual video duration.
package media

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Duration returns the duration of an audio or video file via ffprobe.
func Duration(path string) (time.Duration, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", path)
	}

	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	seconds := gjson.Get(out, "format.duration").Float()
	if seconds <= 0 {
		return 0, fmt.Errorf("no duration reported for %s", path)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
