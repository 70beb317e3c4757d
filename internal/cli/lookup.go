package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/capsync/capsync/internal/captions"
	"github.com/capsync/capsync/internal/cuesource"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [caption_file] [time]",
	Short: "Resolve the active cue at a playback time",
	Long: `Resolve which cue is active at the given canonical playback time.

Time accepts plain seconds (90.5) or an SRT/VTT style timestamp
(00:01:30,500 or 00:01:30.500).

Examples:
  capsync lookup captions.srt 90.5
  capsync lookup captions.vtt 00:01:30.500`,
	Args: cobra.ExactArgs(2),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

var clockTimestampRegex = regexp.MustCompile(
	`^(\d{1,2}):(\d{2}):(\d{2})[,.](\d{1,3})$`,
)

// parseTimeMs accepts "90.5" seconds or "HH:MM:SS,mmm" timestamps and
// returns canonical milliseconds.
func parseTimeMs(s string) (int64, error) {
	s = strings.TrimSpace(s)

	if matches := clockTimestampRegex.FindStringSubmatch(s); len(matches) == 5 {
		h, _ := strconv.ParseInt(matches[1], 10, 64)
		m, _ := strconv.ParseInt(matches[2], 10, 64)
		sec, _ := strconv.ParseInt(matches[3], 10, 64)
		frac := matches[4]
		for len(frac) < 3 {
			frac += "0"
		}
		ms, _ := strconv.ParseInt(frac, 10, 64)
		return ((h*60+m)*60+sec)*1000 + ms, nil
	}

	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: use seconds or HH:MM:SS,mmm", s)
	}
	return int64(seconds * 1000), nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	track, err := cuesource.Load(args[0])
	if err != nil {
		return err
	}
	timeMs, err := parseTimeMs(args[1])
	if err != nil {
		return err
	}

	index := captions.NewIndex(track)
	i, ok := index.Search(timeMs)
	if !ok {
		fmt.Println("No cues loaded; nothing is active.")
		return nil
	}

	cue := track.Cue(i)
	fmt.Printf("Active cue at %dms: #%d (starts %dms)\n", timeMs, cue.Index, cue.Start)
	fmt.Println(cue.Text)
	return nil
}
