package cli

import (
	"github.com/capsync/capsync/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "capsync",
	Short: "Caption-timeline synchronizer for video players",
	Long: `Capsync keeps captions in sync with playback: it resolves the active
cue for any playback position, normalizes raw clocks across player
backends, and drives the show/auto-hide/freeze behavior of a caption
panel.

The simulate command replays a scripted session against the engine on
a virtual clock; lookup and convert expose the cue search and time
normalization directly.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Path to a capsync.toml config file")
}
