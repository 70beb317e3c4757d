package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/capsync/capsync/internal/config"
	"github.com/capsync/capsync/internal/timeconv"
)

var convertCmd = &cobra.Command{
	Use:   "convert [raw_seconds]",
	Short: "Normalize a raw backend clock reading",
	Long: `Normalize a raw playback clock reading into canonical milliseconds,
and show the inverse seek conversion back into the backend's raw unit.

The legacy flash backend's clock advances at the playback rate and
carries a fixed signaling latency; every other backend reports real
seconds regardless of speed.

Examples:
  capsync convert 10 --backend flash --speed 2.0
  capsync convert 90.5`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		Float64("speed", 1.0, "Playback speed factor")
	convertCmd.Flags().
		String("backend", "native", "Playback backend (native, flash)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	raw, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid raw time %q: %w", args[0], err)
	}

	speed, _ := cmd.Flags().GetFloat64("speed")
	backendStr, _ := cmd.Flags().GetString("backend")
	backend, err := timeconv.ParseBackend(backendStr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	conv := timeconv.Converter{FlashLatencyMs: cfg.Sync.FlashLatencyMs}

	canonical := conv.Normalize(raw, speed, backend)
	fmt.Printf("Canonical time: %dms\n", canonical)
	fmt.Printf("Seek round trip: %.3fs\n", conv.SeekTime(canonical, speed, backend))
	return nil
}
