package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/capsync/capsync/internal/config"
	"github.com/capsync/capsync/internal/prefstore"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect or change stored caption preferences",
}

var prefsGetCmd = &cobra.Command{
	Use:   "get [video_id]",
	Short: "Show the stored hidden preference for a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefsGet,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set [video_id] [on|off]",
	Short: "Set whether captions start hidden for a video",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}

func openPrefStore() (*prefstore.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return prefstore.Open(cfg.PrefsDBPath())
}

func runPrefsGet(cmd *cobra.Command, args []string) error {
	store, err := openPrefStore()
	if err != nil {
		return err
	}
	defer store.Close()

	hidden, ok, err := store.Load(args[0])
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("%s: no stored preference (captions shown by default)\n", args[0])
		return nil
	}
	if hidden {
		fmt.Printf("%s: captions hidden\n", args[0])
	} else {
		fmt.Printf("%s: captions shown\n", args[0])
	}
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	var hidden bool
	switch args[1] {
	case "on":
		hidden = true
	case "off":
		hidden = false
	default:
		return fmt.Errorf("invalid value %q: use on or off", args[1])
	}

	store, err := openPrefStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(args[0], hidden); err != nil {
		return err
	}
	logger.Infow("preference updated",
		"video_id", args[0],
		"hidden", hidden,
		"db", store.Path(),
	)
	return nil
}
