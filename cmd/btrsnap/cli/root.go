// Package cli implements the btrsnap command-line interface using Cobra.
// It provides commands for creating, listing, pruning, and replicating
// timestamped btrfs snapshots.
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/majorcontext/btrsnap/internal/btrfs"
	"github.com/majorcontext/btrsnap/internal/config"
	"github.com/majorcontext/btrsnap/internal/log"
	"github.com/majorcontext/btrsnap/internal/ops"
)

var (
	verbose bool
	jsonOut bool

	// cfg is loaded once in PersistentPreRunE and supplies flag defaults.
	cfg = config.DefaultGlobalConfig()
)

var rootCmd = &cobra.Command{
	Use:   "btrsnap",
	Short: "btrsnap - timestamped btrfs snapshots with incremental replication",
	Long: `btrsnap is a btrfs wrapper to simplify dealing with snapshots.
You will need root privileges for some actions.

To use, create a root directory on a btrfs filesystem where you will keep
your snapshots. Within this directory create any number of subdirectories.
Inside each subdirectory create a symbolic link that points to the btrfs
subvolume you wish to create snapshots of.

For example:

        /snapshots
            -/music
                target (symbolic link pointing to => /srv/music)
            -/photos
                target (symbolic link pointing to => /srv/photos)

Note: you can create a symbolic link using:
        ln -s /srv/music /snapshots/music/target`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ = config.LoadGlobal()

		debugDir := filepath.Join(config.GlobalConfigDir(), "debug")
		if err := log.Init(log.Options{
			Verbose:       verbose,
			JSONFormat:    jsonOut,
			DebugDir:      debugDir,
			RetentionDays: cfg.Debug.RetentionDays,
		}); err != nil {
			// Log init failure is non-fatal - fallback to default logger
			cmd.PrintErrf("Warning: failed to initialize debug logging: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newEngine returns the operation engine backed by the real btrfs tools.
func newEngine() *ops.Engine {
	return ops.New(btrfs.CLI{})
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
}
