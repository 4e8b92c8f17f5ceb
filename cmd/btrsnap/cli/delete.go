package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteRecursive bool
	deleteKeep      int
)

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete all but the most recent snapshots",
	Long: `Delete all but the KEEP most recent snapshots from PATH.

Deletes are independent of each other: a snapshot that cannot be deleted is
reported and skipped, and the remaining planned deletions still run.

Examples:
  btrsnap delete /snapshots/music            # Keep the configured default
  btrsnap delete -k 3 /snapshots/music       # Keep the newest 3
  btrsnap delete -r /snapshots               # Prune every subdirectory`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteRecursive, "recursive", "r", false, "instead, prune each subdirectory of PATH")
	deleteCmd.Flags().IntVarP(&deleteKeep, "keep", "k", 0, "snapshots to keep (default from config)")
}

func runDelete(cmd *cobra.Command, args []string) error {
	path := args[0]
	engine := newEngine()

	keep := deleteKeep
	if !cmd.Flags().Changed("keep") {
		keep = cfg.Snapshots.Keep
	}

	var msg string
	var err error
	if deleteRecursive {
		msg, err = engine.UnsnapDeep(path, keep)
	} else {
		msg, err = engine.Unsnap(path, keep)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
