package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	snapRecursive bool
	snapDelete    bool
	snapKeep      int
	snapWritable  bool
)

var snapCmd = &cobra.Command{
	Use:   "snap <path>",
	Short: "Create a new timestamped btrfs snapshot",
	Long: `Create a new timestamped btrfs snapshot in PATH. The snapshot will be
of the btrfs subvolume pointed to by the symbolic link in PATH.

Snapshots are named YYYY-MM-DD-NNNN and sort in creation order.

Examples:
  btrsnap snap /snapshots/music              # One new snapshot
  btrsnap snap -r /snapshots                 # One per subdirectory
  btrsnap snap -d -k 7 /snapshots/music      # Snapshot, then keep newest 7`,
	Args: cobra.ExactArgs(1),
	RunE: runSnap,
}

func init() {
	rootCmd.AddCommand(snapCmd)
	snapCmd.Flags().BoolVarP(&snapRecursive, "recursive", "r", false, "instead, create a snapshot in each subdirectory of PATH")
	snapCmd.Flags().BoolVarP(&snapDelete, "delete", "d", false, "prune old snapshots after taking the new one")
	snapCmd.Flags().IntVarP(&snapKeep, "keep", "k", 0, "snapshots to keep when pruning (default from config)")
	snapCmd.Flags().BoolVar(&snapWritable, "writable", false, "create a writable snapshot instead of read-only")
}

func runSnap(cmd *cobra.Command, args []string) error {
	path := args[0]
	engine := newEngine()
	readonly := cfg.Snapshots.Readonly && !snapWritable

	keep := snapKeep
	if !cmd.Flags().Changed("keep") {
		keep = cfg.Snapshots.Keep
	}

	var msg string
	var err error
	if snapRecursive {
		msg, err = engine.SnapDeep(path, readonly)
	} else {
		msg, err = engine.Snap(path, readonly)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)

	if !snapDelete {
		return nil
	}
	if snapRecursive {
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
