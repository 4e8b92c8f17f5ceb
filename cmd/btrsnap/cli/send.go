package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sendRecursive bool

var sendCmd = &cobra.Command{
	Use:   "send <send-path> <receive-path>",
	Short: "Replicate snapshots to another btrfs filesystem",
	Long: `Send all snapshots from SendPATH to ReceivePATH if not present.

Only snapshots the receive side lacks are transferred, oldest first. When a
common snapshot exists on both sides it is used as the parent of the first
transfer, and each later transfer is incremental against the one before it,
so repeated sends move only the changed data.

Examples:
  btrsnap send /snapshots/music /backup/music
  btrsnap send -r /snapshots /backup         # Every subdirectory; missing
                                             # receive directories are created`,
	Args: cobra.ExactArgs(2),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().BoolVarP(&sendRecursive, "recursive", "r", false, "instead, send each subdirectory of SendPATH to a same-named subdirectory of ReceivePATH")
}

func runSend(cmd *cobra.Command, args []string) error {
	engine := newEngine()

	var msg string
	var err error
	if sendRecursive {
		msg, err = engine.SyncDeep(args[0], args[1])
	} else {
		msg, err = engine.Sync(args[0], args[1])
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
