package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var listRecursive bool

var listCmd = &cobra.Command{
	Use:   "list <path>",
	Short: "Show timestamped snapshots",
	Long: `Show the timestamped snapshots in PATH, newest first.

When stdout is not a terminal, only the bare identifiers are printed so the
output is easy to pipe. With -r, every subdirectory of PATH is listed with a
per-repository summary.

Examples:
  btrsnap list /snapshots/music
  btrsnap list -r /snapshots
  btrsnap list --json /snapshots/music | jq .`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listRecursive, "recursive", "r", false, "instead, show summary statistics for all subdirectories of PATH")
}

func runList(cmd *cobra.Command, args []string) error {
	path := args[0]
	engine := newEngine()
	out := cmd.OutOrStdout()
	plain := !isTerminal()

	if !listRecursive {
		listing, err := engine.List(path)
		if err != nil {
			return err
		}
		if jsonOut {
			return writeJSON(out, listing)
		}
		writeListing(out, listing, plain)
		return nil
	}

	listings, err := engine.ListDeep(path)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(out, listings)
	}
	writeListings(out, path, listings, plain)
	return nil
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
