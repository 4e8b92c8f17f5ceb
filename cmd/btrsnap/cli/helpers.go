package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/majorcontext/btrsnap/internal/ops"
)

// writeListing prints one repository's snapshots, newest first. In plain mode
// only the identifiers are written.
func writeListing(w io.Writer, listing ops.Listing, plain bool) {
	for _, id := range listing.Snapshots {
		fmt.Fprintln(w, id)
	}
	if plain {
		return
	}
	fmt.Fprintf(w, "\n%q contains %d snapshot(s)\n", listing.Path, len(listing.Snapshots))
}

// writeListings prints the deep listing: every repository with its snapshots
// and a summary footer. In plain mode each line is one path/identifier pair
// in aligned columns.
func writeListings(w io.Writer, root string, listings []ops.Listing, plain bool) {
	if plain {
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		for _, listing := range listings {
			for _, id := range listing.Snapshots {
				fmt.Fprintf(tw, "%s\t%s\n", listing.Path, id)
			}
		}
		tw.Flush()
		return
	}

	total := 0
	for _, listing := range listings {
		fmt.Fprintf(w, "\n%q/\n", listing.Path)
		if len(listing.Snapshots) == 0 {
			fmt.Fprintln(w, "\t\tNo snapshots")
			continue
		}
		newest := listing.Snapshots[0]
		oldest := listing.Snapshots[len(listing.Snapshots)-1]
		fmt.Fprintf(w, "\t%d snapshots: Newest = %s, Oldest = %s\n",
			len(listing.Snapshots), day(newest), day(oldest))
		for _, id := range listing.Snapshots {
			fmt.Fprintf(w, "\t\t%s\n", id)
			total++
		}
	}

	fmt.Fprintf(w, "\n%s\n", center(" Summary ", 60))
	fmt.Fprintf(w, "%q contains %d snapshots in %d subdirectories\n", root, total, len(listings))
}

// day strips the sequence counter from an identifier, leaving the date.
func day(id string) string {
	if len(id) < 10 {
		return id
	}
	return id[:10]
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat("-", left) + s + strings.Repeat("-", right)
}
