package main

import (
	"os"

	"github.com/majorcontext/btrsnap/cmd/btrsnap/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
