package main

import (
	"os"

	"github.com/pablasso/kanban/internal/cli"
)

func main() {
	// Without a subcommand the root command opens the board.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
