package main

import (
	"os"

	"github.com/saleslens-dev/saleslens/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
