package main

import (
	"os"

	"github.com/structype-lang/structype/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
