package main

import (
	"os"

	"github.com/paisabot-dev/paisabot/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
