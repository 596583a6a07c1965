package main

import (
	"context"
	"os"

	"github.com/vnetman/screencast/cmd/screencast/commands"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	rootCmd := commands.NewRootCommand(version, commit, buildDate)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
