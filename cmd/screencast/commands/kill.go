package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/vnetman/screencast/internal/config"
	"github.com/vnetman/screencast/internal/pidfile"
)

// NewKillCommand creates the kill command
func NewKillCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kill",
		Short: "Kill the last running capture instance",
		Long: "Looks up the most recently started capture instance in the pid file\n" +
			"and sends it SIGUSR1, which makes it stop ffmpeg cleanly.",
		RunE: runKill,
	}
}

func runKill(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromCmd(cmd)
	registry := pidfile.New(config.ProgramName, logger)

	// Drop entries for stale instances that didn't terminate cleanly, so
	// we never signal a dead or reused pid
	if err := registry.Sanitize(); err != nil {
		return fmt.Errorf("sanitizing pid file: %w", err)
	}

	pid, ok, err := registry.Last()
	if err != nil {
		return err
	}
	if !ok {
		pterm.Info.Printfln("No running instance of %s to kill", config.ProgramName)
		return nil
	}

	pterm.Info.Printfln("Killing %d ...", pid)
	if err := unix.Kill(pid, unix.SIGUSR1); err != nil {
		return fmt.Errorf("signalling pid %d: %w", pid, err)
	}
	return nil
}
