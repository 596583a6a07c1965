package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/vnetman/screencast/internal/capture"
	"github.com/vnetman/screencast/internal/config"
	"github.com/vnetman/screencast/internal/pidfile"
	"github.com/vnetman/screencast/internal/pointer"
)

// NewCaptureCommand creates the capture command
func NewCaptureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture a screencast",
		Long: "Interactively select a capture area with the mouse pointer, then\n" +
			"record it with ffmpeg until 'screencast kill' (or Ctrl-C) stops it.",
		RunE: runCapture,
	}

	cmd.Flags().String("out", "", "Output file (.mkv)")
	cmd.Flags().Bool("mute", false, "Don't record audio")
	cmd.MarkFlagRequired("out")

	return cmd
}

func runCapture(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromCmd(cmd)
	cfg := getConfigFromCmd(cmd)

	outFile, _ := cmd.Flags().GetString("out")
	mute, _ := cmd.Flags().GetBool("mute")

	if err := capture.ValidateOutputFile(outFile); err != nil {
		pterm.Error.Println(err)
		return err
	}
	pterm.Info.Printfln("Will write to %s", outFile)

	region, err := selectRegion(cmd)
	if err != nil {
		pterm.Error.Println(err)
		return err
	}
	pterm.Info.Printfln("Capture area: %s", region)

	if _, err := pterm.DefaultInteractiveTextInput.
		Show(fmt.Sprintf("*** Ready to capture *** Recording starts %v after you hit <Enter>",
			cfg.Capture.Countdown())); err != nil {
		return err
	}
	countdown(cfg.Capture.Countdown())

	// The 'kill' subcommand stops us with SIGUSR1; Ctrl-C and a polite
	// SIGTERM get the same graceful treatment
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGUSR1, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := pidfile.New(config.ProgramName, logger)
	recorder := capture.NewRecorder(cfg.Capture, registry, logger)

	if err := recorder.Record(ctx, region, outFile, mute); err != nil {
		pterm.Error.Printfln("Capture failed: %v", err)
		return err
	}

	pterm.Success.Printfln("Recording saved to %s", outFile)
	return nil
}

// selectRegion walks the user through marking the two corners of the
// capture area with the mouse pointer
func selectRegion(cmd *cobra.Command) (capture.Region, error) {
	topLeft, err := promptCorner(cmd, "TOP LEFT")
	if err != nil {
		return capture.Region{}, err
	}

	bottomRight, err := promptCorner(cmd, "BOTTOM RIGHT")
	if err != nil {
		return capture.Region{}, err
	}

	region := capture.Region{TopLeft: topLeft, BottomRight: bottomRight}
	if err := region.Validate(); err != nil {
		return capture.Region{}, err
	}
	return region, nil
}

func promptCorner(cmd *cobra.Command, corner string) (capture.Point, error) {
	pterm.Println()
	pterm.Info.Printfln("Place the mouse pointer at the %s of the capture area.", corner)
	pterm.Warning.Println("Do *NOT* click.")

	if _, err := pterm.DefaultInteractiveTextInput.Show("Press <Enter> when ready"); err != nil {
		return capture.Point{}, err
	}

	return pointer.Location(cmd.Context())
}

func countdown(d time.Duration) {
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Capturing starts in %v ...", d))
	time.Sleep(d)
	if spinner != nil {
		spinner.Success("Recording")
	}
}
