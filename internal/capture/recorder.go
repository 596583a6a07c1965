package capture

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/vnetman/screencast/internal/config"
	"github.com/vnetman/screencast/internal/pidfile"
)

// Recorder runs ffmpeg captures, registering each run in the pid file so
// the kill path can find and stop the newest instance.
type Recorder struct {
	log      *slog.Logger
	cfg      config.CaptureConfig
	registry *pidfile.Registry

	// Output destination for relayed ffmpeg output, os.Stdout by default
	Output io.Writer

	// StopTimeout bounds the wait for ffmpeg to exit after 'q' is sent
	StopTimeout time.Duration
}

// NewRecorder creates a Recorder backed by the given registry
func NewRecorder(cfg config.CaptureConfig, registry *pidfile.Registry, logger *slog.Logger) *Recorder {
	return &Recorder{
		log:         logger,
		cfg:         cfg,
		registry:    registry,
		Output:      os.Stdout,
		StopTimeout: config.StopTimeout,
	}
}

// Record captures the region to outFile until ctx is cancelled (the caller
// wires SIGUSR1 and SIGINT to that cancellation). ffmpeg's own output is
// relayed to the Recorder's Output. ffmpeg exiting before a stop was
// requested is an error: the recording died.
func (r *Recorder) Record(ctx context.Context, region Region, outFile string, mute bool) error {
	log := r.log.With("session_id", uuid.NewString())

	args, err := Command(r.cfg, region, outFile, mute)
	if err != nil {
		return err
	}

	pid, err := r.registry.Add()
	if err != nil {
		return fmt.Errorf("registering capture instance: %w", err)
	}
	defer func() {
		if err := r.registry.Remove(); err != nil {
			log.Error("failed to deregister capture instance", "pid", pid, "error", err)
		}
	}()

	log.Info("starting capture", "pid", pid, "out", outFile, "area", region.String(), "command", args)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = r.Output
	cmd.Stderr = r.Output
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("opening ffmpeg stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		// ffmpeg runs until stopped; exiting on its own means trouble
		if err != nil {
			return fmt.Errorf("ffmpeg exited unexpectedly: %w", err)
		}
		return fmt.Errorf("ffmpeg exited unexpectedly")

	case <-ctx.Done():
		log.Info("stop requested, terminating ffmpeg", "pid", pid)
		return r.stop(log, stdin, cmd, done)
	}
}

// stop asks ffmpeg to finalize the output by sending 'q' on stdin, then
// waits. A recorder that ignores the request within StopTimeout is killed.
func (r *Recorder) stop(log *slog.Logger, stdin io.WriteCloser, cmd *exec.Cmd, done chan error) error {
	// Write errors are fine here; ffmpeg may have closed its stdin already
	if _, err := io.WriteString(stdin, "q"); err != nil {
		log.Debug("could not write quit command to ffmpeg", "error", err)
	}
	stdin.Close()

	select {
	case <-done:
		log.Info("capture terminated")
		return nil
	case <-time.After(r.StopTimeout):
		log.Warn("ffmpeg did not exit in time, killing it")
		if err := cmd.Process.Kill(); err != nil {
			return fmt.Errorf("killing unresponsive ffmpeg: %w", err)
		}
		<-done
		return nil
	}
}
