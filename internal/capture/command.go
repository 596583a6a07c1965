package capture

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vnetman/screencast/internal/config"
	serrors "github.com/vnetman/screencast/internal/errors"
)

// Command returns the full ffmpeg argument vector for capturing the given
// region. The first element is the resolved ffmpeg path.
func Command(cfg config.CaptureConfig, region Region, outFile string, mute bool) ([]string, error) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("this program relies on ffmpeg to do the actual capturing, "+
			"but ffmpeg appears to be missing on this system, please install: %w", err)
	}
	return commandArgs(ffmpeg, cfg, region, outFile, mute), nil
}

func commandArgs(ffmpeg string, cfg config.CaptureConfig, region Region, outFile string, mute bool) []string {
	args := []string{
		ffmpeg,
		"-f", "x11grab",
		"-r", strconv.Itoa(cfg.Framerate),
		"-s", fmt.Sprintf("%dx%d", region.Width(), region.Height()),
		"-i", fmt.Sprintf("%s+%d,%d", cfg.Display, region.TopLeft.X, region.TopLeft.Y),
	}

	if !mute {
		args = append(args,
			"-f", "pulse",
			"-ac", strconv.Itoa(cfg.AudioChannels),
			"-i", cfg.AudioSource,
		)
	}

	return append(args, outFile)
}

// ValidateOutputFile rejects output names without a .mkv extension and
// refuses to overwrite an existing file
func ValidateOutputFile(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".mkv") {
		return serrors.InvalidInputf("output file name %q needs a .mkv extension", path)
	}
	if _, err := os.Stat(path); err == nil {
		return serrors.InvalidInputf("output file %q already exists, won't overwrite", path)
	}
	return nil
}
