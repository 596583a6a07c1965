// Package pointer queries the current mouse position via xdotool. The
// capture flow uses two such queries to let the user mark the corners of
// the capture area without clicking.
package pointer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/vnetman/screencast/internal/capture"
	"github.com/vnetman/screencast/internal/config"
	serrors "github.com/vnetman/screencast/internal/errors"
)

// xdotool getmouselocation prints "x:<n> y:<n> screen:<n> window:<n>"
var locationPattern = regexp.MustCompile(`^x:(\d+) +y:(\d+) `)

// Location returns the current mouse pointer coordinates. The query is
// bounded; a hung xdotool fails the call rather than the whole capture.
func Location(ctx context.Context) (capture.Point, error) {
	xdotool, err := exec.LookPath("xdotool")
	if err != nil {
		return capture.Point{}, fmt.Errorf("xdotool missing on this system, please install: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, config.PointerQueryTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, xdotool, "getmouselocation").Output()
	if err != nil {
		if ctx.Err() != nil {
			return capture.Point{}, fmt.Errorf("error getting mouse co-ordinates from xdotool: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return capture.Point{}, fmt.Errorf("xdotool terminated abnormally, stderr = %q", exitErr.Stderr)
		}
		return capture.Point{}, fmt.Errorf("running xdotool: %w", err)
	}

	return parseLocation(string(out))
}

func parseLocation(out string) (capture.Point, error) {
	m := locationPattern.FindStringSubmatch(out)
	if m == nil {
		return capture.Point{}, serrors.InvalidInputf("xdotool output %q does not conform to expected pattern", out)
	}

	x, err := strconv.Atoi(m[1])
	if err != nil {
		return capture.Point{}, serrors.InvalidInputf("xdotool x coordinate %q", m[1])
	}
	y, err := strconv.Atoi(m[2])
	if err != nil {
		return capture.Point{}, serrors.InvalidInputf("xdotool y coordinate %q", m[2])
	}

	return capture.Point{X: x, Y: y}, nil
}
