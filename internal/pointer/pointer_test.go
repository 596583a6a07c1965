package pointer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnetman/screencast/internal/capture"
	serrors "github.com/vnetman/screencast/internal/errors"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    capture.Point
		wantErr bool
	}{
		{"typical output", "x:1094 y:383 screen:0 window:73400325\n", capture.Point{X: 1094, Y: 383}, false},
		{"origin", "x:0 y:0 screen:0 window:1\n", capture.Point{X: 0, Y: 0}, false},
		{"garbage", "no coordinates here\n", capture.Point{}, true},
		{"empty", "", capture.Point{}, true},
		{"missing y", "x:100 screen:0\n", capture.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLocation(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, serrors.IsInvalidInput(err), "expected ErrInvalidInput, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// installFakeXdotool puts a shell script named xdotool at the front of PATH
func installFakeXdotool(t *testing.T, script string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "xdotool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755))
	t.Setenv("PATH", dir)
}

func TestLocation(t *testing.T) {
	installFakeXdotool(t, `echo "x:640 y:480 screen:0 window:42"`)

	p, err := Location(context.Background())
	require.NoError(t, err)
	assert.Equal(t, capture.Point{X: 640, Y: 480}, p)
}

func TestLocation_AbnormalExit(t *testing.T) {
	installFakeXdotool(t, `echo "cannot open display" >&2; exit 1`)

	_, err := Location(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminated abnormally")
	assert.Contains(t, err.Error(), "cannot open display")
}

func TestLocation_MissingTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Location(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing on this system")
}
