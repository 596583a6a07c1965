package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults_NoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFramerate, cfg.Capture.Framerate)
	assert.Equal(t, DefaultDisplay, cfg.Capture.Display)
	assert.Equal(t, DefaultAudioSource, cfg.Capture.AudioSource)
	assert.Equal(t, DefaultAudioChannels, cfg.Capture.AudioChannels)
	assert.Equal(t, 5*time.Second, cfg.Capture.Countdown())
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "screencast.yaml")
	content := []byte("capture:\n  framerate: 25\n  display: \":1.0\"\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(configPath, content, 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Capture.Framerate)
	assert.Equal(t, ":1.0", cfg.Capture.Display)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset keys fall back to defaults
	assert.Equal(t, DefaultAudioSource, cfg.Capture.AudioSource)
}

func TestLoad_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("capture: [not: valid"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("SCREENCAST_CAPTURE_FRAMERATE", "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Capture.Framerate)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "screencast.yaml")

	cfg, err := Load(configPath + ".missing-ok")
	require.Error(t, err, "explicit missing config file should error")

	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	cfg, err = Load("")
	require.NoError(t, err)

	cfg.Capture.Framerate = 15
	cfg.Logging.Format = LogFormatJSON
	require.NoError(t, cfg.Save(configPath))

	cfg2, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg2.Capture.Framerate)
	assert.Equal(t, LogFormatJSON, cfg2.Logging.Format)
}
