package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`

	// Internal viper instance
	v *viper.Viper
}

// CaptureConfig represents the screen capture configuration
type CaptureConfig struct {
	Framerate     int    `mapstructure:"framerate" yaml:"framerate"`
	Display       string `mapstructure:"display" yaml:"display"`
	AudioSource   string `mapstructure:"audio_source" yaml:"audio_source"`
	AudioChannels int    `mapstructure:"audio_channels" yaml:"audio_channels"`
	// CountdownSeconds is the pause between confirmation and recording start
	CountdownSeconds int `mapstructure:"countdown_seconds" yaml:"countdown_seconds"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Countdown returns the configured pre-roll delay as a duration
func (c CaptureConfig) Countdown() time.Duration {
	return time.Duration(c.CountdownSeconds) * time.Second
}

// Load loads configuration from a file and environment variables
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set default values
	v.SetDefault("capture.framerate", DefaultFramerate)
	v.SetDefault("capture.display", DefaultDisplay)
	v.SetDefault("capture.audio_source", DefaultAudioSource)
	v.SetDefault("capture.audio_channels", DefaultAudioChannels)
	v.SetDefault("capture.countdown_seconds", int(DefaultCountdown.Seconds()))
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("logging.format", LogFormatText)

	if configFile != "" {
		v.SetConfigFile(configFile)
		slog.Debug("Using config file from command line", "path", configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigFile(GetConfigPath(ConfigFilename))
		// Defaults apply when no config file is present
		v.ReadInConfig()
	}

	// Bind environment variables
	v.SetEnvPrefix("SCREENCAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Capture: CaptureConfig{
			Framerate:        v.GetInt("capture.framerate"),
			Display:          v.GetString("capture.display"),
			AudioSource:      v.GetString("capture.audio_source"),
			AudioChannels:    v.GetInt("capture.audio_channels"),
			CountdownSeconds: v.GetInt("capture.countdown_seconds"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		v: v,
	}

	return cfg, nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed. An empty path saves to the default location.
func (c *Config) Save(path string) error {
	if path == "" {
		if err := os.MkdirAll(GetConfigBaseDir(), 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}
		path = GetConfigPath(ConfigFilename)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error marshalling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	slog.Debug("Configuration saved", "path", path)
	return nil
}

// Get retrieves a value from the configuration
func (c *Config) Get(key string) interface{} {
	if c.v == nil {
		return nil
	}
	return c.v.Get(key)
}
