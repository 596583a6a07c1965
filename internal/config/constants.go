package config

import "time"

// Common constants shared across the CLI
const (
	// ProgramName is the name instances register under in the pid file
	ProgramName = "screencast"

	// ConfigDirName is the name of the config directory within XDG_CONFIG_HOME
	ConfigDirName = "screencast"

	// ConfigFilename is the base filename for the config file
	ConfigFilename = "screencast.yaml"

	// PidFileSuffix is appended to the program name to form the pid file name
	PidFileSuffix = ".pid"
)

// Log level constants
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Log format constants
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Pid file locking policy
const (
	// DefaultLockAttempts is how many times a non-blocking lock is tried
	DefaultLockAttempts = 3

	// DefaultLockRetryDelay is the pause between lock attempts
	DefaultLockRetryDelay = 1 * time.Second
)

// Capture defaults
const (
	// DefaultFramerate is the ffmpeg capture framerate
	DefaultFramerate = 10

	// DefaultDisplay is the X display grabbed by ffmpeg
	DefaultDisplay = ":0.0"

	// DefaultAudioSource is the pulse source recorded alongside video
	DefaultAudioSource = "default"

	// DefaultAudioChannels is the number of audio channels recorded
	DefaultAudioChannels = 2

	// DefaultCountdown is the delay between confirmation and recording start
	DefaultCountdown = 5 * time.Second

	// StopTimeout bounds how long ffmpeg is given to exit after 'q' is sent
	StopTimeout = 10 * time.Second

	// PointerQueryTimeout bounds the xdotool mouse-location query
	PointerQueryTimeout = 4 * time.Second
)
