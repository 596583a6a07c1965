package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vnetman/screencast/internal/config"
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screencast",
		Short: "Record screencasts with ffmpeg",
		Long: "screencast invokes ffmpeg to record screencasts on Linux desktops. It\n" +
			"gathers the capture area from the mouse pointer position, runs ffmpeg,\n" +
			"and tracks running instances in a per-user pid file so that 'screencast\n" +
			"kill' can stop the most recently started capture.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupContext(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("config", "", "Path to config file")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "Log format (text, json)")

	// Add commands
	cmd.AddCommand(newVersionCommand(version, commit, buildDate))
	cmd.AddCommand(NewCaptureCommand())
	cmd.AddCommand(NewKillCommand())

	return cmd
}

// setupContext loads the configuration, builds the logger, and stores both
// in the command context for subcommands to pick up
func setupContext(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Command line flags take precedence over the config file
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Logging.Format = format
	}

	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, loggerContextKey{}, logger)
	ctx = context.WithValue(ctx, configContextKey{}, cfg)
	cmd.SetContext(ctx)

	return nil
}

// setupLogger creates an slog logger writing to stderr, keeping stdout free
// for relayed ffmpeg output
func setupLogger(level string, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: getLogLevel(level)}

	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func getLogLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getLoggerFromCmd returns the slog.Logger stored in the command context
func getLoggerFromCmd(cmd *cobra.Command) *slog.Logger {
	if logger, ok := cmd.Context().Value(loggerContextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// getConfigFromCmd returns the config stored in the command context
func getConfigFromCmd(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configContextKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	cfg, _ := config.Load("")
	return cfg
}

// newVersionCommand creates the version command
func newVersionCommand(version, commit, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Version:    %s\n", version)
			fmt.Printf("Commit:     %s\n", commit)
			fmt.Printf("Build Date: %s\n", buildDate)
		},
	}
}
