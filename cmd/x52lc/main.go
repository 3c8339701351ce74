// Command x52lc lights up the LEDs of a Saitek X52 Pro flight controller
// from the state of the player's ship in Elite Dangerous.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"x52lc-go/internal/app"
	"x52lc-go/internal/config"
	"x52lc-go/internal/logs"
)

const version = "1.0.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
		logDir     string
	)

	cmd := &cobra.Command{
		Use:          "x52lc",
		Short:        "Drive X52 Pro LEDs from Elite Dangerous ship status",
		Version:      version,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath, logLevel, logDir)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFilename, "path to the configuration file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (overrides the configuration file)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "log directory (overrides the configuration file)")

	return cmd
}

func run(configPath, logLevel, logDir string) error {
	// Bootstrap logger for the phase before the configuration is loaded.
	bootstrap, err := logs.New("info", "")
	if err != nil {
		return err
	}

	if err := config.WriteDefaultFileIfMissing(configPath, bootstrap); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		bootstrap.Error("Configuration error", zap.Error(err))
		return err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	dir := cfg.Log.Dir
	if logDir != "" {
		dir = logDir
	}

	logger, err := logs.New(level, dir)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	logger.Info("x52lc starting", zap.String("version", version))
	logger.Info("Press Ctrl+C to exit")

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("Startup failed", zap.Error(err))
		return err
	}
	defer application.Close() //nolint:errcheck // exiting anyway

	if err := application.Run(); err != nil {
		logger.Error("Terminated with error", zap.Error(err))
		return err
	}
	return nil
}
