// Package logs builds the application logger: a console core, plus a
// rotating file core when a log directory is configured.
package logs

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Filename is the log file name inside the configured log directory.
const Filename = "x52lc.log"

// Rotation limits for the file core.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 14
)

// New returns a logger at the given level. When dir is non-empty, log
// entries are additionally written to a size-rotated file in that
// directory.
func New(level, dir string) (*zap.Logger, error) {
	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stderr),
			parsedLevel,
		),
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		fileSink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(dir, Filename),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		})

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			fileSink,
			parsedLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
