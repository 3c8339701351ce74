//go:build !windows

package directoutput

import "go.uber.org/zap"

// Open returns a logging no-op driver on platforms without DirectOutput, so
// the application can run end to end during development.
func Open(logger *zap.Logger) (Driver, error) {
	logger.Warn("DirectOutput is only available on Windows; LED writes will be logged and discarded")
	return &noop{logger: logger}, nil
}

type noop struct {
	logger *zap.Logger
}

func (n *noop) SetLED(id uint32, on bool) error {
	n.logger.Debug("SetLED", zap.Uint32("id", id), zap.Bool("on", on))
	return nil
}

func (n *noop) Close() error { return nil }
