package shared

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger builds the root logger at the named level writing to w
func SetupLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}

// SetupFileLogger logs to a file so interactive output stays clean. The
// returned close func must be called on exit.
func SetupFileLogger(level, filename string) (*log.Logger, func() error, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger, err := SetupLogger(level, f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return logger, f.Close, nil
}
