// Package logging holds the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger. It discards everything until Initialize
	// runs.
	Logger *zap.SugaredLogger
	// JSONOutput reports whether Initialize selected JSON lines.
	JSONOutput bool
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// ParseLevel accepts debug, info, warn and error (any case).
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	}
	return zap.InfoLevel, errors.Newf("unknown log level %q (want debug, info, warn or error)", name)
}

// Initialize builds the global logger on stderr.
func Initialize(level string, jsonOutput bool) error {
	return InitializeTo(os.Stderr, level, jsonOutput)
}

// InitializeTo builds the global logger writing to w.
func InitializeTo(w io.Writer, level string, jsonOutput bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	var enc zapcore.Encoder
	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	JSONOutput = jsonOutput
	Logger = zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), lvl)).Sugar()
	return nil
}

// ComponentLogger returns a named logger for one part of the program.
func ComponentLogger(component string) *zap.SugaredLogger {
	return Logger.Named(component)
}

// Cleanup flushes any buffered log entries.
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
