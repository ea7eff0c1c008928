// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvVarLogLevel is the environment variable name for setting the log level.
	EnvVarLogLevel = "LOG_LEVEL"

	// EnvVarLogFormat selects "json" (default) or "text" output.
	EnvVarLogFormat = "LOG_FORMAT"
)

// Options controls the structured logger.
type Options struct {
	// Level is "debug", "info", "warn" or "error". Anything else is info.
	Level string

	// Format is "json" or "text". Anything else is json.
	Format string

	// Writer receives log records. Defaults to os.Stderr.
	Writer io.Writer
}

// NewStructuredLogger creates a logger tagged with the module name and version.
// Source locations are added at debug level only.
func NewStructuredLogger(module, version string, opts Options) *slog.Logger {
	lev := ParseLogLevel(opts.Level)

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	hOpts := &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "text") {
		h = slog.NewTextHandler(w, hOpts)
	} else {
		h = slog.NewJSONHandler(w, hOpts)
	}

	return slog.New(h).With("module", module, "version", version)
}

// NewLogLogger returns a standard library logger that writes through the
// default slog handler at the given level. It is used for http.Server.ErrorLog.
func NewLogLogger(level slog.Level) *log.Logger {
	return slog.NewLogLogger(slog.Default().Handler(), level)
}

// SetDefaultStructuredLogger installs the structured logger as the slog
// default, reading level and format from LOG_LEVEL and LOG_FORMAT.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultLoggerWithOptions(module, version, Options{
		Level:  os.Getenv(EnvVarLogLevel),
		Format: os.Getenv(EnvVarLogFormat),
	})
}

// SetDefaultLoggerWithOptions installs a structured logger built from opts
// as the slog default.
func SetDefaultLoggerWithOptions(module, version string, opts Options) {
	slog.SetDefault(NewStructuredLogger(module, version, opts))
}

// ParseLogLevel converts a string representation of a log level into a slog.Level.
// Unrecognized strings map to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
