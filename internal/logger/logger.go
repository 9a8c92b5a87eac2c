package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys used by the logger
type ContextKey string

const (
	// LoggerKey is the context key for the logger instance
	LoggerKey ContextKey = "logger"
)

// Options controls how a logger is built from CLI flags or config.
type Options struct {
	// Level is a zerolog level name ("debug", "info", "warn", "error").
	Level string
	// Format is "console" (default) or "json".
	Format string
	Writer io.Writer
}

// New creates a new structured logger with default configuration
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// NewWithWriter creates a new structured logger with a custom writer
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Configure builds a logger from opts. Unknown levels and formats are errors.
func Configure(opts Options) (zerolog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	switch strings.ToLower(opts.Format) {
	case "", "console", "text":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stderr}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (want console or json)", opts.Format)
	}
	return NewWithWriter(w).Level(level), nil
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context or returns a default logger
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New()
}

// WithFields adds structured fields to a logger
func WithFields(logger zerolog.Logger, fields map[string]interface{}) zerolog.Logger {
	ctx := logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return ctx.Logger()
}

// Adapter exposes a zerolog logger through the printf-style Logger
// interface the calculation engine expects.
type Adapter struct {
	L zerolog.Logger
}

// NewAdapter wraps l with a "component" field.
func NewAdapter(l zerolog.Logger, component string) Adapter {
	return Adapter{L: l.With().Str("component", component).Logger()}
}

func (a Adapter) Debugf(format string, args ...any) { a.L.Debug().Msgf(format, args...) }
func (a Adapter) Infof(format string, args ...any)  { a.L.Info().Msgf(format, args...) }
func (a Adapter) Warnf(format string, args ...any)  { a.L.Warn().Msgf(format, args...) }
func (a Adapter) Errorf(format string, args ...any) { a.L.Error().Msgf(format, args...) }
