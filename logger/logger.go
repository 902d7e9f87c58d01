// Package logger configures log/slog for the module's commands and carries
// loggers through context.Context.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/amp-labs/ifempty/envutil"
	"github.com/lmittmann/tint"
)

// configMutex protects concurrent calls to ConfigureLoggingWithOptions,
// which modifies global state (slog.SetDefault and log.Default).
var configMutex sync.Mutex //nolint:gochecknoglobals

type contextKey string

const (
	loggerKey    contextKey = "logger"
	subsystemKey contextKey = "subsystem"
	mutedKey     contextKey = "mute"
)

// ErrInvalidLogOutput is returned when an invalid log output destination is specified.
var ErrInvalidLogOutput = errors.New("invalid log output")

// Fatal logs an error message and exits the application.
func Fatal(msg string, args ...any) {
	slog.Error(msg, args...)

	os.Exit(1)
}

// Options is used to configure logging.
type Options struct {
	Subsystem   string
	JSON        bool
	NoColor     bool
	MinLevel    slog.Level
	LegacyLevel slog.Level
	Output      io.Writer
}

// Option is a functional option for configuring logging via ConfigureLogging.
type Option func(*Options)

// WithOutput sends log output to w instead of the configured destination.
func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Output = w
	}
}

// WithMinLevel overrides the minimum level read from the environment.
func WithMinLevel(level slog.Level) Option {
	return func(o *Options) {
		o.MinLevel = level
	}
}

// ConfigureLoggingWithOptions configures logging for the application and
// returns the default logger. Text output goes through tint, so it is
// colorized unless NoColor is set.
func ConfigureLoggingWithOptions(opts Options) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	var handler slog.Handler

	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{
			Level: opts.MinLevel,
		})
	} else {
		handler = tint.NewHandler(opts.Output, &tint.Options{
			Level:      opts.MinLevel,
			TimeFormat: time.TimeOnly,
			NoColor:    opts.NoColor,
		})
	}

	logger := slog.New(handler)
	if opts.Subsystem != "" {
		logger = logger.With("subsystem", opts.Subsystem)
	}

	slog.SetDefault(logger)

	// Third party packages may still use the log package.
	def := log.Default()
	*def = *slog.NewLogLogger(handler, opts.LegacyLevel)

	return logger
}

// ConfigureLogging configures logging from the environment:
//
//   - LOG_JSON: emit JSON instead of tinted text (default false)
//   - LOG_LEVEL: minimum level (default info)
//   - LEGACY_LOG_LEVEL: level used for the log package (default info)
//   - LOG_OUTPUT: stdout or stderr (default stderr, stdout is left for command output)
//   - NO_COLOR: disable colors in text output
func ConfigureLogging(ctx context.Context, app string, opts ...Option) *slog.Logger {
	logJSON := envutil.Bool(ctx, "LOG_JSON", envutil.Default(false)).ValueOrFatal()
	minLevel := envutil.SlogLevel(ctx, "LOG_LEVEL", envutil.Default(slog.LevelInfo)).ValueOrFatal()
	legacyLevel := envutil.SlogLevel(ctx, "LEGACY_LOG_LEVEL", envutil.Default(slog.LevelInfo)).ValueOrFatal()
	noColor := envutil.String(ctx, "NO_COLOR").HasValue()

	output := envutil.Map(envutil.String(ctx, "LOG_OUTPUT"), func(outName string) (io.Writer, error) {
		switch outName {
		case "stdout":
			return os.Stdout, nil
		case "stderr":
			return os.Stderr, nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidLogOutput, outName)
		}
	}).WithDefault(os.Stderr).ValueOrFatal()

	options := Options{
		Subsystem:   app,
		JSON:        logJSON,
		NoColor:     noColor,
		MinLevel:    minLevel,
		LegacyLevel: legacyLevel,
		Output:      output,
	}

	for _, o := range opts {
		o(&options)
	}

	return ConfigureLoggingWithOptions(options)
}

// WithLogger returns a context carrying logger. Get returns it for the
// context and everything derived from it.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, loggerKey, logger)
}

// WithSubsystem tags every log line produced through Get(ctx) with subsystem.
func WithSubsystem(ctx context.Context, subsystem string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, subsystemKey, subsystem)
}

// WithMuted suppresses all logging done through Get(ctx) when muted is true.
func WithMuted(ctx context.Context, muted bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, mutedKey, muted)
}

// Get returns a logger for the given context. With no context (or a context
// without a logger) it returns slog.Default().
func Get(ctx ...context.Context) *slog.Logger {
	if len(ctx) == 0 || ctx[0] == nil {
		return slog.Default()
	}

	c := ctx[0]

	if muted, ok := c.Value(mutedKey).(bool); ok && muted {
		return slog.New(slog.DiscardHandler)
	}

	logger, ok := c.Value(loggerKey).(*slog.Logger)
	if !ok || logger == nil {
		logger = slog.Default()
	}

	if subsystem, ok := c.Value(subsystemKey).(string); ok && subsystem != "" {
		logger = logger.With("subsystem", subsystem)
	}

	return logger
}
