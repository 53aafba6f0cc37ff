package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Config holds logger settings collected from options.
type Config struct {
	Level      slog.Level
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
	Attrs      []slog.Attr
}

// Option configures the logger.
type Option func(*Config)

// New creates a logger. Without options it writes colored text at info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &Config{
		Level:      slog.LevelInfo,
		Output:     os.Stdout,
		TimeFormat: time.TimeOnly,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	} else {
		h = tint.NewHandler(cfg.Output, &tint.Options{
			Level:      cfg.Level,
			AddSource:  cfg.AddSource,
			TimeFormat: cfg.TimeFormat,
			NoColor:    !isTerminal(cfg.Output),
		})
	}

	if len(cfg.Attrs) > 0 {
		h = h.WithAttrs(cfg.Attrs)
	}

	return slog.New(h)
}

// WithDevelopment configures colored text output at debug level with source locations.
func WithDevelopment(service string) Option {
	return func(c *Config) {
		c.Level = slog.LevelDebug
		c.JSON = false
		c.AddSource = true
		c.TimeFormat = "15:04:05.000"
		c.Attrs = append(c.Attrs, slog.String("service", service), slog.String("env", "development"))
	}
}

// WithStaging configures JSON output at debug level.
func WithStaging(service string) Option {
	return func(c *Config) {
		c.Level = slog.LevelDebug
		c.JSON = true
		c.Attrs = append(c.Attrs, slog.String("service", service), slog.String("env", "staging"))
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return func(c *Config) {
		c.Level = slog.LevelInfo
		c.JSON = true
		c.Attrs = append(c.Attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

func WithLevel(level slog.Level) Option {
	return func(c *Config) {
		c.Level = level
	}
}

func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		c.Output = w
	}
}

func WithJSONFormatter() Option {
	return func(c *Config) {
		c.JSON = true
	}
}

func WithTextFormatter() Option {
	return func(c *Config) {
		c.JSON = false
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *Config) {
		c.Attrs = append(c.Attrs, attrs...)
	}
}

// ParseLevel maps a level name to slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
