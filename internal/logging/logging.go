package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

const ginKey = "logger"

var (
	once sync.Once
	base *slog.Logger
)

// Options configures the process logger. An empty File logs to stdout only.
type Options struct {
	Component  string
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (o Options) writer() io.Writer {
	if o.File == "" {
		return os.Stdout
	}
	rot := &lumberjack.Logger{
		Filename:   o.File,
		MaxSize:    orDefault(o.MaxSizeMB, 50),
		MaxBackups: orDefault(o.MaxBackups, 3),
		MaxAge:     orDefault(o.MaxAgeDays, 7),
		Compress:   o.Compress,
	}
	return io.MultiWriter(os.Stdout, rot)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Init configures the global logger exactly once; later calls return it unchanged.
func Init(o Options) *slog.Logger {
	once.Do(func() {
		h := slog.NewJSONHandler(o.writer(), &slog.HandlerOptions{Level: ParseLevel(o.Level)})
		component := o.Component
		if component == "" {
			component = "shop-api"
		}
		base = slog.New(h).With("component", component)
	})
	return base
}

// ParseLevel maps a config string to a level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Base returns the global logger, initialising a stdout logger if needed.
func Base() *slog.Logger {
	return Init(Options{})
}

// New returns a child logger tagged with its subsystem.
func New(subsystem string) *slog.Logger {
	return Base().With("subsystem", subsystem)
}

func WithCtx(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromCtx fetches a logger from ctx or falls back to the global one.
func FromCtx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return Base()
}

// With stores the logger in gin.Context and in its request context, so use
// cases reached through c.Request.Context() log with the same attributes.
func With(c *gin.Context, l *slog.Logger) {
	c.Set(ginKey, l)
	c.Request = c.Request.WithContext(WithCtx(c.Request.Context(), l))
}

func From(c *gin.Context) *slog.Logger {
	if l, ok := c.Value(ginKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return FromCtx(c.Request.Context())
}
