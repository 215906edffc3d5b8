package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithComponent(name string) Logger
}

type Opts struct {
	Env       string
	SentryDSN string
	Writer    io.Writer
}

type Impl struct {
	slog *slog.Logger
}

var _ Logger = (*Impl)(nil)

// New builds a slog logger backed by zerolog. Errors are also shipped to Sentry when a DSN is set.
func New(opts Opts) *Impl {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	level := slog.LevelDebug
	if opts.Env == "production" {
		level = slog.LevelInfo
	} else {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	zl := zerolog.New(w).With().Timestamp().Logger()
	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			zl.Error().Err(err).Msg("Failed to init sentry, continuing without it")
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{slog: slog.New(slogmulti.Fanout(handlers...))}
}

// Nop discards everything. Handy in tests.
func Nop() *Impl {
	return New(Opts{Env: "production", Writer: io.Discard})
}

func (l *Impl) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Impl) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Impl) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Impl) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

func (l *Impl) With(args ...any) Logger {
	return &Impl{slog: l.slog.With(args...)}
}

func (l *Impl) WithComponent(name string) Logger {
	return l.With("component", name)
}

// Printf lets the logger act as fx.Printer.
func (l *Impl) Printf(format string, args ...any) {
	l.slog.Debug(fmt.Sprintf(format, args...))
}
