// Package log is a small levelled key/value logger.
//
// Call sites look like
//
//	log.Debug("Pushed scope", "line", 4, "depth", 2)
//
// and every logger derived with New carries its context pairs along.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Lvl is a verbosity level. Higher values are more verbose; a logger at
// verbosity v prints every record whose level is <= v.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) String() string {
	switch l {
	case LvlTrace:
		return "trce"
	case LvlDebug:
		return "dbug"
	case LvlInfo:
		return "info"
	case LvlWarn:
		return "warn"
	case LvlError:
		return "eror"
	case LvlCrit:
		return "crit"
	default:
		return "unknown"
	}
}

// slogLevel maps l onto slog's scale. Trace and crit sit outside the
// four built-in slog levels.
func (l Lvl) slogLevel() slog.Level {
	switch l {
	case LvlTrace:
		return slog.LevelDebug - 4
	case LvlDebug:
		return slog.LevelDebug
	case LvlInfo:
		return slog.LevelInfo
	case LvlWarn:
		return slog.LevelWarn
	case LvlError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// Logger writes key/value records.
type Logger interface {
	New(ctx ...interface{}) Logger
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	s *slog.Logger
}

func (l *logger) New(ctx ...interface{}) Logger {
	return &logger{s: l.s.With(ctx...)}
}

func (l *logger) write(lvl Lvl, msg string, ctx []interface{}) {
	l.s.Log(context.Background(), lvl.slogLevel(), msg, ctx...)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(LvlTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(LvlDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(LvlInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(LvlWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(LvlError, msg, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{})  { l.write(LvlCrit, msg, ctx) }

var (
	verbosity slog.LevelVar
	root      atomic.Pointer[logger]
)

func init() {
	verbosity.Set(LvlWarn.slogLevel())
	SetOutput(os.Stderr)
}

// SetOutput redirects the root logger. Loggers created earlier with New keep
// writing to the previous output.
func SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: &verbosity,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				a.Value = slog.StringValue(levelName(a.Value.Any().(slog.Level)))
			}
			return a
		},
	})
	root.Store(&logger{s: slog.New(h)})
}

// Verbosity sets the most verbose level that is printed. Out of range
// values are clamped.
func Verbosity(lvl Lvl) {
	if lvl < LvlCrit {
		lvl = LvlCrit
	}
	if lvl > LvlTrace {
		lvl = LvlTrace
	}
	verbosity.Set(lvl.slogLevel())
}

func levelName(l slog.Level) string {
	for lvl := LvlCrit; lvl <= LvlTrace; lvl++ {
		if lvl.slogLevel() == l {
			return lvl.String()
		}
	}
	return l.String()
}

// Root returns the root logger.
func Root() Logger {
	return root.Load()
}

// New returns a logger derived from the root logger with the given context.
func New(ctx ...interface{}) Logger {
	return Root().New(ctx...)
}

func Trace(msg string, ctx ...interface{}) { Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { Root().Error(msg, ctx...) }
func Crit(msg string, ctx ...interface{})  { Root().Crit(msg, ctx...) }
