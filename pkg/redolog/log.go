// Package redolog provides structured logging for a redo.Session and its
// collaborators. It wraps Go's log/slog with two redo-specific
// conveniences on top of the usual per-subsystem child logger: the level
// of each module (redo, graft, cycle, redoplay, ...) can be raised or
// lowered independently at runtime, and a session's activity counters can
// be emitted as one structured line via LogStats.
package redolog

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/solvertree/redo/pkg/redo"
)

// Logger wraps slog.Logger. A *Logger satisfies redo.Logger, so it can be
// passed directly to redo.WithLogger.
type Logger struct {
	inner  *slog.Logger
	writer io.Writer // nil when built from a caller-supplied handler
	levels *moduleLevels
	module string
}

// moduleLevels tracks an independently adjustable minimum level per module
// name, shared by every Logger derived from the same root via Module, so
// raising "graft"'s verbosity doesn't drag "cycle" or "redo" along with it.
type moduleLevels struct {
	mu   sync.Mutex
	base slog.Level
	vars map[string]*slog.LevelVar
}

func newModuleLevels(base slog.Level) *moduleLevels {
	return &moduleLevels{base: base, vars: make(map[string]*slog.LevelVar)}
}

func (m *moduleLevels) levelVar(name string) *slog.LevelVar {
	m.mu.Lock()
	defer m.mu.Unlock()
	lv, ok := m.vars[name]
	if !ok {
		lv = new(slog.LevelVar)
		lv.Set(m.base)
		m.vars[name] = lv
	}
	return lv
}

func (m *moduleLevels) setLevel(name string, level slog.Level) {
	m.levelVar(name).Set(level)
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a root Logger that writes JSON to stderr at the given level.
// Every module obtained later via Module starts at this level but can be
// retuned independently with SetModuleLevel.
func New(level slog.Level) *Logger {
	return newWithWriter(os.Stderr, level)
}

func newWithWriter(w io.Writer, level slog.Level) *Logger {
	levels := newModuleLevels(level)
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{inner: slog.New(h), writer: w, levels: levels}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler.
// Tests use this to capture output instead of writing to stderr. A Logger
// built this way, and its Module children, do not support per-module level
// overrides — SetModuleLevel on them is a no-op, since the caller's handler
// owns its own level policy.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger carrying an additional "module" attribute,
// e.g. redolog.Default().Module("graft"). If the root was built with New,
// the returned logger's minimum level can later be tuned independently of
// every other module via SetModuleLevel.
func (l *Logger) Module(name string) *Logger {
	if l.levels == nil || l.writer == nil {
		return &Logger{inner: l.inner.With("module", name), module: name}
	}
	h := slog.NewJSONHandler(l.writer, &slog.HandlerOptions{Level: l.levels.levelVar(name)})
	return &Logger{
		inner:  slog.New(h).With("module", name),
		writer: l.writer,
		levels: l.levels,
		module: name,
	}
}

// SetModuleLevel adjusts the minimum level logged by name's module, for
// every Logger derived from the same root via Module — present and future,
// since the level lives behind a shared pointer rather than being copied
// in. It is a no-op for loggers built with NewWithHandler.
func (l *Logger) SetModuleLevel(name string, level slog.Level) {
	if l.levels == nil {
		return
	}
	l.levels.setLevel(name, level)
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		inner:  l.inner.With(args...),
		writer: l.writer,
		levels: l.levels,
		module: l.module,
	}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// LogStats writes a single structured line summarizing a session's
// activity counters — the same figures redo.Session.Stats returns and a
// redometrics.SessionMetrics sink accumulates — so an operator tailing
// logs sees the identical numbers a metrics scrape would.
func (l *Logger) LogStats(stats redo.Stats) {
	l.inner.Info("session stats",
		"population", stats.Population,
		"grafts", stats.Grafts,
		"cycles_suppressed", stats.CyclesSuppressed,
		"chunks_grown", stats.ChunksGrown,
	)
}

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
