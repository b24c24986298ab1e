package kinematic

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes debug and info lines to one writer and warnings and errors to another.
// Loggers derived with Named share one debug flag.
type DefaultLogger struct {
	debug  *atomic.Bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewWriterLogger(prefix, debug, os.Stdout, os.Stderr)
}

func NewWriterLogger(prefix string, debug bool, out, errOut io.Writer) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	l := &DefaultLogger{
		debug:  new(atomic.Bool),
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
	l.debug.Store(debug)
	return l
}

// Named returns a logger sharing l's outputs and debug flag with a nested prefix.
func (l *DefaultLogger) Named(name string) *DefaultLogger {
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "/" + name
	}
	return &DefaultLogger{debug: l.debug, prefix: prefix, out: l.out, err: l.err}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.debug.Load()
}

// SetDebug toggles debug output for l and every logger sharing its flag.
func (l *DefaultLogger) SetDebug(enabled bool) {
	l.debug.Store(enabled)
}

func (l *DefaultLogger) line(level string, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, msg)
	}
	return fmt.Sprintf("%s: %s", level, msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.line("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.line("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.line("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.line("ERROR", format, args...))
}

type nopLogger struct{}

func NewNopLogger() Logger                          { return nopLogger{} }
func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(enabled bool)             {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}
