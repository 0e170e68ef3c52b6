package packrat

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the pluggable tracing sink described in spec.md §6: "Verbose
// tracing (parser entry, cache insertion/update, left-recursion events) is
// emitted via a pluggable log sink when enabled, with levels {trace,
// debug, info}; the core functions identically with logging disabled."
//
// The core package never imports a concrete logging library in its
// exported surface; it only depends on this interface.
type Logger interface {
	Trace(msg string, fields ...any)
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
}

// nopLogger discards everything. It is the default logger for a new
// Context, so the core "functions identically with logging disabled"
// without any conditional branches at call sites.
type nopLogger struct{}

func (nopLogger) Trace(string, ...any) {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

// NopLogger returns a Logger that discards all output.
func NopLogger() Logger { return nopLogger{} }

// zerologLogger adapts zerolog.Logger to the Logger interface. fields are
// interpreted as alternating key/value pairs, the same convention used by
// zerolog's own Ctx-style helpers.
type zerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger builds the default production Logger, writing leveled,
// structured events to w (os.Stderr if w is nil). zerolog's own level set
// -- Trace/Debug/Info/Warn/Error -- maps directly onto the three levels
// this package needs.
func NewZerologLogger(w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &zerologLogger{l: zerolog.New(w).With().Timestamp().Logger()}
}

func (z *zerologLogger) event(lvl zerolog.Level, msg string, fields ...any) {
	e := z.l.WithLevel(lvl)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, fields[i+1])
	}
	e.Msg(msg)
}

func (z *zerologLogger) Trace(msg string, fields ...any) { z.event(zerolog.TraceLevel, msg, fields...) }
func (z *zerologLogger) Debug(msg string, fields ...any) { z.event(zerolog.DebugLevel, msg, fields...) }
func (z *zerologLogger) Info(msg string, fields ...any)  { z.event(zerolog.InfoLevel, msg, fields...) }
