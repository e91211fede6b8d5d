// Package logutil is a small structured logger used across the converter:
// context-first Infof/Warningf/VEventf on top of cockroachdb/redact for
// redactable formatting and cockroachdb/logtags for context-carried tags,
// without log sinks, channels, or file rotation, which are out of scope
// for this module.
package logutil

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// Logger writes leveled, tag-annotated messages to an underlying writer.
type Logger struct {
	out     io.Writer
	verbose int
}

// New returns a Logger writing to os.Stderr with verbosity level 0.
func New() *Logger {
	return &Logger{out: os.Stderr}
}

// WithVerbosity returns a copy of l that emits VEventf calls up to level v.
func (l *Logger) WithVerbosity(v int) *Logger {
	cp := *l
	cp.verbose = v
	return &cp
}

// WithTags returns a context carrying the given key/value tag pairs, which
// subsequent log calls against that context will prefix onto the message.
func WithTags(ctx context.Context, kv ...interface{}) context.Context {
	buf := logtags.FromContext(ctx)
	if buf == nil {
		buf = &logtags.Buffer{}
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		buf = buf.Add(key, kv[i+1])
	}
	return logtags.WithTags(ctx, buf)
}

func (l *Logger) emit(ctx context.Context, severity string, format string, args ...interface{}) {
	msg := redact.Sprintf(format, args...)
	tags := logtags.FromContext(ctx)
	if tags != nil && len(tags.Get()) > 0 {
		fmt.Fprintf(l.out, "%s [%s] %s\n", severity, tags, msg)
		return
	}
	fmt.Fprintf(l.out, "%s %s\n", severity, msg)
}

// Infof logs an informational message.
func (l *Logger) Infof(ctx context.Context, format string, args ...interface{}) {
	l.emit(ctx, "I", format, args...)
}

// Warningf logs a warning-level message.
func (l *Logger) Warningf(ctx context.Context, format string, args ...interface{}) {
	l.emit(ctx, "W", format, args...)
}

// VEventf logs a message only if the logger's verbosity is >= level.
func (l *Logger) VEventf(ctx context.Context, level int, format string, args ...interface{}) {
	if l.verbose < level {
		return
	}
	l.emit(ctx, "V", format, args...)
}
