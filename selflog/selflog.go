// Package selflog reports problems inside go-console that would otherwise
// be swallowed, such as a message argument that could not be serialized
// and was printed in its plain form instead.
//
// It is disabled by default. Enable it while debugging:
//
//	selflog.Enable(selflog.Sync(os.Stderr))
//	defer selflog.Disable()
//
// Lines look like:
//
//	2025-01-29T15:30:45Z [stringify] falling back to plain text for main.T: ...
package selflog

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// At most one destination is set at a time. Both are read without locks on
// every Printf, so a disabled selflog costs two atomic loads.
var (
	outputWriter atomic.Pointer[io.Writer]
	outputFunc   atomic.Pointer[func(string)]
)

// Enable sends diagnostics to w, replacing any function set by EnableFunc.
//
// Diagnostics can be written from any goroutine that logs, so w should be
// safe for concurrent use. Wrap it with Sync when it is not:
//
//	selflog.Enable(selflog.Sync(f))
//
// A nil writer is ignored and leaves the current destination in place.
func Enable(w io.Writer) {
	if w == nil {
		return
	}
	outputFunc.Store(nil)
	outputWriter.Store(&w)
}

// EnableFunc hands each formatted diagnostic line, without a trailing
// newline, to fn. It replaces any writer set by Enable. Tests use it to
// collect reports:
//
//	var reports []string
//	selflog.EnableFunc(func(msg string) { reports = append(reports, msg) })
//	defer selflog.Disable()
//
// fn may be called concurrently. A nil fn is ignored.
func EnableFunc(fn func(string)) {
	if fn == nil {
		return
	}
	outputWriter.Store(nil)
	outputFunc.Store(&fn)
}

// Disable drops the current destination. Later Printf calls return
// without formatting anything.
func Disable() {
	outputWriter.Store(nil)
	outputFunc.Store(nil)
}

// IsEnabled reports whether a destination is set. Callers can check it
// before building an expensive message.
func IsEnabled() bool {
	return outputWriter.Load() != nil || outputFunc.Load() != nil
}

// Printf formats one diagnostic line and sends it to the current
// destination. The line starts with the UTC time in RFC 3339 form.
//
// By convention format begins with the reporting component in brackets,
// e.g. "[stringify] ...", so reports can be filtered. Printf does nothing
// while selflog is disabled.
func Printf(format string, args ...any) {
	w := outputWriter.Load()
	fn := outputFunc.Load()
	if w == nil && fn == nil {
		return
	}
	line := time.Now().UTC().Format(time.RFC3339) + " " + fmt.Sprintf(format, args...)
	if w != nil {
		fmt.Fprintln(*w, line)
	} else {
		(*fn)(line)
	}
}

// syncWriter serializes writes to an underlying writer.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Sync wraps w so that concurrent diagnostics are written one at a time.
// Use it for writers such as files or buffers that are not safe for
// concurrent use.
func Sync(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}
