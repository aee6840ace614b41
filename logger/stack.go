package logger

import (
	"fmt"
	"runtime"
	"strings"
)

// WithStack annotates err with the calling goroutine's stack. When the
// result is logged, the stack appears in the "stack" field and the name and
// fields of err are kept. WithStack(nil) returns nil.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return &stackError{err: err, stack: callers(3)}
}

type stackError struct {
	err   error
	stack string
}

func (e *stackError) Error() string { return e.err.Error() }
func (e *stackError) Unwrap() error { return e.err }
func (e *stackError) Stack() string { return e.stack }
func (e *stackError) Name() string { return errorName(e.err) }

// callers formats the stack starting skip frames above runtime.Callers,
// one "package.Function:line" entry and its file per frame.
func callers(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s:%d\n\t%s\n", shortFuncName(frame.Function), frame.Line, frame.File)
		if !more {
			break
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// shortFuncName strips the package path, keeping package.Function.
func shortFuncName(full string) string {
	if full == "" {
		return "unknown"
	}
	lastSlash := strings.LastIndex(full, "/")
	if lastSlash >= 0 && lastSlash+1 < len(full) {
		full = full[lastSlash+1:]
	}
	return full
}
