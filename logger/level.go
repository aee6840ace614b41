package logger

import (
	"strings"
)

// Level is a severity name. Only the five constants below are recognized;
// a Logger built with any other value keeps it verbatim.
type Level string

const (
	// DebugLevel is for development diagnostics.
	DebugLevel Level = "debug"
	// InfoLevel is for normal operational messages.
	InfoLevel Level = "info"
	// WarnLevel is for problems that do not stop the program.
	WarnLevel Level = "warn"
	// ErrorLevel is for failed operations.
	ErrorLevel Level = "error"
	// SuccessLevel is for completed operations. It filters like ErrorLevel
	// but is written to stdout in green.
	SuccessLevel Level = "success"
)

var priorities = map[Level]int{
	DebugLevel:   0,
	InfoLevel:    1,
	WarnLevel:    2,
	ErrorLevel:   3,
	SuccessLevel: 3,
}

// AllLevels returns the recognized levels in priority order.
func AllLevels() []Level {
	return []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, SuccessLevel}
}

// Priority reports the numeric priority of l and whether l is recognized.
func (l Level) Priority() (int, bool) {
	p, ok := priorities[l]
	return p, ok
}

// Valid reports whether l is one of the recognized levels.
func (l Level) Valid() bool {
	_, ok := priorities[l]
	return ok
}

// Tag returns the bracketed upper-case tag, e.g. "[INFO]".
func (l Level) Tag() string {
	return "[" + strings.ToUpper(string(l)) + "]"
}

func (l Level) String() string {
	return string(l)
}

// Set implements pflag.Value.
func (l *Level) Set(s string) error {
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Type implements pflag.Value.
func (l *Level) Type() string {
	return "level"
}

// ParseLevel validates name against the recognized levels. Matching is exact.
func ParseLevel(name string) (Level, error) {
	l := Level(name)
	if !l.Valid() {
		return "", &InvalidLevelError{Value: name}
	}
	return l, nil
}

// enabled reports whether a message at msg passes the threshold.
// An unrecognized threshold filters nothing.
func enabled(msg, threshold Level) bool {
	t, ok := threshold.Priority()
	if !ok {
		return true
	}
	m, _ := msg.Priority()
	return m >= t
}

func levelNames() string {
	names := make([]string, 0, len(priorities))
	for _, l := range AllLevels() {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}
