package logger

import "sync"

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// Default returns the process-wide Logger, built with DefaultConfig on
// first use.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}

// Debug logs at debug level on the default Logger.
func Debug(args ...any) { Default().Debug(args...) }

// Info logs at info level on the default Logger.
func Info(args ...any) { Default().Info(args...) }

// Warn logs at warn level on the default Logger.
func Warn(args ...any) { Default().Warn(args...) }

// Error logs at error level on the default Logger.
func Error(args ...any) { Default().Error(args...) }

// Success logs at success level on the default Logger.
func Success(args ...any) { Default().Success(args...) }

// SetLevel changes the default Logger's threshold.
func SetLevel(name Level) error { return Default().SetLevel(name) }

// GetLevel returns the default Logger's threshold.
func GetLevel() Level { return Default().GetLevel() }

// Create derives a new Logger from the default one.
func Create(opts ...Option) *Logger { return Default().Create(opts...) }
