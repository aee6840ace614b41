package logger

import (
	"log"
	"sync"
)

// Logger renders leveled console lines. Each Logger owns its Config; the
// threshold is the only field that changes after construction.
type Logger struct {
	cfg Config

	mu        sync.RWMutex
	threshold Level

	out, errOut        *log.Logger
	outColor, errColor *palette
}

// New returns a Logger configured from DefaultConfig and opts.
// The level is not validated; use SetLevel for a checked change.
func New(opts ...Option) *Logger {
	return newLogger(DefaultConfig().apply(opts))
}

func newLogger(cfg Config) *Logger {
	return &Logger{
		cfg:       cfg,
		threshold: cfg.Level,
		out:       log.New(cfg.Stdout, "", 0),
		errOut:    log.New(cfg.Stderr, "", 0),
		outColor:  newPalette(cfg.Stdout, cfg.Color),
		errColor:  newPalette(cfg.Stderr, cfg.Color),
	}
}

// Create returns an independent Logger that starts from l's current
// configuration, including a threshold changed by SetLevel, with opts
// applied on top.
func (l *Logger) Create(opts ...Option) *Logger {
	return newLogger(l.Config().apply(opts))
}

// Config returns a snapshot of the configuration with the current threshold.
func (l *Logger) Config() Config {
	cfg := l.cfg
	cfg.Level = l.GetLevel()
	return cfg
}

// GetLevel returns the current threshold.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.threshold
}

// SetLevel changes the threshold for subsequent calls on l.
// An unrecognized name returns an error matching ErrInvalidLevel and
// leaves the threshold unchanged.
func (l *Logger) SetLevel(name Level) error {
	if !name.Valid() {
		return &InvalidLevelError{Value: string(name)}
	}
	l.mu.Lock()
	l.threshold = name
	l.mu.Unlock()
	return nil
}

// Debug writes a debug line to stdout.
func (l *Logger) Debug(args ...any) {
	l.emit(DebugLevel, args)
}

// Info writes an info line to stdout.
func (l *Logger) Info(args ...any) {
	l.emit(InfoLevel, args)
}

// Warn writes a warning line to stderr.
func (l *Logger) Warn(args ...any) {
	l.emit(WarnLevel, args)
}

// Error writes an error line to stderr.
func (l *Logger) Error(args ...any) {
	l.emit(ErrorLevel, args)
}

// Success writes a success line to stdout.
func (l *Logger) Success(args ...any) {
	l.emit(SuccessLevel, args)
}

func (l *Logger) emit(level Level, args []any) {
	if !enabled(level, l.GetLevel()) {
		return
	}
	l.sinkFor(level).Println(l.render(level, args))
}

// toStderr reports whether level is routed to the error stream.
func toStderr(level Level) bool {
	return level == WarnLevel || level == ErrorLevel
}

func (l *Logger) sinkFor(level Level) *log.Logger {
	if toStderr(level) {
		return l.errOut
	}
	return l.out
}

func (l *Logger) paletteFor(level Level) *palette {
	if toStderr(level) {
		return l.errColor
	}
	return l.outColor
}
