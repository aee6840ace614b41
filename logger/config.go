package logger

import (
	"io"
	"os"
	"time"
)

// ColorMode selects when ANSI colors are written.
type ColorMode int

const (
	// ColorAlways paints every line.
	ColorAlways ColorMode = iota
	// ColorNever writes plain text.
	ColorNever
	// ColorAuto paints only when the destination is a terminal.
	ColorAuto
)

// Config defines a Logger's presentation and filtering.
// Use DefaultConfig as the starting point; the zero value disables icons.
type Config struct {
	// Prefix is printed before the level tag in the level color.
	// Default: "" (no prefix)
	Prefix string
	// Timestamp adds an ISO-8601 UTC timestamp to each line.
	// Default: false
	Timestamp bool
	// Level is the threshold; messages with a lower priority are dropped.
	// It is not validated here.
	// Default: DebugLevel
	Level Level
	// Icons adds a per-level glyph at the start of each line.
	// Default: true
	Icons bool
	// Color controls ANSI painting of the prefix, level tag and timestamp.
	// Default: ColorAlways
	Color ColorMode
	// Stdout receives debug, info and success lines.
	// Default: os.Stdout
	Stdout io.Writer
	// Stderr receives warn and error lines.
	// Default: os.Stderr
	Stderr io.Writer
	// Clock supplies timestamps.
	// Default: time.Now
	Clock func() time.Time
}

// Writers the default configuration starts from. Tests swap them to
// capture the output of the default Logger.
var (
	outStdout io.Writer = os.Stdout
	outStderr io.Writer = os.Stderr
)

// DefaultConfig returns the configuration New starts from.
func DefaultConfig() Config {
	return Config{
		Level:  DebugLevel,
		Icons:  true,
		Color:  ColorAlways,
		Stdout: outStdout,
		Stderr: outStderr,
		Clock:  time.Now,
	}
}

// Option overrides one Config field.
type Option func(*Config)

// WithPrefix sets the text printed before the level tag.
func WithPrefix(prefix string) Option {
	return func(c *Config) {
		c.Prefix = prefix
	}
}

// WithTimestamp toggles the timestamp segment.
func WithTimestamp(on bool) Option {
	return func(c *Config) {
		c.Timestamp = on
	}
}

// WithLevel sets the threshold. The value is accepted verbatim.
func WithLevel(level Level) Option {
	return func(c *Config) {
		c.Level = level
	}
}

// WithIcons toggles the icon segment.
func WithIcons(on bool) Option {
	return func(c *Config) {
		c.Icons = on
	}
}

// WithColor sets the color mode.
func WithColor(mode ColorMode) Option {
	return func(c *Config) {
		c.Color = mode
	}
}

// WithOutput replaces the destination writers. A nil writer keeps the
// current one.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Config) {
		if stdout != nil {
			c.Stdout = stdout
		}
		if stderr != nil {
			c.Stderr = stderr
		}
	}
}

// WithClock sets the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		if clock != nil {
			c.Clock = clock
		}
	}
}

func (c Config) apply(opts []Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}
