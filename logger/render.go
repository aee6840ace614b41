package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ANSI color numbers, rendered by termenv as 30-37 / 90-97.
var levelColors = map[Level]lipgloss.Color{
	DebugLevel:   lipgloss.Color("8"),
	InfoLevel:    lipgloss.Color("6"),
	WarnLevel:    lipgloss.Color("3"),
	ErrorLevel:   lipgloss.Color("1"),
	SuccessLevel: lipgloss.Color("2"),
}

const timestampColor = lipgloss.Color("8")

var levelIcons = map[Level]string{
	DebugLevel:   "🔍",
	InfoLevel:    "ℹ",
	WarnLevel:    "⚠",
	ErrorLevel:   "✖",
	SuccessLevel: "✔",
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// palette paints segments for one destination stream.
type palette struct {
	levels    map[Level]lipgloss.Style
	timestamp lipgloss.Style
	plain     bool
}

func newPalette(w io.Writer, mode ColorMode) *palette {
	if !colorEnabled(w, mode) {
		return &palette{plain: true}
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	p := &palette{
		levels:    make(map[Level]lipgloss.Style, len(levelColors)),
		timestamp: newStyle(r, timestampColor),
	}
	for level, color := range levelColors {
		p.levels[level] = newStyle(r, color)
	}
	return p
}

// newStyle paints text in color and leaves tabs alone.
func newStyle(r *lipgloss.Renderer, color lipgloss.Color) lipgloss.Style {
	return r.NewStyle().Foreground(color).TabWidth(lipgloss.NoTabConversion)
}

func colorEnabled(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAuto:
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	default:
		return true
	}
}

func (p *palette) level(level Level, s string) string {
	if p.plain {
		return s
	}
	style, ok := p.levels[level]
	if !ok {
		return s
	}
	return style.Render(s)
}

func (p *palette) stamp(s string) string {
	if p.plain {
		return s
	}
	return p.timestamp.Render(s)
}

// formatTime renders t as ISO-8601 in UTC with millisecond precision.
func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// render builds one output line without the trailing newline.
func (l *Logger) render(level Level, args []any) string {
	p := l.paletteFor(level)
	parts := make([]string, 0, 5)
	if l.cfg.Icons {
		parts = append(parts, levelIcons[level])
	}
	if l.cfg.Timestamp {
		parts = append(parts, p.stamp("["+formatTime(l.cfg.Clock())+"]"))
	}
	if l.cfg.Prefix != "" {
		parts = append(parts, p.level(level, l.cfg.Prefix))
	}
	parts = append(parts, p.level(level, level.Tag()))
	parts = append(parts, formatArgs(args))
	return strings.Join(parts, " ")
}

// formatArgs serializes each argument and joins them with a single space.
func formatArgs(args []any) string {
	texts := make([]string, len(args))
	for i, arg := range args {
		texts[i] = Stringify(arg)
	}
	return strings.Join(texts, " ")
}
