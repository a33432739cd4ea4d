package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

type Options struct {
	Level     slog.Leveler
	AddSource bool
	NoColor   bool
	// StackTraces appends a stack dump to records at error level that carry
	// an "error" attribute.
	StackTraces bool
}

type prettyHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	opts   Options
	attrs  []slog.Attr
	prefix string
}

func NewPrettyHandler(out io.Writer, opts *Options) slog.Handler {
	if out == nil {
		out = os.Stdout
	}
	if opts == nil {
		opts = &Options{}
	}
	return &prettyHandler{
		mu:   &sync.Mutex{},
		out:  out,
		opts: *opts,
	}
}

func Init(levelName string) *slog.Logger {
	return InitWithWriter(os.Stdout, levelName)
}

func InitWithWriter(out io.Writer, levelName string) *slog.Logger {
	handler := NewPrettyHandler(out, &Options{
		Level:       ParseLogLevel(levelName),
		AddSource:   true,
		StackTraces: true,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func (h *prettyHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	if h.opts.Level == nil {
		return true
	}
	return lvl >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}

	var buf bytes.Buffer

	// time: fixed layout, always same width
	fmt.Fprintf(&buf, "%s ", r.Time.Format("2006-01-02 15:04:05.000"))

	// level: 5 chars, colorized
	if h.opts.NoColor {
		fmt.Fprintf(&buf, "%-5s ", levelToUpper(r.Level))
	} else {
		fmt.Fprintf(&buf, "%s%-5s\033[0m ", colorForLevel(r.Level), levelToUpper(r.Level))
	}

	if h.opts.AddSource {
		if file, line := resolveCaller(); file != "" {
			fmt.Fprintf(&buf, "%-25s ", fmt.Sprintf("%s:%d", filepath.Base(file), line))
		}
	}

	buf.WriteString(r.Message)

	var errVal error
	write := func(prefix string, a slog.Attr) {
		if e, ok := a.Value.Any().(error); ok && a.Key == "error" {
			errVal = e
		}
		fmt.Fprintf(&buf, " %s%s=%v", prefix, a.Key, a.Value.Any())
	}
	// h.attrs already carry the group prefix in effect when they were added.
	for _, a := range h.attrs {
		write("", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(h.prefix, a)
		return true
	})

	buf.WriteByte('\n')

	if errVal != nil && h.opts.StackTraces && r.Level >= slog.LevelError {
		buf.Write(debug.Stack())
		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func levelToUpper(l slog.Level) string {
	switch {
	case l <= slog.LevelDebug:
		return "DEBUG"
	case l == slog.LevelInfo:
		return "INFO"
	case l == slog.LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

func ParseLogLevel(l string) slog.Level {
	switch strings.ToLower(l) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func colorForLevel(l slog.Level) string {
	switch {
	case l <= slog.LevelDebug:
		return "\033[36m" // cyan
	case l == slog.LevelInfo:
		return "\033[32m" // green
	case l == slog.LevelWarn:
		return "\033[33m" // yellow
	default:
		return "\033[31m" // red
	}
}

// resolveCaller returns the first frame outside log/slog and this package.
func resolveCaller() (string, int) {
	const maxDepth = 32
	var pcs [maxDepth]uintptr

	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	sep := string(os.PathSeparator)
	for {
		f, more := frames.Next()
		if !strings.Contains(f.File, sep+"internal"+sep+"logging"+sep) &&
			!strings.HasPrefix(f.Function, "log/slog.") {
			return f.File, f.Line
		}
		if !more {
			break
		}
	}

	return "", 0
}
