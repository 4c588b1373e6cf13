// Package logging configures the process-wide slog sink.
//
// Records go to a size-bounded append-only file under the rutd root by
// default, or to stdout when log.console is set. The file is trimmed from
// the head on open so it never grows past the configured history.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is the most verbose level, below slog's built-in debug.
const LevelTrace = slog.LevelDebug - 4

// Level maps the repeatable -v counter to a threshold.
func Level(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelInfo
	case verbosity == 1:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

func levelName(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

// Options configures Setup.
type Options struct {
	// FilePath is the log file location, used when Console is false.
	FilePath string

	// History is the maximum retained lines; 0 disables trimming.
	History int

	// Console writes plain records to stdout instead of the file.
	Console bool

	// Verbosity is the repeated -v count.
	Verbosity int
}

// Setup installs the default slog logger per the options.
func Setup(opts Options) error {
	level := Level(opts.Verbosity)

	if opts.Console {
		slog.SetDefault(slog.New(newHandler(os.Stdout, level, false)))
		return nil
	}

	file, err := openTrimmed(opts.FilePath, opts.History)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(newHandler(file, level, true)))
	return nil
}

// openTrimmed opens the log file for appending, first rewriting it to keep
// only the last history lines when it has grown past the bound.
func openTrimmed(path string, history int) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	if history > 0 {
		if err := trimHead(path, history); err != nil {
			return nil, err
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

func trimHead(path string, history int) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) <= history || (len(lines) == 1 && lines[0] == "") {
		return nil
	}

	kept := lines[len(lines)-history:]
	content := strings.Join(kept, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("trim log file: %w", err)
	}
	return nil
}

// handler renders records as "[ts] [level] [target] msg" (file) or
// "[level] [target] msg" (console). Extra attributes append as key=value.
type handler struct {
	mu        *sync.Mutex
	out       io.Writer
	level     slog.Level
	timestamp bool
	attrs     []slog.Attr
}

func newHandler(out io.Writer, level slog.Level, timestamp bool) *handler {
	return &handler{
		mu:        &sync.Mutex{},
		out:       out,
		level:     level,
		timestamp: timestamp,
	}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *handler) Handle(_ context.Context, record slog.Record) error {
	target := "rutd"
	var extras []string

	collect := func(attr slog.Attr) {
		if attr.Key == "target" {
			target = attr.Value.String()
			return
		}
		extras = append(extras, attr.Key+"="+attr.Value.String())
	}
	for _, attr := range h.attrs {
		collect(attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		collect(attr)
		return true
	})

	var builder strings.Builder
	if h.timestamp {
		builder.WriteString("[" + record.Time.Format(time.RFC3339) + "] ")
	}
	builder.WriteString("[" + levelName(record.Level) + "] ")
	builder.WriteString("[" + target + "] ")
	builder.WriteString(record.Message)
	if len(extras) > 0 {
		builder.WriteString(" " + strings.Join(extras, " "))
	}
	builder.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, builder.String())
	return err
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *handler) WithGroup(_ string) slog.Handler {
	// Groups are not used by this tool's log sites.
	return h
}
