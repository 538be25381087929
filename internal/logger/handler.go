package logger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ScopeKey names the attribute the console handler prints as a [scope] prefix.
const ScopeKey = "scope"

const (
	ansiReset = "\033[0m"
	ansiGray  = "\033[90m"
)

var levelColors = map[slog.Level]string{
	slog.LevelDebug: ansiGray,
	slog.LevelInfo:  "\033[32m",
	slog.LevelWarn:  "\033[33m",
	slog.LevelError: "\033[31m",
}

// ConsoleHandler writes one human-readable line per record:
//
//	15:04:05 INFO  [ui.decode] Symbol decoded format=QR_CODE path="/tmp/my code.png"
type ConsoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   *slog.HandlerOptions
	scope  string
	attrs  []prefixedAttr
	groups []string
	color  bool
}

type prefixedAttr struct {
	groups []string
	attr   slog.Attr
}

func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ConsoleHandler{mu: &sync.Mutex{}, w: w, opts: opts, color: color}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	buf.WriteString(r.Time.Format("15:04:05"))
	buf.WriteByte(' ')
	if h.color {
		buf.WriteString(levelColors[r.Level])
	}
	fmt.Fprintf(&buf, "%-5s", r.Level.String())
	if h.color {
		buf.WriteString(ansiReset)
	}

	scope := h.scope
	var rest []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		if len(h.groups) == 0 && a.Key == ScopeKey && a.Value.Kind() == slog.KindString {
			scope = a.Value.String()
			return true
		}
		rest = append(rest, a)
		return true
	})
	if scope != "" {
		fmt.Fprintf(&buf, " [%s]", scope)
	}
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	for _, pa := range h.attrs {
		h.appendAttr(&buf, pa.groups, pa.attr)
	}
	for _, a := range rest {
		h.appendAttr(&buf, h.groups, a)
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *ConsoleHandler) appendAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
	}
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		nested := groups
		if a.Key != "" {
			nested = append(groups[:len(groups):len(groups)], a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, nested, ga)
		}
		return
	}

	key := strings.Join(append(groups[:len(groups):len(groups)], a.Key), ".")
	if h.color {
		fmt.Fprintf(buf, " %s%s=%s%s", ansiGray, key, ansiReset, quoteValue(a.Value))
		return
	}
	fmt.Fprintf(buf, " %s=%s", key, quoteValue(a.Value))
}

// quoteValue leaves simple tokens bare and quotes anything with spaces,
// quotes or '=' so a line splits back into key=value pairs.
func quoteValue(v slog.Value) string {
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = h.attrs[:len(h.attrs):len(h.attrs)]
	for _, a := range attrs {
		if len(h.groups) == 0 && a.Key == ScopeKey && a.Value.Kind() == slog.KindString {
			h2.scope = a.Value.String()
			continue
		}
		h2.attrs = append(h2.attrs, prefixedAttr{groups: h.groups, attr: a})
	}
	return &h2
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &h2
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
