package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

func TestConsoleHandler_Structural(t *testing.T) {
	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelDebug}
	h := NewConsoleHandler(&buf, opts, false)
	l := slog.New(h)

	t.Run("WithAttrs", func(t *testing.T) {
		buf.Reset()
		l2 := l.With("scope", "ui.decode")
		l2.Info("Decoded symbol", "format", "QR_CODE")

		output := buf.String()
		if !strings.Contains(output, "INFO  [ui.decode] Decoded symbol") {
			t.Errorf("output missing scope prefix: %q", output)
		}
		if strings.Contains(output, "scope=") {
			t.Errorf("scope should not repeat as an attr: %q", output)
		}
		if !strings.Contains(output, "format=") || !strings.Contains(output, "QR_CODE") {
			t.Errorf("output missing record attr: %q", output)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("scan").With("graphemes", 100)
		l2.Info("Decode finished", "format", "CODE_128")

		output := buf.String()
		if !strings.Contains(output, "scan.graphemes=") || !strings.Contains(output, "100") {
			t.Errorf("output missing grouped persistent attr: %q", output)
		}
		if !strings.Contains(output, "scan.format=") || !strings.Contains(output, "CODE_128") {
			t.Errorf("output missing grouped record attr: %q", output)
		}
	})

	t.Run("NestedGroups", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("ui").WithGroup("save").With("path", "out.txt")
		l2.Info("msg")

		output := buf.String()
		if !strings.Contains(output, "ui.save.path=") || !strings.Contains(output, "out.txt") {
			t.Errorf("output missing nested grouped attr: %q", output)
		}
	})
}

func TestConsoleHandler_ScopeAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelDebug, ReplaceAttr: RedactAttr}
	l := slog.New(NewConsoleHandler(&buf, opts, false))

	l.Warn("Open dialog failed", "scope", "ui.open", "path", "/tmp/my code.png", "error", "", "payload", "secret")
	out := buf.String()

	cases := []string{
		"WARN  [ui.open] Open dialog failed",
		`path="/tmp/my code.png"`,
		`error=""`,
		"payload=[REDACTED]",
	}
	for _, want := range cases {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected exactly one line, got %q", out)
	}

	buf.Reset()
	l.WithGroup("ui").Info("grouped", "scope", "x")
	if got := buf.String(); strings.Contains(got, "[x]") || !strings.Contains(got, "ui.scope=x") {
		t.Fatalf("grouped scope should stay an attr: %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestFanout_LevelsAndErrors(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	f := fanout{
		NewConsoleHandler(&debugBuf, &slog.HandlerOptions{Level: LevelDebug}, false),
		NewConsoleHandler(&warnBuf, &slog.HandlerOptions{Level: LevelWarn}, false),
	}
	l := slog.New(f)

	l.Debug("quiet")
	if !strings.Contains(debugBuf.String(), "quiet") {
		t.Fatalf("debug sink missed record: %q", debugBuf.String())
	}
	if warnBuf.Len() != 0 {
		t.Fatalf("warn sink should skip debug records: %q", warnBuf.String())
	}

	broken := fanout{NewConsoleHandler(failingWriter{}, nil, false), NewConsoleHandler(&warnBuf, nil, false)}
	r := slog.NewRecord(time.Now(), LevelError, "boom", 0)
	if err := broken.Handle(context.Background(), r); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected joined write error, got %v", err)
	}
	if !strings.Contains(warnBuf.String(), "boom") {
		t.Fatalf("healthy sink should still receive the record: %q", warnBuf.String())
	}
}

func TestRedactAttr(t *testing.T) {
	cases := []struct {
		name   string
		attr   slog.Attr
		redact bool
	}{
		{name: "payload_key", attr: slog.String("payload", "hello"), redact: true},
		{name: "text_substring_key", attr: slog.String("displayed_text", "hello"), redact: true},
		{name: "wifi_value", attr: slog.String("message", "WIFI:T:WPA;S:home;P:hunter22;;"), redact: true},
		{name: "otpauth_value", attr: slog.String("message", "otpauth://totp/Example:alice?secret=JBSWY3DPEHPK3PXP"), redact: true},
		{name: "url_token_value", attr: slog.String("url", "https://example.com/reset?token=abc123"), redact: true},
		{name: "format", attr: slog.String("format", "QR_CODE"), redact: false},
		{name: "path", attr: slog.String("path", "/tmp/code.png"), redact: false},
		{name: "plain_url", attr: slog.String("url", "https://example.com/page"), redact: false},
		{name: "int_value", attr: slog.Int("graphemes", 12), redact: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RedactAttr(nil, tc.attr)
			redacted := got.Value.String() == "[REDACTED]"
			if redacted != tc.redact {
				t.Fatalf("RedactAttr(%s=%v) redacted=%v, want %v", tc.attr.Key, tc.attr.Value, redacted, tc.redact)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{in: "debug", want: LevelDebug, ok: true},
		{in: "INFO", want: LevelInfo, ok: true},
		{in: "", want: LevelInfo, ok: true},
		{in: "warning", want: LevelWarn, ok: true},
		{in: "error", want: LevelError, ok: true},
		{in: "loud", want: LevelInfo, ok: false},
	}
	for _, tc := range cases {
		got, ok := ParseLevel(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInitRedactsInJSONSink(t *testing.T) {
	var logBuf bytes.Buffer
	Init(LevelInfo, &logBuf)
	defer Init(LevelInfo, nil)

	Info("Decoded symbol", "format", "QR_CODE", "payload", "WIFI:S:home;P:hunter22;;")
	out := logBuf.String()
	if strings.Contains(out, "hunter22") {
		t.Fatalf("payload leaked into JSON log: %s", out)
	}
	if !strings.Contains(out, "QR_CODE") {
		t.Fatalf("expected non-sensitive attr in JSON log: %s", out)
	}
}

func TestConsoleHandler_NoColorWhenNotTTY(t *testing.T) {
	prevIsTerminal := isTerminal
	isTerminal = func(_ int) bool { return false }
	defer func() { isTerminal = prevIsTerminal }()

	prevStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = prevStderr }()

	Init(LevelInfo, nil)
	Info("Scanner ready", "lang", "ru")

	_ = w.Close()
	out, _ := io.ReadAll(r)
	if strings.Contains(string(out), "\033[") {
		t.Fatalf("unexpected ANSI codes in output: %q", string(out))
	}
}

func TestConsoleHandler_NoColorWhenLogFileEnabled(t *testing.T) {
	prevIsTerminal := isTerminal
	isTerminal = func(_ int) bool { return true }
	defer func() { isTerminal = prevIsTerminal }()

	prevStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = prevStderr }()

	var logBuf bytes.Buffer
	Init(LevelInfo, &logBuf)
	Info("Scanner ready", "lang", "ru")

	_ = w.Close()
	out, _ := io.ReadAll(r)
	if strings.Contains(string(out), "\033[") {
		t.Fatalf("unexpected ANSI codes in output: %q", string(out))
	}
}
