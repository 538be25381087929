package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/oukeidos/qrscan/internal/cleanup"
	"github.com/oukeidos/qrscan/internal/prompt"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("QRSCAN_LANG", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
	t.Cleanup(func() { _ = cleanup.RunAll() })

	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func withConfirmer(t *testing.T, c prompt.Confirmer) {
	t.Helper()
	prev := newConfirmer
	newConfirmer = func() prompt.Confirmer { return c }
	t.Cleanup(func() { newConfirmer = prev })
}

func writeQR(t *testing.T, payload string) string {
	t.Helper()
	bm, err := qrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, 240, 240, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "code.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, bm); err != nil {
		t.Fatalf("png: %v", err)
	}
	return path
}

func TestRoot_NoArgsShowsHelp(t *testing.T) {
	out, err := executeCommand(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "qrscan <image> [flags]") {
		t.Fatalf("expected root usage, got: %s", out)
	}
	if !strings.Contains(out, ".webp") {
		t.Fatalf("expected supported extensions in help, got: %s", out)
	}
}

func TestRoot_FlagsWithoutImage(t *testing.T) {
	_, err := executeCommand(t, "--lang", "en")
	if err == nil || !strings.Contains(err.Error(), "an image file is required") {
		t.Fatalf("expected missing image error, got %v", err)
	}
}

func TestRoot_Version(t *testing.T) {
	out, err := executeCommand(t, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "qrscan ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestDecode_PrintsPayload(t *testing.T) {
	path := writeQR(t, "hello from qrscan")

	cases := []struct {
		name   string
		args   []string
		status string
	}{
		{name: "root_russian", args: []string{path}, status: "QR-код успешно распознан!"},
		{name: "root_english", args: []string{"--lang", "en", path}, status: "QR code successfully recognized!"},
		{name: "subcommand", args: []string{"decode", "--lang", "English", path}, status: "QR code successfully recognized!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := executeCommand(t, tc.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v (output: %s)", err, out)
			}
			if !strings.Contains(out, "hello from qrscan\n") {
				t.Fatalf("expected payload, got: %s", out)
			}
			if !strings.Contains(out, tc.status) {
				t.Fatalf("expected status %q, got: %s", tc.status, out)
			}
		})
	}
}

func TestDecode_LanguageFromEnvironment(t *testing.T) {
	path := writeQR(t, "env")
	cases := []struct {
		name string
		env  string
		val  string
		want string
	}{
		{name: "qrscan_lang", env: "QRSCAN_LANG", val: "en", want: "QR code successfully recognized!"},
		{name: "locale", env: "LANG", val: "en_US.UTF-8", want: "QR code successfully recognized!"},
		{name: "unsupported_locale", env: "LANG", val: "de_DE.UTF-8", want: "QR-код успешно распознан!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(func() { _ = cleanup.RunAll() })
			t.Setenv("QRSCAN_LANG", "")
			t.Setenv("LC_ALL", "")
			t.Setenv("LC_MESSAGES", "")
			t.Setenv("LANG", "")
			t.Setenv(tc.env, tc.val)

			cmd := newRootCmd()
			buf := &bytes.Buffer{}
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{path})
			if err := cmd.Execute(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(buf.String(), tc.want) {
				t.Fatalf("expected %q, got: %s", tc.want, buf.String())
			}
		})
	}
}

func TestDecode_NotFoundFails(t *testing.T) {
	blank := image.NewGray(image.Rect(0, 0, 80, 80))
	for i := range blank.Pix {
		blank.Pix[i] = 0xff
	}
	path := filepath.Join(t.TempDir(), "blank.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, blank); err != nil {
		t.Fatalf("png: %v", err)
	}
	f.Close()

	out, err := executeCommand(t, "--lang", "en", path)
	if err == nil {
		t.Fatalf("expected error for image without a symbol")
	}
	if err.Error() != "QR code not found in the image." {
		t.Fatalf("unexpected error: %q", err.Error())
	}
	if strings.Contains(out, "successfully") {
		t.Fatalf("unexpected success output: %s", out)
	}
}

func TestDecode_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(corrupt, []byte("nope"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := []struct {
		name string
		path string
	}{
		{name: "missing", path: filepath.Join(dir, "missing.png")},
		{name: "corrupt", path: corrupt},
		{name: "unsupported_extension", path: filepath.Join(dir, "notes.txt")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := executeCommand(t, "--lang", "en", tc.path)
			if err == nil || !strings.HasPrefix(err.Error(), "Error while saving: ") {
				t.Fatalf("expected decode error, got %v", err)
			}
		})
	}
}

func TestDecode_InvalidConfig(t *testing.T) {
	path := writeQR(t, "x")
	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "lang", args: []string{"--lang", "de", path}, want: "unsupported language"},
		{name: "max_size", args: []string{"--max-size=-5", path}, want: "max_size"},
		{name: "formats", args: []string{"--formats", "qr,nope", path}, want: "nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := executeCommand(t, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestDecode_SavesOutput(t *testing.T) {
	withConfirmer(t, prompt.Confirmer{IsInteractive: func() bool { return false }})
	path := writeQR(t, "saved payload")
	out := filepath.Join(t.TempDir(), "qr_result.txt")

	stdout, err := executeCommand(t, "--lang", "en", "-o", out, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "saved payload" {
		t.Fatalf("output = %q", string(data))
	}
	if !strings.Contains(stdout, "Result successfully saved!") {
		t.Fatalf("expected save status, got: %s", stdout)
	}
}

func TestDecode_ExistingOutput(t *testing.T) {
	withConfirmer(t, prompt.Confirmer{IsInteractive: func() bool { return false }})
	path := writeQR(t, "new")

	t.Run("yes_overwrites", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "qr_result.txt")
		if err := os.WriteFile(out, []byte("old"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := executeCommand(t, "-y", "-o", out, path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, _ := os.ReadFile(out)
		if string(data) != "new" {
			t.Fatalf("expected overwrite, got %q", string(data))
		}
	})

	t.Run("no_yes_picks_sibling", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "qr_result.txt")
		if err := os.WriteFile(out, []byte("old"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := executeCommand(t, "-o", out, path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, _ := os.ReadFile(out)
		if string(data) != "old" {
			t.Fatalf("original output should be untouched, got %q", string(data))
		}
		data, err := os.ReadFile(filepath.Join(dir, "qr_result_1.txt"))
		if err != nil || string(data) != "new" {
			t.Fatalf("expected sibling output, got %q (%v)", string(data), err)
		}
	})
}

func TestDecode_SaveFailure(t *testing.T) {
	withConfirmer(t, prompt.Confirmer{IsInteractive: func() bool { return false }})
	path := writeQR(t, "x")
	out := filepath.Join(t.TempDir(), "missing-dir", "qr_result.txt")

	_, err := executeCommand(t, "--lang", "en", "-o", out, path)
	if err == nil || !strings.HasPrefix(err.Error(), "Error while saving: ") {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestDecode_LogFile(t *testing.T) {
	path := writeQR(t, "WIFI:S:home;T:WPA;P:correct-horse;;")
	logPath := filepath.Join(t.TempDir(), "qrscan.jsonl")

	if _, err := executeCommand(t, "--log-file", logPath, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cleanup.RunAll(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "Symbol decoded") {
		t.Fatalf("expected decode record in log, got: %s", data)
	}
	if strings.Contains(string(data), "correct-horse") {
		t.Fatalf("payload leaked into log: %s", data)
	}
}

func TestLanguagesCmd(t *testing.T) {
	for _, name := range []string{"languages", "list"} {
		t.Run(name, func(t *testing.T) {
			out, err := executeCommand(t, name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, "Русский") || !strings.Contains(out, "[en]") {
				t.Fatalf("unexpected output: %s", out)
			}
			if !strings.Contains(out, "* Русский") {
				t.Fatalf("expected default marker on Russian, got: %s", out)
			}
		})
	}
}

func TestAboutCmd(t *testing.T) {
	out, err := executeCommand(t, "about")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "https://github.com/oukeidos/qrscan") {
		t.Fatalf("unexpected output: %s", out)
	}
}
