package main

import (
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"

	"github.com/oukeidos/qrscan/internal/appstate"
	"github.com/oukeidos/qrscan/internal/cleanup"
	"github.com/oukeidos/qrscan/internal/config"
	"github.com/oukeidos/qrscan/internal/files"
	"github.com/oukeidos/qrscan/internal/language"
	"github.com/oukeidos/qrscan/internal/logger"
	"github.com/oukeidos/qrscan/internal/scanner"
)

// loadSettings resolves the environment configuration. A bad value is
// logged and the defaults are used, since the window has no flags to fix it.
func loadSettings() *config.Config {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		logger.Warn("Invalid configuration; using defaults", "error", err)
		return &config.Config{
			Language: language.Default,
			MaxSide:  scanner.DefaultMaxSide,
			LogLevel: logger.LevelInfo,
			Formats:  scanner.DefaultFormats,
		}
	}
	return cfg
}

func openLogFile(path string) io.Writer {
	if path == "" {
		return nil
	}
	if err := files.RejectSymlinkPath(path); err != nil {
		logger.Warn("Log file rejected", "path", path, "error", err)
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		logger.Warn("Log file unavailable", "path", path, "error", err)
		return nil
	}
	cleanup.Register(f.Close)
	return f
}

func main() {
	cfg := loadSettings()
	logger.Init(cfg.LogLevel, openLogFile(cfg.LogFile))
	defer func() {
		if err := cleanup.RunAll(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			_ = cleanup.RunAll()
			os.Exit(1)
		}
	}()

	myApp := app.NewWithID("com.oukeidos.qrscan")
	myApp.Settings().SetTheme(scannerTheme{Theme: theme.DefaultTheme()})
	myApp.SetIcon(appIcon())

	w := myApp.NewWindow(windowTitle)
	w.SetIcon(appIcon())
	w.SetMaster()
	w.Resize(windowSize)
	w.CenterOnScreen()

	sc := scanner.New(cfg.MaxSide, scanner.WithFormats(cfg.Formats...))
	a := newScannerApp(w, appstate.New(cfg.Language, sc))
	logger.Info("Scanner window ready", "lang", cfg.Language.String(), "max_side", cfg.MaxSide)

	w.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		a.handleDropped(uris)
	})

	w.ShowAndRun()
}
