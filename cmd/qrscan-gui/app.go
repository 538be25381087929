package main

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/qrscan/internal/appstate"
	"github.com/oukeidos/qrscan/internal/logger"
	"github.com/oukeidos/qrscan/internal/scanner"
)

const (
	windowTitle     = "QR Code Scanner"
	defaultSaveName = "qr_result.txt"
)

var windowSize = fyne.NewSize(650, 600)

// scannerTheme bumps the body text a little for the result area.
type scannerTheme struct{ fyne.Theme }

func (m scannerTheme) Size(n fyne.ThemeSizeName) float32 {
	if n == theme.SizeNameText {
		return 16
	}
	return theme.DefaultTheme().Size(n)
}

type scannerApp struct {
	window fyne.Window
	state  *appstate.State

	titleLabel  *widget.Label
	resultLabel *widget.Label
	statusLabel *widget.Label
	loadBtn     *widget.Button
	saveBtn     *widget.Button
	langBtn     *widget.Button

	panicNoticeOnce sync.Once
	panicCount      int
}

func newScannerApp(w fyne.Window, state *appstate.State) *scannerApp {
	a := &scannerApp{window: w, state: state}
	a.setupUI()
	a.refresh()
	return a
}

func (a *scannerApp) setupUI() {
	a.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	a.titleLabel.SizeName = theme.SizeNameHeadingText

	a.loadBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), a.showOpenDialog)
	a.saveBtn = widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), a.showSaveDialog)
	a.langBtn = widget.NewButton("", a.toggleLanguage)

	a.resultLabel = widget.NewLabel("")
	a.resultLabel.Wrapping = fyne.TextWrapWord
	a.resultLabel.Selectable = true

	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Wrapping = fyne.TextWrapWord

	top := container.NewVBox(
		a.titleLabel,
		a.loadBtn,
		a.saveBtn,
		a.langBtn,
		widget.NewSeparator(),
	)
	a.window.SetContent(container.NewBorder(
		top,
		a.statusLabel,
		nil,
		nil,
		container.NewVScroll(a.resultLabel),
	))
}

// refresh repaints every control from the state.
func (a *scannerApp) refresh() {
	v := a.state.View()
	a.titleLabel.SetText(v.Title)
	a.loadBtn.SetText(v.LoadLabel)
	a.saveBtn.SetText(v.SaveLabel)
	a.langBtn.SetText(v.LanguageLabel)
	a.resultLabel.SetText(v.DisplayedText)
	a.statusLabel.SetText(v.StatusMessage)
}

func (a *scannerApp) decode(path string) {
	a.guard("ui.decode", func() {
		logger.Debug("Decode requested", "scope", "ui.decode", "path", path)
		a.state.Decode(context.Background(), path)
		a.refresh()
	})
}

func (a *scannerApp) save(path string) {
	a.guard("ui.save", func() {
		a.state.Save(path)
		a.refresh()
	})
}

func (a *scannerApp) toggleLanguage() {
	a.guard("ui.language", func() {
		a.state.ToggleLanguage()
		a.refresh()
	})
}

func (a *scannerApp) handleDropped(uris []fyne.URI) {
	for _, uri := range uris {
		if uri == nil || uri.Scheme() != "file" {
			continue
		}
		a.decode(uri.Path())
		return
	}
	logger.Debug("Ignoring drop without a local file", "scope", "ui.drop", "count", len(uris))
}

func (a *scannerApp) showOpenDialog() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			logger.Warn("Open dialog failed", "scope", "ui.open", "error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		a.decode(path)
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter(scanner.ImageExtensions()))
	fd.Resize(windowSize)
	fd.Show()
}

func (a *scannerApp) showSaveDialog() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			logger.Warn("Save dialog failed", "scope", "ui.save", "error", err)
			return
		}
		if writer == nil {
			return
		}
		// Fyne runs its own overwrite prompt and opens the file through
		// writer before this callback, so a symlinked target is already
		// truncated here. WriteText still refuses to replace the link.
		path := writer.URI().Path()
		_ = writer.Close()
		a.save(path)
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
	fd.SetFileName(defaultSaveName)
	fd.Resize(windowSize)
	fd.Show()
}
