package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/oukeidos/qrscan/internal/logger"
)

func withPanicGuard(scope string, onPanic func(any), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r))
			if onPanic != nil {
				onPanic(r)
			}
		}
	}()
	fn()
}

// guard runs a UI action and turns a panic into a one-time notice.
func (a *scannerApp) guard(scope string, fn func()) {
	if a == nil {
		withPanicGuard(scope, nil, fn)
		return
	}
	withPanicGuard(scope, func(r any) {
		a.handleRecoveredPanic(scope, r)
	}, fn)
}

func (a *scannerApp) handleRecoveredPanic(scope string, _ any) {
	if a == nil || fyne.CurrentApp() == nil {
		return
	}
	a.panicCount++
	a.panicNoticeOnce.Do(func() {
		withPanicGuard(scope+".notice", nil, func() {
			if a.window == nil {
				return
			}
			dialog.ShowInformation(
				"Unexpected Error",
				"An internal error occurred and the action was stopped. If this repeats, restart the app.",
				a.window,
			)
		})
	})
}
