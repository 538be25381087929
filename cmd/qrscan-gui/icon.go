package main

import (
	"bytes"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/oukeidos/qrscan/internal/logger"
)

const iconSize = 256

// appIcon renders a QR code of the project URL as the window icon.
var appIcon = sync.OnceValue(func() fyne.Resource {
	bm, err := qrcode.NewQRCodeWriter().Encode("https://github.com/oukeidos/qrscan", gozxing.BarcodeFormat_QR_CODE, iconSize, iconSize, nil)
	if err != nil {
		logger.Warn("Icon render failed", "error", err)
		return theme.FileImageIcon()
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, bm); err != nil {
		logger.Warn("Icon encode failed", "error", err)
		return theme.FileImageIcon()
	}
	return fyne.NewStaticResource("icon.png", buf.Bytes())
})
