// Package scanner loads raster images and decodes QR and barcode symbols
// from them. Decoding itself is done by gozxing.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrNotFound means the image was read but holds no decodable symbol.
var ErrNotFound = errors.New("no symbol found in image")

// Format is a barcode symbology.
type Format string

const (
	FormatQR         Format = "qr"
	FormatDataMatrix Format = "datamatrix"
	FormatAztec      Format = "aztec"
	FormatCode128    Format = "code128"
	FormatCode39     Format = "code39"
	FormatEAN13      Format = "ean13"
	FormatEAN8       Format = "ean8"
	FormatUPCA       Format = "upca"
	FormatUPCE       Format = "upce"
	FormatITF        Format = "itf"
	FormatCodabar    Format = "codabar"
)

// DefaultFormats is the search order: QR first, then other 2D, then 1D.
var DefaultFormats = []Format{
	FormatQR,
	FormatDataMatrix,
	FormatAztec,
	FormatCode128,
	FormatCode39,
	FormatEAN13,
	FormatEAN8,
	FormatUPCA,
	FormatUPCE,
	FormatITF,
	FormatCodabar,
}

// ParseFormats parses a comma-separated list such as "qr,code128".
func ParseFormats(list string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(list, ",") {
		name := Format(strings.ToLower(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		if !isKnownFormat(name) {
			return nil, fmt.Errorf("unknown barcode format %q", name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no barcode formats given")
	}
	return out, nil
}

func isKnownFormat(f Format) bool {
	for _, known := range DefaultFormats {
		if known == f {
			return true
		}
	}
	return false
}

// Result is one decoded symbol.
type Result struct {
	Text   string
	Format string // library name of the symbology, e.g. QR_CODE
}

// Decoder decodes a single symbol from an image.
// It returns ErrNotFound when nothing decodable is present.
type Decoder interface {
	Decode(ctx context.Context, img image.Image) (Result, error)
}
