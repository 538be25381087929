package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/aztec"
	"github.com/makiuchi-d/gozxing/datamatrix"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/oukeidos/qrscan/internal/apperrors"
	"github.com/oukeidos/qrscan/internal/logger"
)

// ZXingDecoder tries one gozxing reader per configured format, in order,
// and returns the first hit.
type ZXingDecoder struct {
	formats   []Format
	tryHarder bool
}

type Option func(*ZXingDecoder)

// WithFormats restricts and orders the symbologies to try.
func WithFormats(formats ...Format) Option {
	return func(d *ZXingDecoder) {
		if len(formats) > 0 {
			d.formats = append([]Format(nil), formats...)
		}
	}
}

// WithTryHarder toggles the slower, more thorough search. It is on by default.
func WithTryHarder(on bool) Option {
	return func(d *ZXingDecoder) { d.tryHarder = on }
}

func NewZXingDecoder(opts ...Option) *ZXingDecoder {
	d := &ZXingDecoder{
		formats:   append([]Format(nil), DefaultFormats...),
		tryHarder: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Formats returns the configured search order.
func (d *ZXingDecoder) Formats() []Format {
	return append([]Format(nil), d.formats...)
}

func (d *ZXingDecoder) Decode(ctx context.Context, img image.Image) (Result, error) {
	if img == nil {
		return Result{}, apperrors.Image(fmt.Errorf("image is nil"))
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return Result{}, apperrors.Image(fmt.Errorf("failed to binarize image: %w", err))
	}

	hints := map[gozxing.DecodeHintType]interface{}{}
	if d.tryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	for _, f := range d.formats {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		reader := newReader(f)
		if reader == nil {
			continue
		}
		res, err := reader.Decode(bmp, hints)
		if err != nil {
			if isReaderMiss(err) {
				logger.Debug("Symbol not found with reader", "format", string(f), "reason", err.Error())
				continue
			}
			return Result{}, apperrors.Image(fmt.Errorf("%s reader failed: %w", f, err))
		}
		if res == nil {
			continue
		}
		return Result{Text: res.GetText(), Format: res.GetBarcodeFormat().String()}, nil
	}
	return Result{}, ErrNotFound
}

// isReaderMiss reports whether gozxing gave up on the image (not found,
// malformed symbol, bad checksum) rather than failing for another reason.
func isReaderMiss(err error) bool {
	var re gozxing.ReaderException
	return errors.As(err, &re)
}

func newReader(f Format) gozxing.Reader {
	switch f {
	case FormatQR:
		return qrcode.NewQRCodeReader()
	case FormatDataMatrix:
		return datamatrix.NewDataMatrixReader()
	case FormatAztec:
		return aztec.NewAztecReader()
	case FormatCode128:
		return oned.NewCode128Reader()
	case FormatCode39:
		return oned.NewCode39Reader()
	case FormatEAN13:
		return oned.NewEAN13Reader()
	case FormatEAN8:
		return oned.NewEAN8Reader()
	case FormatUPCA:
		return oned.NewUPCAReader()
	case FormatUPCE:
		return oned.NewUPCEReader()
	case FormatITF:
		return oned.NewITFReader()
	case FormatCodabar:
		return oned.NewCodaBarReader()
	default:
		return nil
	}
}
