package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/oukeidos/qrscan/internal/apperrors"
	"github.com/oukeidos/qrscan/internal/logger"
)

// DefaultMaxSide caps the longest image side before decoding.
const DefaultMaxSide = 3000

var supportedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".gif":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

// ImageExtensions returns the accepted extensions, for file dialog filters.
func ImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}
}

// IsSupportedImage reports whether path has an accepted image extension.
func IsSupportedImage(path string) bool {
	_, ok := supportedImageExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LoadImage opens and decodes the image at path, honoring EXIF orientation.
// Open failures are KindIO errors; undecodable data is KindImage.
func LoadImage(path string) (image.Image, error) {
	if !IsSupportedImage(path) {
		ext := filepath.Ext(path)
		if ext == "" {
			ext = "(none)"
		}
		return nil, apperrors.Image(fmt.Errorf("unsupported image extension %q", ext))
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			return nil, apperrors.IO(err)
		}
		return nil, apperrors.Image(err)
	}
	return img, nil
}

// ReadImage decodes an image from r, honoring EXIF orientation.
func ReadImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.Image(err)
	}
	return img, nil
}

// Shrink downsizes img so that its longest side is at most maxSide.
// Smaller images and maxSide <= 0 return img unchanged.
func Shrink(img image.Image, maxSide int) image.Image {
	if maxSide <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return img
	}
	logger.Debug("Downsizing image before decode", "width", b.Dx(), "height", b.Dy(), "max_side", maxSide)
	return imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
}

// Scanner ties image loading to a Decoder.
type Scanner struct {
	Decoder Decoder
	MaxSide int
	// TryInverted retries a miss on the negative image, for light-on-dark codes.
	TryInverted bool
}

// New returns a Scanner backed by a ZXingDecoder.
func New(maxSide int, opts ...Option) *Scanner {
	return &Scanner{Decoder: NewZXingDecoder(opts...), MaxSide: maxSide, TryInverted: true}
}

// ScanFile loads path and decodes one symbol from it.
func (s *Scanner) ScanFile(ctx context.Context, path string) (Result, error) {
	img, err := LoadImage(path)
	if err != nil {
		return Result{}, err
	}
	return s.scan(ctx, img)
}

// ScanReader decodes one symbol from an encoded image stream.
func (s *Scanner) ScanReader(ctx context.Context, r io.Reader) (Result, error) {
	img, err := ReadImage(r)
	if err != nil {
		return Result{}, err
	}
	return s.scan(ctx, img)
}

func (s *Scanner) scan(ctx context.Context, img image.Image) (Result, error) {
	img = Shrink(img, s.MaxSide)
	res, err := s.Decoder.Decode(ctx, img)
	if !errors.Is(err, ErrNotFound) || !s.TryInverted {
		return res, err
	}
	logger.Debug("Retrying decode on inverted image")
	return s.Decoder.Decode(ctx, imaging.Invert(img))
}
