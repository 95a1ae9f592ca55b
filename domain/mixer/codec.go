package mixer

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedExtensions lists the file extensions the decoder accepts.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// Compression selects the PNG compression level for exports.
type Compression string

const (
	CompressionDefault Compression = "default"
	CompressionNone    Compression = "none"
	CompressionSpeed   Compression = "speed"
	CompressionBest    Compression = "best"
)

// ParseCompression validates a configured compression name. Empty means default.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CompressionDefault, nil
	case CompressionDefault, CompressionNone, CompressionSpeed, CompressionBest:
		return c, nil
	default:
		return "", fmt.Errorf("unknown png compression %q", s)
	}
}

func (c Compression) option() imaging.EncodeOption {
	switch c {
	case CompressionNone:
		return imaging.PNGCompressionLevel(png.NoCompression)
	case CompressionSpeed:
		return imaging.PNGCompressionLevel(png.BestSpeed)
	case CompressionBest:
		return imaging.PNGCompressionLevel(png.BestCompression)
	default:
		return imaging.PNGCompressionLevel(png.DefaultCompression)
	}
}

// IsSupportedFile reports whether path has an extension the decoder accepts.
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// decodeFile opens and fully decodes the image at path.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("image has no pixels")}
	}
	return img, nil
}

// encodePNG writes img to w as PNG.
func encodePNG(w io.Writer, img image.Image, c Compression) error {
	if err := imaging.Encode(w, img, imaging.PNG, c.option()); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// EnsurePNGExtension appends ".png" unless path already ends with it.
func EnsurePNGExtension(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		return path
	}
	return path + ".png"
}
