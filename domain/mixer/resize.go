package mixer

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// resizeTo scales img to exactly size. Images that already have the
// requested dimensions are returned untouched.
func resizeTo(img image.Image, size image.Point) image.Image {
	b := img.Bounds()
	if b.Dx() == size.X && b.Dy() == size.Y {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.CatmullRom.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	return dst
}

// fitDimensions returns the largest size with the aspect ratio of src that
// fits inside box×box. Both dimensions are at least 1.
func fitDimensions(src image.Point, box int) (int, int) {
	if src.X <= 0 || src.Y <= 0 || box <= 0 {
		return 0, 0
	}
	if src.X >= src.Y {
		h := int(float64(src.Y)*float64(box)/float64(src.X) + 0.5)
		return box, max(h, 1)
	}
	w := int(float64(src.X)*float64(box)/float64(src.Y) + 0.5)
	return max(w, 1), box
}

// Letterbox scales img to fit a size×size square preserving aspect
// ratio and centers it on a canvas filled with bg. Smaller images are
// enlarged.
func Letterbox(img image.Image, size int, bg color.Color) *image.NRGBA {
	w, h := fitDimensions(img.Bounds().Size(), size)
	scaled := imaging.Resize(img, w, h, imaging.Lanczos)
	return imaging.PasteCenter(imaging.New(size, size, bg), scaled)
}

// Thumbnail is like Letterbox but never enlarges img.
func Thumbnail(img image.Image, size int, bg color.Color) *image.NRGBA {
	fitted := imaging.Fit(img, size, size, imaging.Lanczos)
	return imaging.PasteCenter(imaging.New(size, size, bg), fitted)
}
