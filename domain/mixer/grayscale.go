package mixer

import (
	"image"
	"image/color"
)

// Luma weights of ITU-R 601-2 in 16.16 fixed point. They sum to 1<<16, so a
// pixel with R == G == B maps to the same gray value.
const (
	lumaR = 19595
	lumaG = 38470
	lumaB = 7471
)

// luma converts non-premultiplied 8-bit RGB to gray, rounding to nearest.
func luma(r, g, b uint8) uint8 {
	return uint8((lumaR*uint32(r) + lumaG*uint32(g) + lumaB*uint32(b) + 1<<15) >> 16)
}

// Grayscale reduces img to a single intensity plane. Alpha is ignored.
// The returned image always has its origin at (0, 0).
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < b.Dy(); y++ {
			srcRow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()], srcRow[:b.Dx()])
		}
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < b.Dx(); x++ {
				p := row[x*4 : x*4+3]
				out[x] = luma(p[0], p[1], p[2])
			}
		}
	default:
		for y := 0; y < b.Dy(); y++ {
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				out[x] = luma(c.R, c.G, c.B)
			}
		}
	}

	return dst
}
