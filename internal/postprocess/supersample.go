// Package postprocess scales and composes rendered previews.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales a supersampled render down to size×size. Filtering
// runs on premultiplied pixels so transparent texels never bleed black
// into the silhouette.
func Downsample(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premultiply(img), b, draw.Src, nil)
	return unpremultiply(dst)
}

func premultiply(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	// NRGBA to RGBA conversion premultiplies.
	draw.Copy(out, b.Min, img, b, draw.Src, nil)
	return out
}

// unpremultiply converts back to straight alpha. Pixels whose alpha is at
// most 1 keep zero colour, since dividing amplifies filter noise.
func unpremultiply(img *image.RGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := img.Pix[si+3]
			out.Pix[di+3] = a
			if a <= 1 {
				continue
			}
			for c := 0; c < 3; c++ {
				out.Pix[di+c] = uint8(min((uint32(img.Pix[si+c])*255+uint32(a)/2)/uint32(a), 255))
			}
		}
	}
	return out
}
