package postprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Pair crops two renders to their opaque bounds, places them side by side
// and fits the pair into a size×size canvas, filling at most fillRatio of
// it. Used for front-and-back preview sheets.
func Pair(left, right *image.NRGBA, size int, fillRatio float64) *image.NRGBA {
	l, r := CropAlpha(left), CropAlpha(right)
	lb, rb := l.Bounds(), r.Bounds()

	gap := max(max(lb.Dx(), rb.Dx())/8, 2)
	pairW := lb.Dx() + gap + rb.Dx()
	pairH := max(lb.Dy(), rb.Dy())

	pair := image.NewNRGBA(image.Rect(0, 0, pairW, pairH))
	draw.Copy(pair, image.Pt(0, (pairH-lb.Dy())/2), l, lb, draw.Over, nil)
	draw.Copy(pair, image.Pt(lb.Dx()+gap, (pairH-rb.Dy())/2), r, rb, draw.Over, nil)

	return ScaleAndCenter(pair, size, fillRatio)
}

// CropAlpha returns the smallest sub-image holding every non-transparent
// pixel. Fully transparent images are returned unchanged.
func CropAlpha(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return img
	}

	crop := image.Rect(minX, minY, maxX+1, maxY+1)
	out := image.NewNRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Copy(out, image.Point{}, img, crop, draw.Src, nil)
	return out
}

// ScaleAndCenter fits img into a size×size transparent canvas so its longer
// side covers fillRatio of the canvas.
func ScaleAndCenter(img *image.NRGBA, size int, fillRatio float64) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}

	sc := float64(size) * fillRatio / math.Max(float64(b.Dx()), float64(b.Dy()))
	dstW := max(int(float64(b.Dx())*sc+0.5), 1)
	dstH := max(int(float64(b.Dy())*sc+0.5), 1)
	offX := (size - dstW) / 2
	offY := (size - dstH) / 2

	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(canvas, image.Rect(offX, offY, offX+dstW, offY+dstH), premultiply(img), b, draw.Src, nil)
	return unpremultiply(canvas)
}
