package raster

import (
	"image"
	"math"
)

// SampleNearest returns the texel under (u, v) without filtering. V runs
// bottom to top. The texel is clamped into face so samples on a face edge
// never bleed into the neighbouring net.
func SampleNearest(tex *image.NRGBA, u, v float64, face image.Rectangle) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	x := int(math.Floor(u * float64(w)))
	y := int(math.Floor((1 - v) * float64(h)))

	face = face.Intersect(tex.Rect)
	if face.Empty() {
		face = tex.Rect
	}
	x = min(max(x, face.Min.X), face.Max.X-1)
	y = min(max(y, face.Min.Y), face.Max.Y-1)

	i := tex.PixOffset(x, y)
	p := tex.Pix[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}
