package raster

import (
	"image"
	"math"
)

// Vertex is a projected vertex: screen position, view depth (larger is
// nearer) and texture coordinate.
type Vertex struct {
	X, Y, Z float64
	U, V    float64
}

// alphaCutoff discards texels with alpha below 0.1.
const alphaCutoff = 26

// edgeEpsilon keeps pixel centres on a shared edge from falling between
// the two triangles of a quad.
const edgeEpsilon = 1e-6

// RasterizeTriangle fills one triangle with nearest-sampled texels from tex,
// clamped into face, lit by the flat shade value. Depth is tested and
// written per pixel; texels under the alpha cutoff leave both buffers
// untouched.
//
// This is the hot path: no allocation in the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, tex *image.NRGBA, face image.Rectangle, shade, invGamma float64) {
	x0, y0, z0 := v[0].X, v[0].Y, v[0].Z
	x1, y1, z1 := v[1].X, v[1].Y, v[1].Z
	x2, y2, z2 := v[2].X, v[2].Y, v[2].Z

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, fb.Width-1)
	maxY = min(maxY, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -edgeEpsilon || w1 < -edgeEpsilon || w2 < -edgeEpsilon {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			u := w0*v[0].U + w1*v[1].U + w2*v[2].U
			vv := w0*v[0].V + w1*v[1].V + w2*v[2].V
			cr, cg, cb, ca := SampleNearest(tex, u, vv, face)
			if ca < alphaCutoff {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = encode(srgbToLinear[cr]*shade, invGamma)
			fb.Color[pxIdx+1] = encode(srgbToLinear[cg]*shade, invGamma)
			fb.Color[pxIdx+2] = encode(srgbToLinear[cb]*shade, invGamma)
			fb.Color[pxIdx+3] = ca
		}
	}
}

// encode converts a linear value back to an 8-bit sRGB channel.
func encode(linear, invGamma float64) uint8 {
	if linear <= 0 {
		return 0
	}
	return clamp255(math.Pow(linear, invGamma) * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
