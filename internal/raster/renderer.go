// Package raster draws textured humanoid previews in software.
package raster

import (
	"image"
	"math"

	"bedrock-skin-editor/internal/mathutil"
	"bedrock-skin-editor/internal/model"
	"bedrock-skin-editor/internal/postprocess"
	"bedrock-skin-editor/internal/texture"
	"bedrock-skin-editor/internal/uvmap"
)

// Options control RenderSkin. Zero values select the defaults.
type Options struct {
	Model       uvmap.Model
	HideBase    bool
	HideOverlay bool

	// Size is the edge length of the square output.
	Size int
	// Supersample renders at Size*Supersample and filters down.
	Supersample int
	// View rotates world space into view space; the camera looks down -Z.
	// The zero matrix selects mathutil.PreviewView.
	View mathutil.Mat3
	// Margin is the empty border in output pixels.
	Margin int

	Light *LightConfig
}

const (
	DefaultSize        = 256
	DefaultSupersample = 2
	DefaultMargin      = 8
)

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = uvmap.Normal
	}
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Supersample <= 0 {
		o.Supersample = DefaultSupersample
	}
	if o.View == (mathutil.Mat3{}) {
		o.View = mathutil.PreviewView
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	if o.Light == nil {
		lc := DefaultLightConfig()
		o.Light = &lc
	}
	return o
}

// RenderSkin draws the humanoid wearing tex with an orthographic camera,
// fitted to the output square.
func RenderSkin(tex *texture.Buffer, opts Options) *image.NRGBA {
	opts = opts.withDefaults()
	mesh := model.Build(opts.Model, tex.Size(), !opts.HideBase, !opts.HideOverlay)
	if len(mesh.Boxes) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	}

	renderSize := opts.Size * opts.Supersample
	R := opts.View

	// Compute bounding box of all view-space vertices
	allMin := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, b := range mesh.Boxes {
		for _, q := range b.Quads {
			for _, p := range q.Pos {
				tv := R.MulVec3(p)
				for k := 0; k < 3; k++ {
					allMin[k] = math.Min(allMin[k], tv[k])
					allMax[k] = math.Max(allMax[k], tv[k])
				}
			}
		}
	}
	center := allMin.Lerp(allMax, 0.5)
	span := math.Max(math.Max(allMax[0]-allMin[0], allMax[1]-allMin[1]), 0.001)

	margin := opts.Margin * opts.Supersample
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2

	project := func(p mathutil.Vec3, uv uvmap.UV) Vertex {
		tv := R.MulVec3(p).Sub(center)
		return Vertex{
			X: half + tv[0]*scale,
			Y: half - tv[1]*scale,
			Z: tv[2],
			U: uv.U,
			V: uv.V,
		}
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	img := tex.Snapshot()
	lc := opts.Light
	viewZ := mathutil.Vec3{R[6], R[7], R[8]}

	for _, b := range mesh.Boxes {
		for _, q := range b.Quads {
			n := faceNormal(q)
			// Inner faces of the overlay shell show through transparent
			// texels, so faces pointing away are lit from the viewer's side.
			if n.Dot(viewZ) < 0 {
				n = n.Scale(-1)
			}
			shade := lc.Shade(n)
			face := b.Part.FaceRect(q.Face)

			var vs [4]Vertex
			for i := range q.Pos {
				vs[i] = project(q.Pos[i], q.UV[i])
			}
			for _, tri := range model.Triangles {
				RasterizeTriangle(fb, [3]Vertex{vs[tri[0]], vs[tri[1]], vs[tri[2]]}, img, face, shade, lc.InvGamma)
			}
		}
	}

	out := fb.Image()
	if opts.Supersample > 1 {
		out = postprocess.Downsample(out, opts.Size)
	}
	return out
}

// faceNormal returns the outward unit normal of a box face.
func faceNormal(q model.Quad) mathutil.Vec3 {
	e1 := q.Pos[1].Sub(q.Pos[0])
	e2 := q.Pos[2].Sub(q.Pos[0])
	return e2.Cross(e1).Normalize()
}
