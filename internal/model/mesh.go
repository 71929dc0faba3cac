// Package model builds the box meshes of the Bedrock humanoid in world
// space and intersects rays with them.
package model

import (
	"image"
	"math"

	"bedrock-skin-editor/internal/mathutil"
	"bedrock-skin-editor/internal/uvmap"
)

// OverlayScale is how much larger the overlay shell is than the base box.
const OverlayScale = 1.1

// pixelsPerUnit converts 64-reference texture pixels to world units.
const pixelsPerUnit = 8.0

// Quad is one box face: four corners in mesh order with their UVs.
// Triangles are (0,2,1) and (2,3,1), counter-clockwise seen from outside.
type Quad struct {
	Face uvmap.Face
	Pos  [4]mathutil.Vec3
	UV   [4]uvmap.UV
}

// Triangles returns the two front-facing triangles as vertex indices.
var Triangles = [2][3]int{{0, 2, 1}, {2, 3, 1}}

// Box is one body part placed in the world.
type Box struct {
	Part  uvmap.Part
	Quads [6]Quad
}

// Mesh is the set of visible boxes for one model variant and resolution.
type Mesh struct {
	Model      uvmap.Model
	Resolution int
	Boxes      []Box
}

// center returns the world position of a part's box.
func center(name string, model uvmap.Model) mathutil.Vec3 {
	armX := 0.75
	if model == uvmap.Slim {
		armX = 0.6875
	}
	switch name {
	case "head", "headOverlay":
		return mathutil.Vec3{0, 1.5, 0}
	case "body", "bodyOverlay":
		return mathutil.Vec3{0, 0.25, 0}
	case "rightArm", "rightArmOverlay":
		return mathutil.Vec3{-armX, 0.25, 0}
	case "leftArm", "leftArmOverlay":
		return mathutil.Vec3{armX, 0.25, 0}
	case "rightLeg", "rightLegOverlay":
		return mathutil.Vec3{-0.25, -1.25, 0}
	case "leftLeg", "leftLegOverlay":
		return mathutil.Vec3{0.25, -1.25, 0}
	}
	return mathutil.Vec3{}
}

// unitCorners are the corners of each face of a unit cube centred on the
// origin, in mesh vertex order.
var unitCorners = [6][4]mathutil.Vec3{
	uvmap.PosX: {{0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}},
	uvmap.NegX: {{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}},
	uvmap.PosY: {{-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}},
	uvmap.NegY: {{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}},
	uvmap.PosZ: {{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}},
	uvmap.NegZ: {{0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}},
}

// Build places the visible parts of model. Hidden layers contribute no
// boxes, so they can be neither drawn nor hit.
func Build(model uvmap.Model, resolution int, showBase, showOverlay bool) *Mesh {
	m := &Mesh{Model: model, Resolution: resolution}
	scale := uvmap.Scale(resolution)
	for _, p := range uvmap.AllParts(model, scale) {
		if (p.Layer == uvmap.Base && !showBase) || (p.Layer == uvmap.Overlay && !showOverlay) {
			continue
		}
		m.Boxes = append(m.Boxes, buildBox(p, model, scale, resolution))
	}
	return m
}

func buildBox(p uvmap.Part, model uvmap.Model, scale, resolution int) Box {
	k := 1.0 / (pixelsPerUnit * float64(scale))
	if p.Layer == uvmap.Overlay {
		k *= OverlayScale
	}
	xf := mathutil.FromMat3Translation(
		mathutil.Mat3Diag(float64(p.W)*k, float64(p.H)*k, float64(p.D)*k),
		center(p.Name, model),
	)

	b := Box{Part: p}
	for _, f := range uvmap.Faces {
		q := Quad{Face: f, UV: p.FaceUVs(f, resolution)}
		for i, c := range unitCorners[f] {
			q.Pos[i] = xf.MulPoint(c)
		}
		b.Quads[f] = q
	}
	return b
}

// Hit is the nearest intersection of a ray with the mesh.
type Hit struct {
	Part  uvmap.Part
	Face  uvmap.Face
	Point mathutil.Vec3
	UV    uvmap.UV
	T     float64
}

// Pixel returns the texture pixel under the hit, clamped into the hit face
// so edge hits never land on a neighbouring face.
func (h Hit) Pixel(resolution int) image.Point {
	x, y := uvmap.UVToPixel(h.UV.U, h.UV.V, resolution)
	x, y = uvmap.ClampInto(x, y, h.Part.FaceRect(h.Face))
	return image.Pt(x, y)
}

// FaceRect returns the texture rectangle of the hit face.
func (h Hit) FaceRect() image.Rectangle {
	return h.Part.FaceRect(h.Face)
}

// Raycast returns the nearest front-facing hit along r.
func (m *Mesh) Raycast(r mathutil.Ray) (Hit, bool) {
	best := Hit{T: math.Inf(1)}
	found := false
	for _, b := range m.Boxes {
		for _, q := range b.Quads {
			for _, tri := range Triangles {
				ia, ib, ic := tri[0], tri[1], tri[2]
				t, wb, wc, ok := r.IntersectTriangle(q.Pos[ia], q.Pos[ib], q.Pos[ic])
				if !ok || t >= best.T {
					continue
				}
				wa := 1 - wb - wc
				best = Hit{
					Part:  b.Part,
					Face:  q.Face,
					Point: r.At(t),
					UV: uvmap.UV{
						U: q.UV[ia].U*wa + q.UV[ib].U*wb + q.UV[ic].U*wc,
						V: q.UV[ia].V*wa + q.UV[ib].V*wb + q.UV[ic].V*wc,
					},
					T: t,
				}
				found = true
			}
		}
	}
	return best, found
}
