// Package uvmap describes the Bedrock humanoid skin layout: the twelve body
// part boxes, where each box face lives on the texture, and the conversions
// between texture UVs and pixels.
package uvmap

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrUnknownPart is returned for a part name outside the fixed table.
var ErrUnknownPart = errors.New("uvmap: unknown part")

// Model selects the arm width.
type Model string

const (
	Normal Model = "normal"
	Slim   Model = "slim"
)

// ParseModel accepts "normal"/"classic"/"steve" and "slim"/"alex".
func ParseModel(s string) (Model, error) {
	switch s {
	case "normal", "classic", "steve", "":
		return Normal, nil
	case "slim", "alex":
		return Slim, nil
	}
	return Normal, fmt.Errorf("uvmap: unknown model %q", s)
}

// ArmWidth returns the arm width in 64-reference pixels.
func (m Model) ArmWidth() int {
	if m == Slim {
		return 3
	}
	return 4
}

// Geometry is the Bedrock geometry identifier used in skins.json.
func (m Model) Geometry() string {
	if m == Slim {
		return "geometry.humanoid.customSlim"
	}
	return "geometry.humanoid.custom"
}

// ModelFromGeometry maps a skins.json geometry identifier back to a model.
func ModelFromGeometry(g string) Model {
	if g == "geometry.humanoid.customSlim" {
		return Slim
	}
	return Normal
}

// Layer is the base skin or the slightly larger overlay shell.
type Layer int

const (
	Base Layer = iota
	Overlay
)

func (l Layer) String() string {
	if l == Overlay {
		return "overlay"
	}
	return "base"
}

// Face indexes a box face in mesh order.
type Face int

const (
	PosX Face = iota
	NegX
	PosY // top
	NegY // bottom
	PosZ // front
	NegZ // back
)

// Faces lists all faces in mesh order.
var Faces = [6]Face{PosX, NegX, PosY, NegY, PosZ, NegZ}

var faceNames = [6]string{"+x", "-x", "+y", "-y", "+z", "-z"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return fmt.Sprintf("face(%d)", int(f))
	}
	return faceNames[f]
}

// Part is one box of the humanoid in texture pixels. U,V is the top-left
// of the box's texture net, W,H,D its width, height and depth.
type Part struct {
	Name  string
	Layer Layer
	U, V  int
	W     int
	H     int
	D     int
}

type partDef struct {
	name  string
	layer Layer
	u, v  int
	w     int // 0 means arm width
	h, d  int
}

var partTable = []partDef{
	{"head", Base, 0, 0, 8, 8, 8},
	{"body", Base, 16, 16, 8, 12, 4},
	{"rightArm", Base, 40, 16, 0, 12, 4},
	{"leftArm", Base, 32, 48, 0, 12, 4},
	{"rightLeg", Base, 0, 16, 4, 12, 4},
	{"leftLeg", Base, 16, 48, 4, 12, 4},
	{"headOverlay", Overlay, 32, 0, 8, 8, 8},
	{"bodyOverlay", Overlay, 16, 32, 8, 12, 4},
	{"rightArmOverlay", Overlay, 40, 32, 0, 12, 4},
	{"leftArmOverlay", Overlay, 48, 48, 0, 12, 4},
	{"rightLegOverlay", Overlay, 0, 32, 4, 12, 4},
	{"leftLegOverlay", Overlay, 0, 48, 4, 12, 4},
}

// Scale returns resolution/64, the multiplier from reference to real pixels.
func Scale(resolution int) int {
	if resolution < 64 {
		return 1
	}
	return resolution / 64
}

func (d partDef) part(model Model, scale int) Part {
	w := d.w
	if w == 0 {
		w = model.ArmWidth()
	}
	return Part{
		Name:  d.name,
		Layer: d.layer,
		U:     d.u * scale,
		V:     d.v * scale,
		W:     w * scale,
		H:     d.h * scale,
		D:     d.d * scale,
	}
}

// PartFor returns the named part for the model at the given scale.
func PartFor(name string, model Model, scale int) (Part, error) {
	for _, d := range partTable {
		if d.name == name {
			return d.part(model, scale), nil
		}
	}
	return Part{}, fmt.Errorf("%w: %q", ErrUnknownPart, name)
}

// Parts returns the six parts of one layer in table order.
func Parts(layer Layer, model Model, scale int) []Part {
	out := make([]Part, 0, 6)
	for _, d := range partTable {
		if d.layer == layer {
			out = append(out, d.part(model, scale))
		}
	}
	return out
}

// AllParts returns the twelve parts, base layer first.
func AllParts(model Model, scale int) []Part {
	return append(Parts(Base, model, scale), Parts(Overlay, model, scale)...)
}

// FaceRect returns the texture rectangle of a face. Max is exclusive.
func (p Part) FaceRect(f Face) image.Rectangle {
	u, v, w, h, d := p.U, p.V, p.W, p.H, p.D
	switch f {
	case PosX:
		return image.Rect(u, v+d, u+d, v+d+h)
	case NegX:
		return image.Rect(u+d+w, v+d, u+2*d+w, v+d+h)
	case PosY:
		return image.Rect(u+d, v, u+d+w, v+d)
	case NegY:
		return image.Rect(u+d+w, v, u+d+2*w, v+d)
	case PosZ:
		return image.Rect(u+d, v+d, u+d+w, v+d+h)
	case NegZ:
		return image.Rect(u+2*d+w, v+d, u+2*d+2*w, v+d+h)
	}
	return image.Rectangle{}
}

// UV is a normalized texture coordinate with v growing upwards.
type UV struct {
	U, V float64
}

// FaceUVs returns the UVs of the face's four mesh vertices (top-left,
// top-right, bottom-left, bottom-right as seen from outside). The side faces
// are mirrored so the texture net reads correctly when wrapped.
func (p Part) FaceUVs(f Face, resolution int) [4]UV {
	r := p.FaceRect(f)
	res := float64(resolution)
	uv := func(x, y int) UV {
		return UV{U: float64(x) / res, V: 1 - float64(y)/res}
	}
	if f == PosX || f == NegX {
		return [4]UV{
			uv(r.Max.X, r.Min.Y), uv(r.Min.X, r.Min.Y),
			uv(r.Max.X, r.Max.Y), uv(r.Min.X, r.Max.Y),
		}
	}
	return [4]UV{
		uv(r.Min.X, r.Min.Y), uv(r.Max.X, r.Min.Y),
		uv(r.Min.X, r.Max.Y), uv(r.Max.X, r.Max.Y),
	}
}

// FaceBounds looks up the named part and returns its face rectangle.
func FaceBounds(name string, f Face, model Model, scale int) (image.Rectangle, error) {
	p, err := PartFor(name, model, scale)
	if err != nil {
		return image.Rectangle{}, err
	}
	return p.FaceRect(f), nil
}

// UVToPixel maps a UV to the texture pixel containing it. The result may
// lie outside the texture when the UV does; callers clamp or validate.
func UVToPixel(u, v float64, resolution int) (int, int) {
	res := float64(resolution)
	return int(math.Floor(u * res)), int(math.Floor((1 - v) * res))
}

// Clip limits r to the texture.
func Clip(r image.Rectangle, resolution int) image.Rectangle {
	return r.Intersect(image.Rect(0, 0, resolution, resolution))
}

// ClampInto moves (x, y) to the nearest pixel inside r.
func ClampInto(x, y int, r image.Rectangle) (int, int) {
	if r.Empty() {
		return x, y
	}
	x = min(max(x, r.Min.X), r.Max.X-1)
	y = min(max(y, r.Min.Y), r.Max.Y-1)
	return x, y
}

// Region is a labelled outline on the flat texture view.
type Region struct {
	Name  string
	Layer Layer
	Rect  image.Rectangle
}

var regionTable = []struct {
	name       string
	layer      Layer
	x, y, w, h int
}{
	{"head", Base, 0, 0, 32, 16},
	{"body", Base, 16, 16, 24, 16},
	{"rightArm", Base, 40, 16, 16, 16},
	{"rightLeg", Base, 0, 16, 16, 16},
	{"leftLeg", Base, 16, 48, 16, 16},
	{"leftArm", Base, 32, 48, 16, 16},
	{"headOverlay", Overlay, 32, 0, 32, 16},
	{"bodyOverlay", Overlay, 16, 32, 24, 16},
	{"rightArmOverlay", Overlay, 40, 32, 16, 16},
	{"rightLegOverlay", Overlay, 0, 32, 16, 16},
	{"leftLegOverlay", Overlay, 0, 48, 16, 16},
	{"leftArmOverlay", Overlay, 48, 48, 16, 16},
}

// Regions returns the part outlines drawn over the flat view.
func Regions(scale int) []Region {
	out := make([]Region, len(regionTable))
	for i, r := range regionTable {
		out[i] = Region{
			Name:  r.name,
			Layer: r.layer,
			Rect:  image.Rect(r.x*scale, r.y*scale, (r.x+r.w)*scale, (r.y+r.h)*scale),
		}
	}
	return out
}
