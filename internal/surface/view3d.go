package surface

import (
	"image"

	"bedrock-skin-editor/internal/camera"
	"bedrock-skin-editor/internal/mathutil"
	"bedrock-skin-editor/internal/model"
	"bedrock-skin-editor/internal/uvmap"
)

// View3D paints on the humanoid through an orbit camera. A gesture that
// starts off the model orbits; one that starts on it paints, even if the
// pointer later leaves the model.
//
// Consecutive brush samples are joined with a line only when both hit the
// same part face. A sample on another face is painted on its own, so a
// drag across a seam never draws through unrelated texture regions.
type View3D struct {
	target  Target
	cam     *camera.Orbit
	w, h    int
	gesture Gesture
	stroke  stroke

	lastX, lastY float64
	lastFace     image.Rectangle
}

// NewView3D creates a w×h view with the default camera.
func NewView3D(t Target, w, h int) *View3D {
	return &View3D{
		target: t,
		cam:    camera.NewDefault(),
		w:      w,
		h:      h,
		stroke: stroke{target: t},
	}
}

func (v *View3D) Camera() *camera.Orbit { return v.cam }
func (v *View3D) Gesture() Gesture      { return v.gesture }
func (v *View3D) Size() (int, int)      { return v.w, v.h }

// Resize changes the viewport size. Non-positive sizes are ignored.
func (v *View3D) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	v.w, v.h = w, h
}

// Mesh returns the currently visible humanoid.
func (v *View3D) Mesh() *model.Mesh {
	t := v.target
	return model.Build(t.Model(), t.Buffer().Size(), t.LayerVisible(uvmap.Base), t.LayerVisible(uvmap.Overlay))
}

// Pick casts a ray through screen point (x, y).
func (v *View3D) Pick(x, y float64) (model.Hit, bool) {
	return v.Mesh().Raycast(v.cam.Ray(x, y, v.w, v.h))
}

// Hover reports whether the pointer is over a visible part.
func (v *View3D) Hover(x, y float64) bool {
	_, ok := v.Pick(x, y)
	return ok
}

// PointerDown starts a gesture.
func (v *View3D) PointerDown(x, y float64, b Button) error {
	if v.gesture != Idle {
		return nil
	}
	v.lastX, v.lastY = x, y

	hit, ok := v.Pick(x, y)
	if !ok || b != Primary {
		v.gesture = Orbiting
		return nil
	}

	v.gesture = Painting
	v.target.BeginStroke()
	res := v.target.Buffer().Size()
	face := hit.FaceRect()
	v.lastFace = face
	return v.stroke.down(hit.Pixel(res), &face)
}

// PointerMove continues the gesture. Brush samples on the same face are
// joined with a line; a sample on another face starts a new segment.
func (v *View3D) PointerMove(x, y float64) error {
	switch v.gesture {
	case Orbiting:
		v.cam.RotatePixels(x-v.lastX, y-v.lastY, v.h)
		v.lastX, v.lastY = x, y
	case Painting:
		hit, ok := v.Pick(x, y)
		if !ok {
			return nil
		}
		face := hit.FaceRect()
		connect := face == v.lastFace
		v.lastFace = face
		return v.stroke.move(hit.Pixel(v.target.Buffer().Size()), connect)
	}
	return nil
}

// PointerUp ends the gesture, committing any paint.
func (v *View3D) PointerUp() error {
	g := v.gesture
	v.gesture = Idle
	if g == Painting {
		return v.stroke.end()
	}
	return nil
}

// PointerLeave ends the gesture like PointerUp; partial strokes are kept.
func (v *View3D) PointerLeave() error {
	return v.PointerUp()
}

// Wheel zooms the camera. Positive deltaY moves away.
func (v *View3D) Wheel(deltaY float64) {
	switch {
	case deltaY > 0:
		v.cam.Zoom(-1)
	case deltaY < 0:
		v.cam.Zoom(1)
	}
}

// DoubleClick returns the camera to its start position.
func (v *View3D) DoubleClick() {
	v.cam.Reset()
}

// ScreenPoint projects a world point into the viewport.
func (v *View3D) ScreenPoint(p mathutil.Vec3) (x, y float64, ok bool) {
	return v.cam.Project(p, v.w, v.h)
}
