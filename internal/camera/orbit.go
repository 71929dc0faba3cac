// Package camera provides the orbit camera used by the 3D paint surface:
// spherical coordinates around a target, screen rays for picking and
// projection back to the screen.
package camera

import (
	"math"

	"bedrock-skin-editor/internal/mathutil"
)

// Defaults match the editor's preview scene.
var DefaultPosition = mathutil.Vec3{6, 2, 10}

const (
	DefaultFOV       = 30.0 // vertical, degrees
	DefaultMinRadius = 3.0
	DefaultMaxRadius = 20.0

	// maxElevation keeps the camera off the poles so the up vector stays
	// well defined.
	maxElevation = math.Pi/2 - 0.01

	zoomStep = 0.95
)

// Orbit is a camera circling a target point. Position is derived from
// radius, azimuth (around +Y, 0 looks down -Z from +Z) and elevation.
type Orbit struct {
	target    mathutil.Vec3
	radius    float64
	azimuth   float64
	elevation float64

	minRadius float64
	maxRadius float64
	fov       float64

	home [3]float64
}

// NewOrbit places a camera at position looking at target.
func NewOrbit(position, target mathutil.Vec3) *Orbit {
	o := &Orbit{
		target:    target,
		minRadius: DefaultMinRadius,
		maxRadius: DefaultMaxRadius,
		fov:       DefaultFOV,
	}
	o.LookFrom(position)
	o.home = [3]float64{o.radius, o.azimuth, o.elevation}
	return o
}

// NewDefault returns the editor's starting camera.
func NewDefault() *Orbit {
	return NewOrbit(DefaultPosition, mathutil.Vec3{})
}

// LookFrom moves the camera to position, keeping the target.
func (o *Orbit) LookFrom(position mathutil.Vec3) {
	d := position.Sub(o.target)
	r := d.Len()
	if r == 0 {
		d, r = mathutil.Vec3{0, 0, 1}, 1
	}
	o.radius = mathutil.Clamp(r, o.minRadius, o.maxRadius)
	o.azimuth = math.Atan2(d[0], d[2])
	o.elevation = mathutil.Clamp(math.Asin(d[1]/r), -maxElevation, maxElevation)
}

// Reset returns to the position given at construction.
func (o *Orbit) Reset() {
	o.radius, o.azimuth, o.elevation = o.home[0], o.home[1], o.home[2]
}

// Rotate orbits by the given angles in radians.
func (o *Orbit) Rotate(dAzimuth, dElevation float64) {
	o.azimuth += dAzimuth
	o.elevation = mathutil.Clamp(o.elevation+dElevation, -maxElevation, maxElevation)
}

// RotatePixels orbits by a pointer drag, one viewport height = one turn.
func (o *Orbit) RotatePixels(dx, dy float64, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	h := float64(viewportHeight)
	o.Rotate(-2*math.Pi*dx/h, 2*math.Pi*dy/h)
}

// Zoom moves towards the target by steps wheel notches; negative steps
// move away. The radius stays within the distance limits.
func (o *Orbit) Zoom(steps float64) {
	o.radius = mathutil.Clamp(o.radius*math.Pow(zoomStep, steps), o.minRadius, o.maxRadius)
}

func (o *Orbit) Radius() float64       { return o.radius }
func (o *Orbit) Azimuth() float64      { return o.azimuth }
func (o *Orbit) Elevation() float64    { return o.elevation }
func (o *Orbit) Target() mathutil.Vec3 { return o.target }
func (o *Orbit) FOV() float64          { return o.fov }

// Position returns the camera location in world space.
func (o *Orbit) Position() mathutil.Vec3 {
	ce, se := math.Cos(o.elevation), math.Sin(o.elevation)
	ca, sa := math.Cos(o.azimuth), math.Sin(o.azimuth)
	return o.target.Add(mathutil.Vec3{
		o.radius * ce * sa,
		o.radius * se,
		o.radius * ce * ca,
	})
}

// View returns the world-to-camera rotation. Rows are the camera's right,
// up and backward axes; the camera looks along -Z.
func (o *Orbit) View() mathutil.Mat3 {
	back := o.Position().Sub(o.target).Normalize()
	right := mathutil.Vec3{0, 1, 0}.Cross(back).Normalize()
	up := back.Cross(right)
	return mathutil.Mat3{
		right[0], right[1], right[2],
		up[0], up[1], up[2],
		back[0], back[1], back[2],
	}
}

func (o *Orbit) tanHalfFOV() float64 {
	return math.Tan(mathutil.Deg2Rad(o.fov) / 2)
}

// Ray returns the world-space ray through screen point (sx, sy) of a w×h
// viewport with the origin at the top-left.
func (o *Orbit) Ray(sx, sy float64, w, h int) mathutil.Ray {
	aspect := float64(w) / float64(h)
	th := o.tanHalfFOV()
	nx := 2*sx/float64(w) - 1
	ny := 1 - 2*sy/float64(h)
	dir := mathutil.Vec3{nx * th * aspect, ny * th, -1}
	return mathutil.Ray{
		Origin: o.Position(),
		Dir:    o.View().Transpose().MulVec3(dir).Normalize(),
	}
}

// Project maps a world point to screen coordinates. ok is false for points
// behind the camera.
func (o *Orbit) Project(p mathutil.Vec3, w, h int) (sx, sy float64, ok bool) {
	c := o.View().MulVec3(p.Sub(o.Position()))
	if c[2] > -1e-6 {
		return 0, 0, false
	}
	aspect := float64(w) / float64(h)
	th := o.tanHalfFOV()
	nx := c[0] / -c[2] / (th * aspect)
	ny := c[1] / -c[2] / th
	return (nx + 1) * float64(w) / 2, (1 - ny) * float64(h) / 2, true
}
