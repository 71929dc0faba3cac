package surface

import (
	"image"
	"math"
)

const (
	DefaultZoom = 6
	MinZoom     = 1
	MaxZoom     = 16
)

// Flat paints on the unwrapped texture. The canvas is centred in a w×h
// viewport, scaled by an integer zoom and shifted by the pan offset.
type Flat struct {
	target  Target
	w, h    int
	zoom    int
	panX    float64
	panY    float64
	gesture Gesture
	stroke  stroke

	lastX, lastY float64
}

// NewFlat creates a w×h flat view at the default zoom.
func NewFlat(t Target, w, h int) *Flat {
	return &Flat{
		target: t,
		w:      w,
		h:      h,
		zoom:   DefaultZoom,
		stroke: stroke{target: t},
	}
}

func (f *Flat) Zoom() int               { return f.zoom }
func (f *Flat) Pan() (float64, float64) { return f.panX, f.panY }
func (f *Flat) Gesture() Gesture        { return f.gesture }

// Resize changes the viewport size. Non-positive sizes are ignored.
func (f *Flat) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	f.w, f.h = w, h
}

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (f *Flat) SetZoom(z int) {
	f.zoom = min(max(z, MinZoom), MaxZoom)
}

// ZoomIn and ZoomOut step the zoom by one.
func (f *Flat) ZoomIn()  { f.SetZoom(f.zoom + 1) }
func (f *Flat) ZoomOut() { f.SetZoom(f.zoom - 1) }

// origin is the screen position of texture pixel (0, 0).
func (f *Flat) origin() (float64, float64) {
	side := float64(f.target.Buffer().Size() * f.zoom)
	return (float64(f.w)-side)/2 + f.panX, (float64(f.h)-side)/2 + f.panY
}

// PixelAt maps a screen point to a texture pixel. ok is false off-canvas.
func (f *Flat) PixelAt(x, y float64) (image.Point, bool) {
	ox, oy := f.origin()
	z := float64(f.zoom)
	p := image.Pt(int(math.Floor((x-ox)/z)), int(math.Floor((y-oy)/z)))
	return p, p.In(f.target.Buffer().Bounds())
}

// ScreenPoint returns the screen position of the centre of texture pixel p.
func (f *Flat) ScreenPoint(p image.Point) (float64, float64) {
	ox, oy := f.origin()
	z := float64(f.zoom)
	return ox + (float64(p.X)+0.5)*z, oy + (float64(p.Y)+0.5)*z
}

// PointerDown starts a gesture. Middle and secondary buttons pan; the
// primary button applies the tool. Presses off the canvas do nothing.
func (f *Flat) PointerDown(x, y float64, b Button) error {
	if f.gesture != Idle {
		return nil
	}
	if b == Middle || b == Secondary {
		f.gesture = Panning
		f.lastX, f.lastY = x, y
		return nil
	}

	p, ok := f.PixelAt(x, y)
	if !ok {
		return nil
	}
	f.gesture = Painting
	f.target.BeginStroke()
	return f.stroke.down(p, nil)
}

// PointerMove pans or extends the stroke. Off-canvas samples are skipped.
func (f *Flat) PointerMove(x, y float64) error {
	switch f.gesture {
	case Panning:
		f.panX += x - f.lastX
		f.panY += y - f.lastY
		f.lastX, f.lastY = x, y
	case Painting:
		p, ok := f.PixelAt(x, y)
		if !ok {
			return nil
		}
		return f.stroke.move(p, true)
	}
	return nil
}

// PointerUp ends the gesture, committing any paint.
func (f *Flat) PointerUp() error {
	g := f.gesture
	f.gesture = Idle
	if g == Painting {
		return f.stroke.end()
	}
	return nil
}

// PointerLeave ends the gesture like PointerUp.
func (f *Flat) PointerLeave() error {
	return f.PointerUp()
}

// Wheel steps the zoom: scrolling down zooms out.
func (f *Flat) Wheel(deltaY float64) {
	switch {
	case deltaY > 0:
		f.ZoomOut()
	case deltaY < 0:
		f.ZoomIn()
	}
}

// DoubleClick resets zoom and pan.
func (f *Flat) DoubleClick() {
	f.zoom = DefaultZoom
	f.panX, f.panY = 0, 0
}
