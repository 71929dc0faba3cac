package surface

import (
	"image"
	"image/color"
	"testing"

	"bedrock-skin-editor/internal/mathutil"
	"bedrock-skin-editor/internal/paint"
	"bedrock-skin-editor/internal/texture"
	"bedrock-skin-editor/internal/uvmap"
)

var red = color.NRGBA{255, 0, 0, 255}

type fakeTarget struct {
	buf         *texture.Buffer
	tool        paint.Tool
	col         color.NRGBA
	model       uvmap.Model
	hideOverlay bool

	picked  []color.NRGBA
	begins  int
	ends    int
	commits int
}

func newTarget(t *testing.T, tool paint.Tool) *fakeTarget {
	t.Helper()
	buf, err := texture.New(64)
	if err != nil {
		t.Fatal(err)
	}
	return &fakeTarget{buf: buf, tool: tool, col: red, model: uvmap.Normal, hideOverlay: true}
}

func (f *fakeTarget) Buffer() *texture.Buffer   { return f.buf }
func (f *fakeTarget) Tool() paint.Tool          { return f.tool }
func (f *fakeTarget) Color() color.NRGBA        { return f.col }
func (f *fakeTarget) Model() uvmap.Model        { return f.model }
func (f *fakeTarget) PickedColor(c color.NRGBA) { f.picked = append(f.picked, c) }
func (f *fakeTarget) BeginStroke()              { f.begins++ }
func (f *fakeTarget) EndStroke()                { f.ends++ }

func (f *fakeTarget) LayerVisible(l uvmap.Layer) bool {
	return !(l == uvmap.Overlay && f.hideOverlay)
}

func (f *fakeTarget) Commit() error {
	f.commits++
	f.buf.ClearDirty()
	return nil
}

func pixel(t *testing.T, b *texture.Buffer, x, y int) color.NRGBA {
	t.Helper()
	c, err := b.Pixel(x, y)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestFlatPixelMapping(t *testing.T) {
	f := NewFlat(newTarget(t, paint.Brush), 640, 480)
	// 64*6 = 384 px canvas centred in 640x480 → origin (128, 48).
	tests := []struct {
		x, y float64
		want image.Point
		ok   bool
	}{
		{128, 48, image.Pt(0, 0), true},
		{133.9, 53.9, image.Pt(0, 0), true},
		{134, 54, image.Pt(1, 1), true},
		{511.9, 431.9, image.Pt(63, 63), true},
		{127, 48, image.Point{}, false},
		{512, 200, image.Point{}, false},
	}
	for _, tt := range tests {
		got, ok := f.PixelAt(tt.x, tt.y)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("PixelAt(%v,%v) = %v,%v want %v,%v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}
	sx, sy := f.ScreenPoint(image.Pt(5, 7))
	if sx != 161 || sy != 93 {
		t.Errorf("ScreenPoint = (%v,%v), want (161,93)", sx, sy)
	}
}

func TestFlatZoomAndReset(t *testing.T) {
	f := NewFlat(newTarget(t, paint.Brush), 640, 480)
	if f.Zoom() != DefaultZoom {
		t.Fatalf("initial zoom = %d", f.Zoom())
	}
	for i := 0; i < 20; i++ {
		f.Wheel(1)
	}
	if f.Zoom() != MinZoom {
		t.Errorf("zoom after scrolling down = %d, want %d", f.Zoom(), MinZoom)
	}
	for i := 0; i < 30; i++ {
		f.Wheel(-1)
	}
	if f.Zoom() != MaxZoom {
		t.Errorf("zoom after scrolling up = %d, want %d", f.Zoom(), MaxZoom)
	}

	_ = f.PointerDown(100, 100, Middle)
	_ = f.PointerMove(130, 90)
	_ = f.PointerUp()
	if x, y := f.Pan(); x != 30 || y != -10 {
		t.Errorf("pan = (%v,%v)", x, y)
	}

	f.DoubleClick()
	x, y := f.Pan()
	if f.Zoom() != DefaultZoom || x != 0 || y != 0 {
		t.Errorf("after reset zoom=%d pan=(%v,%v)", f.Zoom(), x, y)
	}
}

func TestFlatPanDoesNotPaint(t *testing.T) {
	tg := newTarget(t, paint.Brush)
	f := NewFlat(tg, 640, 480)
	sx, sy := f.ScreenPoint(image.Pt(10, 10))
	_ = f.PointerDown(sx, sy, Secondary)
	if f.Gesture() != Panning {
		t.Fatalf("gesture = %v, want panning", f.Gesture())
	}
	_ = f.PointerMove(sx+12, sy)
	_ = f.PointerUp()
	if tg.buf.Dirty() || tg.begins != 0 || tg.commits != 0 {
		t.Errorf("pan painted: dirty=%v begins=%d commits=%d", tg.buf.Dirty(), tg.begins, tg.commits)
	}
}

func TestFlatBrushDragCommitsOnce(t *testing.T) {
	tg := newTarget(t, paint.Brush)
	f := NewFlat(tg, 640, 480)

	sx, sy := f.ScreenPoint(image.Pt(0, 0))
	if err := f.PointerDown(sx, sy, Primary); err != nil {
		t.Fatal(err)
	}
	ex, ey := f.ScreenPoint(image.Pt(3, 3))
	if err := f.PointerMove(ex, ey); err != nil {
		t.Fatal(err)
	}
	if tg.commits != 0 {
		t.Fatal("committed before pointer-up")
	}
	if err := f.PointerUp(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if c := pixel(t, tg.buf, i, i); c != red {
			t.Errorf("(%d,%d) = %v", i, i, c)
		}
	}
	if tg.begins != 1 || tg.commits != 1 {
		t.Errorf("begins=%d commits=%d, want 1/1", tg.begins, tg.commits)
	}
}

func TestFlatLeaveCommitsPartialStroke(t *testing.T) {
	tg := newTarget(t, paint.Brush)
	f := NewFlat(tg, 640, 480)
	sx, sy := f.ScreenPoint(image.Pt(5, 5))
	_ = f.PointerDown(sx, sy, Primary)
	// Off-canvas samples are skipped; the next on-canvas one connects.
	_ = f.PointerMove(0, 0)
	ex, ey := f.ScreenPoint(image.Pt(8, 5))
	_ = f.PointerMove(ex, ey)
	_ = f.PointerLeave()

	for x := 5; x <= 8; x++ {
		if c := pixel(t, tg.buf, x, 5); c != red {
			t.Errorf("(%d,5) = %v", x, c)
		}
	}
	if tg.commits != 1 || f.Gesture() != Idle {
		t.Errorf("commits=%d gesture=%v", tg.commits, f.Gesture())
	}
}

func TestFlatEyedropper(t *testing.T) {
	tg := newTarget(t, paint.Eyedropper)
	_ = tg.buf.SetPixel(4, 4, color.NRGBA{1, 2, 3, 40})
	tg.buf.ClearDirty()
	f := NewFlat(tg, 640, 480)

	for _, p := range []image.Point{{4, 4}, {5, 5}} {
		sx, sy := f.ScreenPoint(p)
		_ = f.PointerDown(sx, sy, Primary)
		_ = f.PointerUp()
	}
	if len(tg.picked) != 1 || tg.picked[0] != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("picked = %v", tg.picked)
	}
	if tg.commits != 0 || tg.ends != 2 {
		t.Errorf("commits=%d ends=%d", tg.commits, tg.ends)
	}
}

func TestFlatBucketUnbounded(t *testing.T) {
	tg := newTarget(t, paint.Bucket)
	f := NewFlat(tg, 640, 480)
	sx, sy := f.ScreenPoint(image.Pt(12, 12))
	_ = f.PointerDown(sx, sy, Primary)
	_ = f.PointerUp()
	if c := pixel(t, tg.buf, 63, 63); c != red {
		t.Errorf("flat bucket should fill the whole connected area, (63,63) = %v", c)
	}
}

// headFront returns the screen position of a point on the head's front face.
func headFront(t *testing.T, v *View3D, x, y float64) (float64, float64) {
	t.Helper()
	sx, sy, ok := v.ScreenPoint(mathutil.Vec3{x, y, 0.5})
	if !ok {
		t.Fatal("head front not in view")
	}
	return sx, sy
}

func TestView3DMissOrbits(t *testing.T) {
	tg := newTarget(t, paint.Brush)
	v := NewView3D(tg, 800, 600)
	az := v.Camera().Azimuth()

	if err := v.PointerDown(2, 2, Primary); err != nil {
		t.Fatal(err)
	}
	if v.Gesture() != Orbiting {
		t.Fatalf("gesture = %v, want orbiting", v.Gesture())
	}
	// Sweep across the model: still orbiting, nothing painted.
	_ = v.PointerMove(400, 300)
	_ = v.PointerMove(420, 310)
	_ = v.PointerUp()

	if tg.buf.Dirty() || tg.begins != 0 || tg.commits != 0 {
		t.Errorf("orbit painted: dirty=%v begins=%d commits=%d", tg.buf.Dirty(), tg.begins, tg.commits)
	}
	if v.Camera().Azimuth() == az {
		t.Error("camera did not orbit")
	}
}

func TestView3DPaintsHead(t *testing.T) {
	tg := newTarget(t, paint.Brush)
	v := NewView3D(tg, 800, 600)
	sx, sy := headFront(t, v, 0.1, 1.6)

	if !v.Hover(sx, sy) {
		t.Fatal("pointer should hover the head")
	}
	if err := v.PointerDown(sx, sy, Primary); err != nil {
		t.Fatal(err)
	}
	if v.Gesture() != Painting {
		t.Fatalf("gesture = %v", v.Gesture())
	}
	if c := pixel(t, tg.buf, 12, 11); c != red {
		t.Errorf("(12,11) = %v, want red", c)
	}

	// Leaving the model keeps the paint gesture.
	_ = v.PointerMove(2, 2)
	if v.Gesture() != Painting {
		t.Errorf("gesture changed to %v after leaving the model", v.Gesture())
	}
	_ = v.PointerUp()
	if tg.commits != 1 {
		t.Errorf("commits = %d", tg.commits)
	}
}

func TestView3DBucketBoundedToFace(t *testing.T) {
	tg := newTarget(t, paint.Bucket)
	v := NewView3D(tg, 800, 600)
	sx, sy := headFront(t, v, 0, 1.5)
	_ = v.PointerDown(sx, sy, Primary)
	_ = v.PointerUp()

	face := image.Rect(8, 8, 16, 16)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := pixel(t, tg.buf, x, y)
			if in := image.Pt(x, y).In(face); in != (c == red) {
				t.Fatalf("(%d,%d) = %v, inside face = %v", x, y, c, in)
			}
		}
	}
}

func TestView3DHiddenLayerNotHit(t *testing.T) {
	tg := newTarget(t, paint.Brush)
	tg.hideOverlay = false
	v := NewView3D(tg, 800, 600)
	sx, sy := headFront(t, v, 0.1, 1.6)
	hit, ok := v.Pick(sx, sy)
	if !ok || hit.Part.Name != "headOverlay" {
		t.Fatalf("with overlay shown hit = %q", hit.Part.Name)
	}
	tg.hideOverlay = true
	hit, ok = v.Pick(sx, sy)
	if !ok || hit.Part.Name != "head" {
		t.Fatalf("with overlay hidden hit = %q", hit.Part.Name)
	}
}

func TestSurfacesProduceIdenticalBuffers(t *testing.T) {
	t3 := newTarget(t, paint.Brush)
	tf := newTarget(t, paint.Brush)
	v := NewView3D(t3, 800, 600)
	f := NewFlat(tf, 640, 480)

	points := [][2]float64{{-0.3, 1.8}, {0.2, 1.3}, {0.35, 1.9}}
	var pixels []image.Point
	for i, wp := range points {
		sx, sy := headFront(t, v, wp[0], wp[1])
		hit, ok := v.Pick(sx, sy)
		if !ok {
			t.Fatalf("point %d missed", i)
		}
		pixels = append(pixels, hit.Pixel(64))
		if i == 0 {
			_ = v.PointerDown(sx, sy, Primary)
		} else {
			_ = v.PointerMove(sx, sy)
		}
	}
	_ = v.PointerUp()

	for i, p := range pixels {
		sx, sy := f.ScreenPoint(p)
		if i == 0 {
			_ = f.PointerDown(sx, sy, Primary)
		} else {
			_ = f.PointerMove(sx, sy)
		}
	}
	_ = f.PointerUp()

	if !t3.buf.Equal(tf.buf) {
		t.Error("3D and flat strokes over the same pixels differ")
	}
	if t3.commits != 1 || tf.commits != 1 {
		t.Errorf("commits 3D=%d flat=%d", t3.commits, tf.commits)
	}
}

func TestView3DWheelZooms(t *testing.T) {
	v := NewView3D(newTarget(t, paint.Brush), 800, 600)
	r := v.Camera().Radius()
	v.Wheel(-100)
	if v.Camera().Radius() >= r {
		t.Error("scrolling up should move the camera closer")
	}
	v.DoubleClick()
	if v.Camera().Radius() != r {
		t.Error("double click should reset the camera")
	}
}

func TestRenderFlat(t *testing.T) {
	tg := newTarget(t, paint.Brush)
	_ = tg.buf.SetPixel(10, 20, red)
	img := RenderFlat(tg.buf, 4, false)
	if img.Bounds().Dx() != 256 {
		t.Fatalf("width = %d", img.Bounds().Dx())
	}
	if c := img.NRGBAAt(10*4+1, 20*4+1); c != red {
		t.Errorf("scaled pixel = %v", c)
	}

	grid := NewFlat(tg, 640, 480).Render(true)
	if grid.Bounds().Dx() != 64*DefaultZoom {
		t.Errorf("grid width = %d", grid.Bounds().Dx())
	}
	if c := grid.NRGBAAt(0, 0); c != paint.MustHex("#ef4444") {
		t.Errorf("head outline corner = %v", c)
	}
}

func TestResizeIgnoresNonPositive(t *testing.T) {
	tg := newTarget(t, paint.Brush)
	v := NewView3D(tg, 800, 600)
	f := NewFlat(tg, 800, 600)
	for _, sz := range [][2]int{{0, 0}, {0, 600}, {800, -1}} {
		v.Resize(sz[0], sz[1])
		f.Resize(sz[0], sz[1])
	}
	if w, h := v.Size(); w != 800 || h != 600 {
		t.Errorf("3d size = %dx%d", w, h)
	}
	// The flat canvas stays centred in the original viewport.
	if p, ok := f.PixelAt(400, 300); !ok || p != image.Pt(32, 32) {
		t.Errorf("flat centre = %v, %v", p, ok)
	}

	v.Resize(400, 300)
	if w, h := v.Size(); w != 400 || h != 300 {
		t.Errorf("3d size = %dx%d after resize", w, h)
	}
}

func TestView3DBrushDoesNotJoinAcrossFaces(t *testing.T) {
	tg := newTarget(t, paint.Brush)
	v := NewView3D(tg, 800, 600)
	fx, fy := headFront(t, v, 0.1, 1.6)
	// The default camera sits on the +X side, so the head's side face is visible.
	sx, sy, ok := v.ScreenPoint(mathutil.Vec3{0.5, 1.6, 0.1})
	if !ok {
		t.Fatal("head side not in view")
	}

	_ = v.PointerDown(fx, fy, Primary)
	_ = v.PointerMove(sx, sy)
	_ = v.PointerUp()

	if c := pixel(t, tg.buf, 12, 11); c != red {
		t.Errorf("front (12,11) = %v, want red", c)
	}
	if c := pixel(t, tg.buf, 4, 11); c != red {
		t.Errorf("side (4,11) = %v, want red", c)
	}
	for x := 5; x < 12; x++ {
		if c := pixel(t, tg.buf, x, 11); c.A != 0 {
			t.Errorf("(%d,11) = %v, samples on different faces were joined", x, c)
		}
	}
	if tg.commits != 1 {
		t.Errorf("commits = %d", tg.commits)
	}
}
