// Package surface turns pointer input on the 3D model view and the flat
// texture view into paint operations on the session's texture.
//
// Both surfaces share one stroke dispatcher, so the same pixel sequence
// produces the same buffer whichever view it came from. A gesture's kind is
// decided at pointer-down and holds until pointer-up or pointer-leave.
package surface

import (
	"image"
	"image/color"

	"bedrock-skin-editor/internal/paint"
	"bedrock-skin-editor/internal/texture"
	"bedrock-skin-editor/internal/uvmap"
)

// Button identifies the pointer button that started a gesture.
type Button int

const (
	Primary Button = iota
	Middle
	Secondary
)

// Gesture is what the current pointer drag does.
type Gesture int

const (
	Idle Gesture = iota
	Painting
	Orbiting
	Panning
)

func (g Gesture) String() string {
	switch g {
	case Painting:
		return "painting"
	case Orbiting:
		return "orbiting"
	case Panning:
		return "panning"
	}
	return "idle"
}

// Target is the editing state a surface paints into.
type Target interface {
	Buffer() *texture.Buffer
	Tool() paint.Tool
	Color() color.NRGBA
	Model() uvmap.Model
	LayerVisible(uvmap.Layer) bool

	// PickedColor receives the eyedropper result.
	PickedColor(color.NRGBA)

	// BeginStroke is called when a painting gesture starts. Exactly one of
	// Commit (buffer changed) or EndStroke (unchanged) follows.
	BeginStroke()
	EndStroke()
	Commit() error
}

// stroke applies the active tool to pixel samples of one gesture.
type stroke struct {
	target  Target
	last    image.Point
	drawing bool // brush or eraser with a previous sample
}

// down handles the first sample. bounds limits bucket fills; nil means the
// whole texture. Bucket and eyedropper act here only; move ignores them.
func (s *stroke) down(p image.Point, bounds *image.Rectangle) error {
	s.drawing = false
	t := s.target
	buf := t.Buffer()
	tool := t.Tool()

	switch tool {
	case paint.Eyedropper:
		c, ok, err := paint.PickColor(buf, p.X, p.Y)
		if err != nil {
			return err
		}
		if ok {
			t.PickedColor(c)
		}
		return nil
	case paint.Bucket:
		_, err := paint.FloodFill(buf, p.X, p.Y, paint.Ink(tool, t.Color()), bounds)
		return err
	}

	if err := paint.PaintPixel(buf, p.X, p.Y, paint.Ink(tool, t.Color())); err != nil {
		return err
	}
	s.last = p
	s.drawing = true
	return nil
}

// move extends a brush or eraser stroke to p. With connect false the
// sample is painted on its own.
func (s *stroke) move(p image.Point, connect bool) error {
	if !s.drawing {
		return nil
	}
	ink := paint.Ink(s.target.Tool(), s.target.Color())
	var err error
	if connect {
		err = paint.PaintLine(s.target.Buffer(), s.last.X, s.last.Y, p.X, p.Y, ink)
	} else {
		err = paint.PaintPixel(s.target.Buffer(), p.X, p.Y, ink)
	}
	if err != nil {
		return err
	}
	s.last = p
	return nil
}

// end finishes the gesture and commits when the buffer changed.
func (s *stroke) end() error {
	s.drawing = false
	if s.target.Buffer().Dirty() {
		return s.target.Commit()
	}
	s.target.EndStroke()
	return nil
}
