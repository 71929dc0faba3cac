package session

import (
	"bedrock-skin-editor/internal/logging"
	"bedrock-skin-editor/internal/surface"
)

// pointerSurface is the input half shared by the 3D and flat views.
type pointerSurface interface {
	PointerDown(x, y float64, b surface.Button) error
	PointerMove(x, y float64) error
	PointerUp() error
	PointerLeave() error
	Wheel(deltaY float64)
	DoubleClick()
	Resize(w, h int)
	Gesture() surface.Gesture
}

func (s *Session) surface() pointerSurface {
	if s.mode == ModeFlat {
		return s.flat
	}
	return s.view3d
}

// guard undoes any partial paint when a surface operation fails, so the
// buffer is always at its last committed state after an error.
func (s *Session) guard(err error) error {
	if err == nil {
		return nil
	}
	logging.Logger().Warn("edit rolled back", "err", err)
	s.rollback()
	if g := s.surface().Gesture(); g != surface.Idle {
		_ = s.surface().PointerLeave()
	}
	return err
}

// PointerDown starts a gesture on the active surface.
func (s *Session) PointerDown(x, y float64, b surface.Button) error {
	if s.closed {
		return ErrClosed
	}
	return s.guard(s.surface().PointerDown(x, y, b))
}

// PointerMove continues the gesture on the active surface.
func (s *Session) PointerMove(x, y float64) error {
	if s.closed {
		return ErrClosed
	}
	return s.guard(s.surface().PointerMove(x, y))
}

// PointerUp ends the gesture and commits any paint.
func (s *Session) PointerUp() error {
	if s.closed {
		return ErrClosed
	}
	return s.guard(s.surface().PointerUp())
}

// PointerLeave ends the gesture like PointerUp.
func (s *Session) PointerLeave() error {
	if s.closed {
		return ErrClosed
	}
	return s.guard(s.surface().PointerLeave())
}

// Wheel zooms the active surface.
func (s *Session) Wheel(deltaY float64) {
	if !s.closed {
		s.surface().Wheel(deltaY)
	}
}

// DoubleClick resets the active surface's camera or zoom.
func (s *Session) DoubleClick() {
	if !s.closed {
		s.surface().DoubleClick()
	}
}

// SetViewport resizes both surfaces.
func (s *Session) SetViewport(w, h int) {
	s.view3d.Resize(w, h)
	s.flat.Resize(w, h)
}
