// Package session holds the state of one skin editing session: the live
// texture, its undo history, the active tool and colour, and the two input
// surfaces that paint into it.
package session

import (
	"errors"
	"fmt"
	"image/color"

	"bedrock-skin-editor/internal/history"
	"bedrock-skin-editor/internal/logging"
	"bedrock-skin-editor/internal/paint"
	"bedrock-skin-editor/internal/skinpack"
	"bedrock-skin-editor/internal/surface"
	"bedrock-skin-editor/internal/templates"
	"bedrock-skin-editor/internal/texture"
	"bedrock-skin-editor/internal/uvmap"
)

var ErrClosed = errors.New("session: closed")

// Mode selects the surface that receives pointer input.
type Mode string

const (
	Mode3D   Mode = "3d"
	ModeFlat Mode = "flat"
)

// ParseMode accepts "3d" and "flat"; empty means 3d.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Mode3D:
		return Mode3D, nil
	case ModeFlat:
		return ModeFlat, nil
	}
	return "", fmt.Errorf("session: unknown mode %q", s)
}

// Default viewport size for both surfaces.
const (
	DefaultViewWidth  = 640
	DefaultViewHeight = 480
)

// Options configures New. The zero value starts a 64x64 Steve skin.
type Options struct {
	// Texture is an initial PNG. When empty the starter template for
	// Model is used.
	Texture []byte
	Model   uvmap.Model
	Size    int

	HistoryLimit int

	ViewWidth  int
	ViewHeight int
}

// Listener is called with the encoded texture after every commit, undo,
// redo and load.
type Listener func(png []byte)

type listener struct {
	id int
	fn Listener
}

// Session is the editor state. It is not safe for concurrent use; pointer
// events must be delivered in order from one goroutine.
type Session struct {
	buf  *texture.Buffer
	hist *history.Stack

	tool        paint.Tool
	color       color.NRGBA
	model       uvmap.Model
	mode        Mode
	activeLayer uvmap.Layer
	grid        bool
	visible     map[uvmap.Layer]bool

	view3d *surface.View3D
	flat   *surface.Flat

	listeners []listener
	nextID    int
	restoring bool
	closed    bool
}

// New starts a session. The initial texture is the first history entry.
func New(opts Options) (*Session, error) {
	if opts.Model == "" {
		opts.Model = uvmap.Normal
	}
	if opts.Size == 0 {
		opts.Size = texture.Size64
	}
	if opts.ViewWidth <= 0 || opts.ViewHeight <= 0 {
		opts.ViewWidth, opts.ViewHeight = DefaultViewWidth, DefaultViewHeight
	}

	var (
		buf *texture.Buffer
		err error
	)
	if len(opts.Texture) > 0 {
		buf, err = texture.Decode(opts.Texture)
	} else {
		buf, err = templates.ForModel(opts.Model, opts.Size)
	}
	if err != nil {
		return nil, fmt.Errorf("session: initial texture: %w", err)
	}
	snap, err := buf.Encode()
	if err != nil {
		return nil, fmt.Errorf("session: initial texture: %w", err)
	}
	buf.ClearDirty()

	s := &Session{
		buf:     buf,
		hist:    history.New(snap, opts.HistoryLimit),
		tool:    paint.Brush,
		color:   color.NRGBA{A: 255},
		model:   opts.Model,
		mode:    Mode3D,
		grid:    true,
		visible: map[uvmap.Layer]bool{uvmap.Base: true, uvmap.Overlay: true},
	}
	s.view3d = surface.NewView3D(s, opts.ViewWidth, opts.ViewHeight)
	s.flat = surface.NewFlat(s, opts.ViewWidth, opts.ViewHeight)
	logging.Logger().Debug("session started", "size", buf.Size(), "model", s.model)
	return s, nil
}

// Close ends the session. Later edits return ErrClosed.
func (s *Session) Close() {
	s.closed = true
	s.listeners = nil
}

func (s *Session) Buffer() *texture.Buffer  { return s.buf }
func (s *Session) Tool() paint.Tool         { return s.tool }
func (s *Session) Color() color.NRGBA       { return s.color }
func (s *Session) Model() uvmap.Model       { return s.model }
func (s *Session) Mode() Mode               { return s.mode }
func (s *Session) ActiveLayer() uvmap.Layer { return s.activeLayer }
func (s *Session) Grid() bool               { return s.grid }
func (s *Session) Size() int                { return s.buf.Size() }

// History exposes the undo stack for inspection.
func (s *Session) History() *history.Stack { return s.hist }

func (s *Session) View3D() *surface.View3D { return s.view3d }
func (s *Session) Flat() *surface.Flat     { return s.flat }

// LayerVisible reports whether layer l is drawn and pickable in 3D.
func (s *Session) LayerVisible(l uvmap.Layer) bool { return s.visible[l] }

// ColorHex returns the active colour as #rrggbb.
func (s *Session) ColorHex() string { return paint.Hex(s.color) }

// SetTool selects the active tool.
func (s *Session) SetTool(t paint.Tool) { s.tool = t }

// SetColor parses and selects a #rrggbb colour.
func (s *Session) SetColor(hex string) error {
	c, err := paint.ParseHex(hex)
	if err != nil {
		return err
	}
	s.color = c
	return nil
}

// PickedColor makes an eyedropper sample the active colour.
func (s *Session) PickedColor(c color.NRGBA) {
	s.color = c
	logging.Logger().Debug("colour picked", "color", paint.Hex(c))
}

// SetModel switches the arm width used by the 3D view. The texture is
// left as it is.
func (s *Session) SetModel(m uvmap.Model) { s.model = m }

// SetMode routes pointer input to another surface. A gesture in progress
// on the old surface ends as if the pointer had left it.
func (s *Session) SetMode(m Mode) error {
	if m == s.mode {
		return nil
	}
	err := s.guard(s.surface().PointerLeave())
	s.mode = m
	return err
}

func (s *Session) SetActiveLayer(l uvmap.Layer) { s.activeLayer = l }
func (s *Session) SetGrid(on bool)              { s.grid = on }

// SetLayerVisible shows or hides a layer in the 3D view.
func (s *Session) SetLayerVisible(l uvmap.Layer, on bool) { s.visible[l] = on }

// Texture returns the live texture as PNG bytes.
func (s *Session) Texture() ([]byte, error) { return s.buf.Encode() }

// DataURL returns the live texture as a base64 PNG data URL.
func (s *Session) DataURL() (string, error) { return s.buf.DataURL() }

// OnTextureUpdate registers fn and returns a function that removes it.
// Listeners run in registration order.
func (s *Session) OnTextureUpdate(fn Listener) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) notify(snap []byte) {
	for _, l := range s.listeners {
		l.fn(snap)
	}
}

// BeginStroke marks the start of a painting gesture.
func (s *Session) BeginStroke() { s.hist.BeginStroke() }

// EndStroke ends a gesture that changed nothing.
func (s *Session) EndStroke() { s.hist.EndStroke() }

// Commit records the live texture as a new history entry and notifies
// listeners. Writes made while restoring a snapshot are not recorded.
func (s *Session) Commit() error {
	if s.closed {
		return ErrClosed
	}
	if s.restoring {
		return nil
	}
	snap, err := s.buf.Encode()
	if err != nil {
		return fmt.Errorf("session: commit: %w", err)
	}
	s.hist.Commit(snap)
	s.buf.ClearDirty()
	logging.Logger().Debug("edit committed", "entry", s.hist.Index(), "entries", s.hist.Len())
	s.notify(snap)
	return nil
}

// replace swaps in buf and commits it as one edit.
func (s *Session) replace(buf *texture.Buffer) error {
	prev := s.buf
	s.buf = buf
	if err := s.Commit(); err != nil {
		s.buf = prev
		return err
	}
	return nil
}

// ChangeSize resamples the texture to 64 or 128 with nearest-neighbour
// scaling.
func (s *Session) ChangeSize(size int) error {
	if s.closed {
		return ErrClosed
	}
	if size == s.buf.Size() {
		return nil
	}
	buf, err := s.buf.Resample(size)
	if err != nil {
		return fmt.Errorf("session: change size: %w", err)
	}
	return s.replace(buf)
}

// ResetToTemplate replaces the texture with the starter skin for model at
// the current size and selects that model.
func (s *Session) ResetToTemplate(model uvmap.Model) error {
	if s.closed {
		return ErrClosed
	}
	if model == "" {
		model = s.model
	}
	buf, err := templates.ForModel(model, s.buf.Size())
	if err != nil {
		return fmt.Errorf("session: reset: %w", err)
	}
	if err := s.replace(buf); err != nil {
		return err
	}
	s.model = model
	return nil
}

// Clear makes every pixel transparent.
func (s *Session) Clear() error {
	if s.closed {
		return ErrClosed
	}
	buf := s.buf.Clone()
	buf.Clear()
	return s.replace(buf)
}

// Load replaces the texture with a decoded PNG. An empty model is guessed
// from the texture. The session size follows the loaded image.
func (s *Session) Load(data []byte, model uvmap.Model) error {
	if s.closed {
		return ErrClosed
	}
	buf, err := texture.Decode(data)
	if err != nil {
		return fmt.Errorf("session: load: %w", err)
	}
	if model == "" {
		model = templates.DetectModel(buf)
	}
	if err := s.replace(buf); err != nil {
		return err
	}
	s.model = model
	return nil
}

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo.
func (s *Session) Undo() (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	snap, ok := s.hist.Undo()
	if !ok {
		return false, nil
	}
	return true, s.restore(snap)
}

// Redo reapplies the next snapshot.
func (s *Session) Redo() (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	snap, ok := s.hist.Redo()
	if !ok {
		return false, nil
	}
	return true, s.restore(snap)
}

func (s *Session) CanUndo() bool { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// restore replaces the live buffer with a history snapshot without
// recording it. The size follows the snapshot.
func (s *Session) restore(snap []byte) error {
	s.restoring = true
	defer func() { s.restoring = false }()

	buf, err := texture.Decode(snap)
	if err != nil {
		return fmt.Errorf("session: restore: %w", err)
	}
	s.buf = buf
	logging.Logger().Debug("snapshot restored", "entry", s.hist.Index(), "size", buf.Size())
	s.notify(snap)
	return nil
}

// rollback returns the buffer to the last committed snapshot.
func (s *Session) rollback() {
	if buf, err := texture.Decode(s.hist.Current()); err == nil {
		s.buf = buf
	}
	s.hist.EndStroke()
}

// Skin packages the live texture as a pack entry.
func (s *Session) Skin(id, name string) (skinpack.Skin, error) {
	tex, err := s.buf.Encode()
	if err != nil {
		return skinpack.Skin{}, fmt.Errorf("session: export skin: %w", err)
	}
	return skinpack.Skin{ID: id, Name: skinpack.CleanName(name), Texture: tex, Model: s.model}, nil
}
