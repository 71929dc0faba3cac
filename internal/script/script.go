// Package script replays a YAML list of editor actions against a session.
// It drives the same pointer paths as interactive input, so a script
// exercises the surfaces exactly as a user would.
package script

import (
	"errors"
	"fmt"
	"image"
	"os"

	"bedrock-skin-editor/internal/logging"
	"bedrock-skin-editor/internal/paint"
	"bedrock-skin-editor/internal/session"
	"bedrock-skin-editor/internal/surface"
	"bedrock-skin-editor/internal/uvmap"

	"gopkg.in/yaml.v3"
)

// Script is a starting skin plus the steps to apply to it.
type Script struct {
	// Texture is a PNG path; empty starts from the model's template.
	Texture string `yaml:"texture"`
	Model   string `yaml:"model"`
	Size    int    `yaml:"size"`
	Steps   []Step `yaml:"steps"`
}

// Step is one action. Op selects which of the other fields are read.
//
//	tool     tool: brush|bucket|eraser|eyedropper
//	color    color: "#rrggbb"
//	mode     mode: 3d|flat
//	stroke   pixels: [[x,y], ...] texture pixels on the flat view,
//	         or screen: [[x,y], ...] viewport points on the active view
//	drag     screen: [[x,y], ...] with button: primary|middle|secondary
//	wheel    delta: n
//	layer    layer: base|overlay, visible: bool
//	model    model: normal|slim
//	resize   size: 64|128
//	reset    model: normal|slim (optional)
//	clear, undo, redo, home
type Step struct {
	Op      string       `yaml:"op"`
	Tool    string       `yaml:"tool,omitempty"`
	Color   string       `yaml:"color,omitempty"`
	Mode    string       `yaml:"mode,omitempty"`
	Pixels  [][2]int     `yaml:"pixels,omitempty"`
	Screen  [][2]float64 `yaml:"screen,omitempty"`
	Button  string       `yaml:"button,omitempty"`
	Delta   float64      `yaml:"delta,omitempty"`
	Layer   string       `yaml:"layer,omitempty"`
	Visible *bool        `yaml:"visible,omitempty"`
	Model   string       `yaml:"model,omitempty"`
	Size    int          `yaml:"size,omitempty"`
}

var ErrUnknownOp = errors.New("script: unknown op")

// Load reads a YAML script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script: parse: %w", err)
	}
	return &s, nil
}

// Options builds session options for the script's starting skin.
func (s *Script) Options() (session.Options, error) {
	var opts session.Options
	if s.Model != "" {
		m, err := uvmap.ParseModel(s.Model)
		if err != nil {
			return opts, fmt.Errorf("script: %w", err)
		}
		opts.Model = m
	}
	opts.Size = s.Size
	if s.Texture != "" {
		data, err := os.ReadFile(s.Texture)
		if err != nil {
			return opts, fmt.Errorf("script: read texture: %w", err)
		}
		opts.Texture = data
	}
	return opts, nil
}

// Run applies every step in order and stops at the first failure.
func (s *Script) Run(sess *session.Session) error {
	for i, st := range s.Steps {
		if err := Apply(sess, st); err != nil {
			return fmt.Errorf("script: step %d (%s): %w", i+1, st.Op, err)
		}
		logging.Logger().Debug("step applied", "step", i+1, "op", st.Op)
	}
	return nil
}

// Apply performs a single step.
func Apply(sess *session.Session, st Step) error {
	switch st.Op {
	case "tool":
		t, err := paint.ParseTool(st.Tool)
		if err != nil {
			return err
		}
		sess.SetTool(t)
	case "color":
		return sess.SetColor(st.Color)
	case "mode":
		m, err := session.ParseMode(st.Mode)
		if err != nil {
			return err
		}
		return sess.SetMode(m)
	case "stroke":
		pts, err := strokePoints(sess, st)
		if err != nil {
			return err
		}
		return drag(sess, pts, surface.Primary)
	case "drag":
		b, err := parseButton(st.Button)
		if err != nil {
			return err
		}
		return drag(sess, st.Screen, b)
	case "wheel":
		sess.Wheel(st.Delta)
	case "home":
		sess.DoubleClick()
	case "layer":
		l, err := parseLayer(st.Layer)
		if err != nil {
			return err
		}
		if st.Visible != nil {
			sess.SetLayerVisible(l, *st.Visible)
		}
		sess.SetActiveLayer(l)
	case "model":
		m, err := uvmap.ParseModel(st.Model)
		if err != nil {
			return err
		}
		sess.SetModel(m)
	case "resize":
		return sess.ChangeSize(st.Size)
	case "reset":
		var m uvmap.Model
		if st.Model != "" {
			var err error
			if m, err = uvmap.ParseModel(st.Model); err != nil {
				return err
			}
		}
		return sess.ResetToTemplate(m)
	case "clear":
		return sess.Clear()
	case "undo":
		_, err := sess.Undo()
		return err
	case "redo":
		_, err := sess.Redo()
		return err
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, st.Op)
	}
	return nil
}

// strokePoints returns the screen points of a stroke step. Texture pixels
// are only meaningful on the flat view.
func strokePoints(sess *session.Session, st Step) ([][2]float64, error) {
	if len(st.Pixels) == 0 {
		if len(st.Screen) == 0 {
			return nil, errors.New("stroke needs pixels or screen points")
		}
		return st.Screen, nil
	}
	if sess.Mode() != session.ModeFlat {
		return nil, errors.New("pixel strokes need the flat view")
	}
	pts := make([][2]float64, len(st.Pixels))
	for i, p := range st.Pixels {
		x, y := sess.Flat().ScreenPoint(image.Pt(p[0], p[1]))
		pts[i] = [2]float64{x, y}
	}
	return pts, nil
}

func drag(sess *session.Session, pts [][2]float64, b surface.Button) error {
	if len(pts) == 0 {
		return errors.New("drag needs at least one point")
	}
	if err := sess.PointerDown(pts[0][0], pts[0][1], b); err != nil {
		return err
	}
	for _, p := range pts[1:] {
		if err := sess.PointerMove(p[0], p[1]); err != nil {
			return err
		}
	}
	return sess.PointerUp()
}

func parseButton(s string) (surface.Button, error) {
	switch s {
	case "", "primary", "left":
		return surface.Primary, nil
	case "middle":
		return surface.Middle, nil
	case "secondary", "right":
		return surface.Secondary, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

func parseLayer(s string) (uvmap.Layer, error) {
	switch s {
	case "base":
		return uvmap.Base, nil
	case "overlay":
		return uvmap.Overlay, nil
	}
	return 0, fmt.Errorf("unknown layer %q", s)
}
