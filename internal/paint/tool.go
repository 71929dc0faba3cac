// Package paint implements the pixel operations behind the editor tools:
// single pixels, Bresenham lines, flood fill and colour picking. It touches
// only the texture buffer it is given.
package paint

import (
	"fmt"
	"image/color"
	"strings"
)

// Tool is the active editing tool.
type Tool int

const (
	Brush Tool = iota
	Bucket
	Eraser
	Eyedropper
)

var toolNames = [...]string{"brush", "bucket", "eraser", "eyedropper"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool maps a tool name to a Tool. "fill" and "picker" are accepted as
// aliases.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brush", "pencil":
		return Brush, nil
	case "bucket", "fill":
		return Bucket, nil
	case "eraser":
		return Eraser, nil
	case "eyedropper", "picker":
		return Eyedropper, nil
	}
	return Brush, fmt.Errorf("paint: unknown tool %q", s)
}

// Transparent is what the eraser writes.
var Transparent = color.NRGBA{}

// Ink returns the colour a tool writes: transparent for the eraser, the
// selected colour made opaque otherwise.
func Ink(t Tool, c color.NRGBA) color.NRGBA {
	if t == Eraser {
		return Transparent
	}
	c.A = 255
	return c
}
