package paint

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"bedrock-skin-editor/internal/texture"
)

// PaintPixel writes ink at (x, y).
func PaintPixel(buf *texture.Buffer, x, y int, ink color.NRGBA) error {
	return buf.SetPixel(x, y, ink)
}

// PaintLine writes ink on every pixel of the Bresenham line from (x0, y0)
// to (x1, y1), endpoints included. Both endpoints are validated first so a
// rejected line leaves the buffer untouched.
func PaintLine(buf *texture.Buffer, x0, y0, x1, y1 int, ink color.NRGBA) error {
	b := buf.Bounds()
	if !image.Pt(x0, y0).In(b) || !image.Pt(x1, y1).In(b) {
		return fmt.Errorf("paint: line (%d,%d)-(%d,%d): %w", x0, y0, x1, y1, texture.ErrInvalidCoordinate)
	}
	for _, p := range Line(x0, y0, x1, y1) {
		if err := buf.SetPixel(p.X, p.Y, ink); err != nil {
			return err
		}
	}
	return nil
}

// Line returns the Bresenham points from (x0, y0) to (x1, y1). The walk
// always starts at the lexicographically smaller endpoint, so swapping the
// endpoints yields the same pixels in reverse order.
func Line(x0, y0, x1, y1 int) []image.Point {
	if x1 < x0 || (x1 == x0 && y1 < y0) {
		pts := bresenham(x1, y1, x0, y0)
		slices.Reverse(pts)
		return pts
	}
	return bresenham(x0, y0, x1, y1)
}

func bresenham(x0, y0, x1, y1 int) []image.Point {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	pts := make([]image.Point, 0, max(dx, dy)+1)
	x, y := x0, y0
	for {
		pts = append(pts, image.Pt(x, y))
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FloodFill replaces the 4-connected region of pixels exactly matching the
// seed colour with ink. When bounds is non-nil the fill never leaves it.
// It returns the number of pixels written; filling with the seed colour is
// a no-op.
func FloodFill(buf *texture.Buffer, x, y int, ink color.NRGBA, bounds *image.Rectangle) (int, error) {
	area := buf.Bounds()
	if bounds != nil {
		area = area.Intersect(*bounds)
	}
	if !image.Pt(x, y).In(area) {
		return 0, fmt.Errorf("paint: fill seed (%d,%d) outside %v: %w", x, y, area, texture.ErrInvalidCoordinate)
	}

	target, err := buf.Pixel(x, y)
	if err != nil {
		return 0, err
	}
	if target == ink {
		return 0, nil
	}

	filled := 0
	stack := []image.Point{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !p.In(area) {
			continue
		}
		c, _ := buf.Pixel(p.X, p.Y)
		if c != target {
			continue
		}
		_ = buf.SetPixel(p.X, p.Y, ink)
		filled++
		stack = append(stack,
			image.Pt(p.X+1, p.Y),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X, p.Y-1),
		)
	}
	return filled, nil
}

// PickColor samples (x, y). ok is false for fully transparent pixels;
// otherwise the colour is returned opaque.
func PickColor(buf *texture.Buffer, x, y int) (c color.NRGBA, ok bool, err error) {
	c, err = buf.Pixel(x, y)
	if err != nil {
		return color.NRGBA{}, false, err
	}
	if c.A == 0 {
		return color.NRGBA{}, false, nil
	}
	c.A = 255
	return c, true, nil
}
