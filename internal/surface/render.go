package surface

import (
	"image"
	"image/color"

	"bedrock-skin-editor/internal/paint"
	"bedrock-skin-editor/internal/texture"
	"bedrock-skin-editor/internal/uvmap"

	"golang.org/x/image/draw"
)

var (
	checkLight = color.NRGBA{0x3a, 0x3a, 0x4a, 0xff}
	checkDark  = color.NRGBA{0x2a, 0x2a, 0x3a, 0xff}
	gridColour = color.NRGBA{0xff, 0xff, 0xff, 0x33}
)

var outlineColours = map[string]string{
	"head":            "#ef4444",
	"body":            "#3b82f6",
	"rightArm":        "#22c55e",
	"leftArm":         "#84cc16",
	"rightLeg":        "#f59e0b",
	"leftLeg":         "#eab308",
	"headOverlay":     "#dc2626",
	"bodyOverlay":     "#2563eb",
	"rightArmOverlay": "#16a34a",
	"leftArmOverlay":  "#65a30d",
	"rightLegOverlay": "#d97706",
	"leftLegOverlay":  "#ca8a04",
}

// RenderFlat draws buf scaled by zoom over a checkerboard. With grid set it
// adds pixel grid lines and the part outlines.
func RenderFlat(buf *texture.Buffer, zoom int, grid bool) *image.NRGBA {
	zoom = max(zoom, 1)
	size := buf.Size()
	side := size * zoom
	dst := image.NewNRGBA(image.Rect(0, 0, side, side))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := checkLight
			if (x+y)%2 == 1 {
				c = checkDark
			}
			r := image.Rect(x*zoom, y*zoom, (x+1)*zoom, (y+1)*zoom)
			draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), buf.Snapshot(), buf.Bounds(), draw.Over, nil)

	if !grid {
		return dst
	}

	line := image.NewUniform(gridColour)
	for i := 0; i <= size; i++ {
		at := min(i*zoom, side-1)
		draw.Draw(dst, image.Rect(at, 0, at+1, side), line, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(0, at, side, at+1), line, image.Point{}, draw.Over)
	}

	for _, reg := range uvmap.Regions(uvmap.Scale(size)) {
		c := paint.MustHex(outlineColours[reg.Name])
		r := image.Rect(reg.Rect.Min.X*zoom, reg.Rect.Min.Y*zoom, reg.Rect.Max.X*zoom, reg.Rect.Max.Y*zoom)
		strokeRect(dst, r, c, 2)
	}
	return dst
}

// strokeRect draws the inside border of r, width px thick.
func strokeRect(dst *image.NRGBA, r image.Rectangle, c color.NRGBA, width int) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y),
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}

// Render draws the flat view's texture at the current zoom.
func (f *Flat) Render(grid bool) *image.NRGBA {
	return RenderFlat(f.target.Buffer(), f.zoom, grid)
}
