// Package templates draws the starter skins and guesses the model variant
// of an existing texture.
package templates

import (
	"image"
	"image/color"

	"bedrock-skin-editor/internal/paint"
	"bedrock-skin-editor/internal/texture"
	"bedrock-skin-editor/internal/uvmap"
)

type colours struct {
	skin, hair, eyes, mouth, shirt, pants, shoes color.NRGBA
}

var (
	steveColours = colours{
		skin:  paint.MustHex("#c6a082"),
		hair:  paint.MustHex("#614024"),
		eyes:  paint.MustHex("#2f5280"),
		mouth: paint.MustHex("#a87d5f"),
		shirt: paint.MustHex("#00aaaa"),
		pants: paint.MustHex("#3d3d8e"),
		shoes: paint.MustHex("#444444"),
	}
	alexColours = colours{
		skin:  paint.MustHex("#f5d4b3"),
		hair:  paint.MustHex("#c75c36"),
		eyes:  paint.MustHex("#7cba61"),
		mouth: paint.MustHex("#d4a99c"),
		shirt: paint.MustHex("#6e9e40"),
		pants: paint.MustHex("#5a3a2b"),
		shoes: paint.MustHex("#343434"),
	}
)

// partStyle colours each face of a base part. cuff paints the bottom
// cuffRows rows of the four side faces (hands and shoes).
type partStyle struct {
	faces    [6]color.NRGBA
	cuff     color.NRGBA
	cuffRows int
}

func sides(top, bottom, side color.NRGBA) [6]color.NRGBA {
	var f [6]color.NRGBA
	f[uvmap.PosX], f[uvmap.NegX], f[uvmap.PosZ], f[uvmap.NegZ] = side, side, side, side
	f[uvmap.PosY], f[uvmap.NegY] = top, bottom
	return f
}

func styles(c colours) map[string]partStyle {
	head := sides(c.hair, c.skin, c.skin)
	head[uvmap.NegZ] = c.hair
	return map[string]partStyle{
		"head":     {faces: head},
		"body":     {faces: sides(c.shirt, c.shirt, c.shirt)},
		"rightArm": {faces: sides(c.shirt, c.skin, c.shirt), cuff: c.skin, cuffRows: 4},
		"leftArm":  {faces: sides(c.shirt, c.skin, c.shirt), cuff: c.skin, cuffRows: 4},
		"rightLeg": {faces: sides(c.pants, c.shoes, c.pants), cuff: c.shoes, cuffRows: 4},
		"leftLeg":  {faces: sides(c.pants, c.shoes, c.pants), cuff: c.shoes, cuffRows: 4},
	}
}

// draw paints a template at 64×64. The overlay layer stays transparent.
func draw(model uvmap.Model, c colours) *texture.Buffer {
	buf, _ := texture.New(texture.Size64)
	st := styles(c)
	for _, p := range uvmap.Parts(uvmap.Base, model, 1) {
		s := st[p.Name]
		for _, f := range uvmap.Faces {
			r := p.FaceRect(f)
			buf.FillRect(r, s.faces[f])
			if s.cuffRows > 0 && f != uvmap.PosY && f != uvmap.NegY {
				buf.FillRect(image.Rect(r.Min.X, r.Max.Y-s.cuffRows, r.Max.X, r.Max.Y), s.cuff)
			}
		}
	}

	// Face details on the head front.
	buf.FillRect(image.Rect(10, 12, 12, 13), c.eyes)
	buf.FillRect(image.Rect(14, 12, 16, 13), c.eyes)
	buf.FillRect(image.Rect(12, 14, 14, 15), c.mouth)

	buf.ClearDirty()
	return buf
}

// Steve returns the 64×64 normal-arm starter skin.
func Steve() *texture.Buffer { return draw(uvmap.Normal, steveColours) }

// Alex returns the 64×64 slim-arm starter skin.
func Alex() *texture.Buffer { return draw(uvmap.Slim, alexColours) }

// Blank returns a transparent skin.
func Blank(size int) (*texture.Buffer, error) {
	return texture.New(size)
}

// ForModel returns the starter skin for model at the given resolution.
func ForModel(model uvmap.Model, size int) (*texture.Buffer, error) {
	t := Steve()
	if model == uvmap.Slim {
		t = Alex()
	}
	if size == texture.Size64 {
		return t, nil
	}
	return t.Resample(size)
}

// slimProbe is the strip right of the slim right-arm net. Normal skins
// paint the arm's back face there; slim skins leave it empty.
var slimProbe = image.Rect(54, 20, 56, 32)

// DetectModel guesses the model variant from the texture.
func DetectModel(buf *texture.Buffer) uvmap.Model {
	s := uvmap.Scale(buf.Size())
	r := image.Rect(slimProbe.Min.X*s, slimProbe.Min.Y*s, slimProbe.Max.X*s, slimProbe.Max.Y*s)
	px, err := buf.Region(r)
	if err != nil {
		return uvmap.Normal
	}
	for _, c := range px {
		if c.A >= 128 {
			return uvmap.Normal
		}
	}
	return uvmap.Slim
}
