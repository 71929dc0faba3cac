// Package texture holds the editable skin texture and the helpers that load
// skin images from disk for batch work.
package texture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

// Supported skin resolutions.
const (
	Size64  = 64
	Size128 = 128
)

var (
	ErrInvalidCoordinate = errors.New("texture: coordinate out of range")
	ErrInvalidSize       = errors.New("texture: unsupported size")
	ErrDecode            = errors.New("texture: decode failed")
)

const dataURLPrefix = "data:image/png;base64,"

// ValidSize reports whether n is a supported skin resolution.
func ValidSize(n int) bool {
	return n == Size64 || n == Size128
}

// Buffer is a square NRGBA pixel grid. It records whether it has been
// modified since the last ClearDirty; history is handled by the caller.
type Buffer struct {
	img   *image.NRGBA
	dirty bool
}

// New returns a fully transparent buffer of the given size.
func New(size int) (*Buffer, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Buffer{img: image.NewNRGBA(image.Rect(0, 0, size, size))}, nil
}

// FromImage copies img into a new buffer. The image must be square and of a
// supported size.
func FromImage(img image.Image) (*Buffer, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() || !ValidSize(b.Dx()) {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, b.Dx(), b.Dy())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Buffer{img: dst}, nil
}

// Decode parses PNG bytes into a buffer.
func Decode(data []byte) (*Buffer, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return FromImage(img)
}

// DecodeDataURL parses a data:image/png;base64 URL.
func DecodeDataURL(s string) (*Buffer, error) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return nil, fmt.Errorf("%w: not a png data url", ErrDecode)
	}
	raw, err := base64.StdEncoding.DecodeString(s[len(dataURLPrefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return Decode(raw)
}

// Size returns the edge length in pixels.
func (b *Buffer) Size() int {
	return b.img.Rect.Dx()
}

// Bounds returns the full pixel rectangle.
func (b *Buffer) Bounds() image.Rectangle {
	return b.img.Rect
}

func (b *Buffer) inBounds(x, y int) bool {
	return image.Pt(x, y).In(b.img.Rect)
}

// Pixel returns the colour at (x, y).
func (b *Buffer) Pixel(x, y int) (color.NRGBA, error) {
	if !b.inBounds(x, y) {
		return color.NRGBA{}, fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, x, y)
	}
	return b.img.NRGBAAt(x, y), nil
}

// SetPixel writes c at (x, y).
func (b *Buffer) SetPixel(x, y int, c color.NRGBA) error {
	if !b.inBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, x, y)
	}
	b.img.SetNRGBA(x, y, c)
	b.dirty = true
	return nil
}

// Region returns a copy of the pixels inside r, row-major.
func (b *Buffer) Region(r image.Rectangle) ([]color.NRGBA, error) {
	if r.Empty() || !r.In(b.img.Rect) {
		return nil, fmt.Errorf("%w: region %v", ErrInvalidCoordinate, r)
	}
	out := make([]color.NRGBA, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out = append(out, b.img.NRGBAAt(x, y))
		}
	}
	return out, nil
}

// PutRegion writes px (row-major, len r.Dx()*r.Dy()) into r.
func (b *Buffer) PutRegion(r image.Rectangle, px []color.NRGBA) error {
	if r.Empty() || !r.In(b.img.Rect) {
		return fmt.Errorf("%w: region %v", ErrInvalidCoordinate, r)
	}
	if len(px) != r.Dx()*r.Dy() {
		return fmt.Errorf("texture: region %v needs %d pixels, got %d", r, r.Dx()*r.Dy(), len(px))
	}
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.img.SetNRGBA(x, y, px[i])
			i++
		}
	}
	b.dirty = true
	return nil
}

// FillRect sets every pixel of r (clipped to the buffer) to c.
func (b *Buffer) FillRect(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(b.img.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(b.img, r, image.NewUniform(c), image.Point{}, draw.Src)
	b.dirty = true
}

// Clear makes every pixel transparent.
func (b *Buffer) Clear() {
	clear(b.img.Pix)
	b.dirty = true
}

// Encode returns the buffer as PNG bytes.
func (b *Buffer) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.img); err != nil {
		return nil, fmt.Errorf("texture: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL returns the PNG encoding as a data URL.
func (b *Buffer) DataURL() (string, error) {
	data, err := b.Encode()
	if err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// Clone returns an independent copy. The copy starts clean.
func (b *Buffer) Clone() *Buffer {
	dst := image.NewNRGBA(b.img.Rect)
	copy(dst.Pix, b.img.Pix)
	return &Buffer{img: dst}
}

// Snapshot returns a copy of the pixels for renderers.
func (b *Buffer) Snapshot() *image.NRGBA {
	return b.Clone().img
}

// Equal reports whether both buffers hold identical pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if o == nil || b.img.Rect != o.img.Rect {
		return false
	}
	return bytes.Equal(b.img.Pix, o.img.Pix)
}

// Resample returns a nearest-neighbour copy at the given size.
func (b *Buffer) Resample(size int) (*Buffer, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if size == b.Size() {
		return b.Clone(), nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), b.img, b.img.Rect, draw.Src, nil)
	return &Buffer{img: dst}, nil
}

// Dirty reports whether the buffer changed since the last ClearDirty.
func (b *Buffer) Dirty() bool { return b.dirty }

// ClearDirty resets the modification flag.
func (b *Buffer) ClearDirty() { b.dirty = false }
