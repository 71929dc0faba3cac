package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNewRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, 32, 63, 100, 256} {
		if _, err := New(size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
	for _, size := range []int{64, 128} {
		b, err := New(size)
		if err != nil {
			t.Fatalf("New(%d): %v", size, err)
		}
		if b.Size() != size {
			t.Errorf("Size() = %d, want %d", b.Size(), size)
		}
		if b.Dirty() {
			t.Errorf("new buffer should be clean")
		}
	}
}

func TestPixelBounds(t *testing.T) {
	b, _ := New(64)
	red := color.NRGBA{255, 0, 0, 255}

	tests := []struct {
		x, y int
		ok   bool
	}{
		{0, 0, true},
		{63, 63, true},
		{-1, 0, false},
		{0, -1, false},
		{64, 0, false},
		{0, 64, false},
	}
	for _, tt := range tests {
		err := b.SetPixel(tt.x, tt.y, red)
		if tt.ok && err != nil {
			t.Errorf("SetPixel(%d,%d) = %v", tt.x, tt.y, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("SetPixel(%d,%d) = %v, want ErrInvalidCoordinate", tt.x, tt.y, err)
		}
		_, err = b.Pixel(tt.x, tt.y)
		if !tt.ok && !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Pixel(%d,%d) = %v, want ErrInvalidCoordinate", tt.x, tt.y, err)
		}
	}

	got, _ := b.Pixel(63, 63)
	if got != red {
		t.Errorf("Pixel(63,63) = %v, want %v", got, red)
	}
	if !b.Dirty() {
		t.Error("SetPixel should mark the buffer dirty")
	}
	b.ClearDirty()
	if b.Dirty() {
		t.Error("ClearDirty did not reset the flag")
	}
}

func TestRegionRoundTrip(t *testing.T) {
	b, _ := New(64)
	r := image.Rect(8, 8, 16, 16)
	px := make([]color.NRGBA, r.Dx()*r.Dy())
	for i := range px {
		px[i] = color.NRGBA{uint8(i), 10, 20, 255}
	}
	if err := b.PutRegion(r, px); err != nil {
		t.Fatalf("PutRegion: %v", err)
	}
	got, err := b.Region(r)
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	for i := range px {
		if got[i] != px[i] {
			t.Fatalf("pixel %d = %v, want %v", i, got[i], px[i])
		}
	}

	if _, err := b.Region(image.Rect(60, 60, 70, 70)); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("Region outside bounds error = %v", err)
	}
	if err := b.PutRegion(r, px[:3]); err == nil {
		t.Error("PutRegion with short slice should fail")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b, _ := New(64)
	b.FillRect(image.Rect(0, 0, 8, 8), color.NRGBA{10, 20, 30, 255})
	_ = b.SetPixel(40, 40, color.NRGBA{1, 2, 3, 128})

	data, err := b.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !b.Equal(back) {
		t.Error("decoded buffer differs from original")
	}

	url, err := b.DataURL()
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("DataURL prefix = %q", url[:30])
	}
	fromURL, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if !b.Equal(fromURL) {
		t.Error("data url round trip differs")
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode([]byte("not a png")); !errors.Is(err, ErrDecode) {
		t.Errorf("Decode garbage error = %v, want ErrDecode", err)
	}
	if _, err := DecodeDataURL("data:image/jpeg;base64,AAAA"); !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeDataURL jpeg error = %v, want ErrDecode", err)
	}
	if _, err := DecodeDataURL("data:image/png;base64,!!!"); !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeDataURL bad base64 error = %v, want ErrDecode", err)
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 64, 32)))
	if _, err := Decode(buf.Bytes()); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Decode 64x32 error = %v, want ErrInvalidSize", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, _ := New(64)
	_ = b.SetPixel(1, 1, color.NRGBA{255, 255, 255, 255})
	c := b.Clone()
	if c.Dirty() {
		t.Error("clone should start clean")
	}
	_ = c.SetPixel(1, 1, color.NRGBA{0, 0, 0, 255})
	got, _ := b.Pixel(1, 1)
	if got.R != 255 {
		t.Error("mutating clone changed original")
	}
	if b.Equal(c) {
		t.Error("Equal should report the difference")
	}

	snap := b.Snapshot()
	snap.Pix[0] = 99
	got, _ = b.Pixel(0, 0)
	if got.R == 99 {
		t.Error("Snapshot shares pixels with buffer")
	}
}

func TestResampleNearest(t *testing.T) {
	b, _ := New(64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			_ = b.SetPixel(x, y, color.NRGBA{uint8(x * 4), uint8(y * 4), 0, 255})
		}
	}

	up, err := b.Resample(128)
	if err != nil {
		t.Fatalf("Resample(128): %v", err)
	}
	if up.Size() != 128 {
		t.Fatalf("Size = %d", up.Size())
	}
	for _, p := range []image.Point{{0, 0}, {5, 9}, {63, 63}} {
		want, _ := b.Pixel(p.X, p.Y)
		for _, d := range []image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			got, _ := up.Pixel(2*p.X+d.X, 2*p.Y+d.Y)
			if got != want {
				t.Errorf("upscaled (%d,%d) = %v, want %v", 2*p.X+d.X, 2*p.Y+d.Y, got, want)
			}
		}
	}

	down, err := up.Resample(64)
	if err != nil {
		t.Fatalf("Resample(64): %v", err)
	}
	if !down.Equal(b) {
		t.Error("64 -> 128 -> 64 should be lossless")
	}

	if _, err := b.Resample(96); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resample(96) error = %v", err)
	}
}

func TestClearAndFillRect(t *testing.T) {
	b, _ := New(64)
	b.FillRect(image.Rect(-4, -4, 4, 4), color.NRGBA{9, 9, 9, 255})
	got, _ := b.Pixel(3, 3)
	if got.A != 255 {
		t.Error("FillRect did not clip and fill")
	}
	got, _ = b.Pixel(4, 4)
	if got.A != 0 {
		t.Error("FillRect wrote past Max")
	}
	b.Clear()
	got, _ = b.Pixel(3, 3)
	if got != (color.NRGBA{}) {
		t.Errorf("Clear left %v", got)
	}
}

func TestIndexPrefersPNG(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Steve.tga", "steve.png", "alex.tga", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(sub, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	idx, err := BuildIndex(dir)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if idx.Len() != 2 {
		t.Errorf("Len = %d, want 2", idx.Len())
	}
	path, ok := idx.ResolvePath("skins\\STEVE.tga")
	if !ok || filepath.Ext(path) != ".png" {
		t.Errorf("ResolvePath(steve) = %q, %v", path, ok)
	}
	if names := idx.Names(); len(names) != 2 || names[0] != "alex" || names[1] != "steve" {
		t.Errorf("Names = %v", names)
	}
}

func TestLoadBufferPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skin.png")
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	img.SetNRGBA(2, 3, color.NRGBA{1, 2, 3, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	b, err := LoadBuffer(path)
	if err != nil {
		t.Fatalf("LoadBuffer: %v", err)
	}
	got, _ := b.Pixel(2, 3)
	if got != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("pixel = %v", got)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "skin.bmp")); err == nil {
		t.Error("LoadFile of missing file should fail")
	}
}

func TestCacheLoadsOnce(t *testing.T) {
	var mu sync.Mutex
	calls := map[string]int{}
	c := NewCache(func(name string) (*image.NRGBA, error) {
		mu.Lock()
		calls[name]++
		mu.Unlock()
		if name == "missing" {
			return nil, errors.New("not found")
		}
		return image.NewNRGBA(image.Rect(0, 0, 64, 64)), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Resolve("steve") == nil {
				t.Error("Resolve(steve) = nil")
			}
		}()
	}
	wg.Wait()

	first := c.Resolve("steve")
	if c.Resolve("steve") != first {
		t.Error("cache returned a different image")
	}
	if c.Resolve("missing") != nil {
		t.Error("failed load should resolve to nil")
	}
	c.Resolve("missing")
	if calls["missing"] != 1 {
		t.Errorf("missing loaded %d times, want 1", calls["missing"])
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}
