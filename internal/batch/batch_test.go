package batch

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bedrock-skin-editor/internal/skinpack"
	"bedrock-skin-editor/internal/templates"
	"bedrock-skin-editor/internal/uvmap"
)

func testPack(t *testing.T) *skinpack.Pack {
	t.Helper()
	steve, err := templates.Steve().Encode()
	if err != nil {
		t.Fatal(err)
	}
	alex, err := templates.Alex().Encode()
	if err != nil {
		t.Fatal(err)
	}
	p := skinpack.NewPack("Test Pack")
	p.AddSkins(
		skinpack.Skin{ID: "steve001", Name: "Steve", Texture: steve, Model: uvmap.Normal},
		skinpack.Skin{ID: "broken01", Name: "Broken", Texture: []byte("not a png"), Model: uvmap.Normal},
		skinpack.Skin{ID: "alex0001", Name: "Alex", Texture: alex, Model: uvmap.Slim},
	)
	return p
}

func TestRunPNG(t *testing.T) {
	dir := t.TempDir()
	p := testPack(t)
	var progress bytes.Buffer
	cfg := Config{
		OutputDir:        dir,
		RenderSize:       32,
		Supersample:      1,
		Format:           "png",
		BackView:         true,
		Workers:          2,
		Progress:         &progress,
		ProgressInterval: time.Millisecond,
	}
	results := Run(cfg, p.Skins)
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}

	for _, i := range []int{0, 2} {
		r := results[i]
		if !r.Success || r.ID != p.Skins[i].ID || r.Image != r.ID+".png" {
			t.Errorf("result %d = %+v", i, r)
			continue
		}
		f, err := os.Open(filepath.Join(dir, r.Image))
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds() != image.Rect(0, 0, 32, 32) {
			t.Errorf("%s bounds = %v", r.Image, img.Bounds())
		}
	}
	if r := results[1]; r.Success || r.Error == "" {
		t.Errorf("broken skin result = %+v", r)
	}
	if _, err := os.Stat(filepath.Join(dir, "broken01.png")); !os.IsNotExist(err) {
		t.Error("broken skin produced a file")
	}

	path := filepath.Join(dir, ManifestFile)
	if err := WriteManifest(path, p, results); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m.Pack != "Test Pack" || len(m.Skins) != 3 {
		t.Fatalf("manifest = %+v", m)
	}
	if e := m.Skins[2]; e.Image != "alex0001.png" || e.Geometry != "geometry.humanoid.customSlim" {
		t.Errorf("alex entry = %+v", e)
	}
	if e := m.Skins[1]; e.Image != "" || e.Error == "" {
		t.Errorf("broken entry = %+v", e)
	}
}

func TestRunWebP(t *testing.T) {
	dir := t.TempDir()
	p := testPack(t)
	results := Run(Config{OutputDir: dir, RenderSize: 24, Workers: 1}, p.Skins[:1])
	if !results[0].Success {
		t.Fatalf("result = %+v", results[0])
	}
	data, err := os.ReadFile(filepath.Join(dir, "steve001.webp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("not a webp file: % x", data[:min(len(data), 12)])
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("abc", "png"); got != "abc.png" {
		t.Errorf("png = %q", got)
	}
	if got := FileName("abc", ""); !strings.HasSuffix(got, ".webp") {
		t.Errorf("default = %q", got)
	}
}

func TestWriteSheet(t *testing.T) {
	p := testPack(t)
	var buf bytes.Buffer
	if err := WriteSheet(&buf, "Test Pack", p.Skins, SheetConfig{RenderSize: 32}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("not a pdf: %q", buf.Bytes()[:min(buf.Len(), 8)])
	}

	buf.Reset()
	if err := WriteSheet(&buf, "Empty", nil, SheetConfig{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("empty sheet wrote nothing")
	}
}
