package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"json", "cfg.json", `{"model":"slim","size":128,"format":"png","back_view":true,"workers":3}`},
		{"yaml", "cfg.yaml", "model: slim\nsize: 128\nformat: png\nback_view: true\nworkers: 3\n"},
		{"yml", "cfg.YML", "model: slim\nsize: 128\nformat: png\nback_view: true\nworkers: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.body))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Model != "slim" || cfg.Size != 128 || cfg.Format != FormatPNG || !cfg.BackView || cfg.Workers != 3 {
				t.Errorf("cfg = %+v", cfg)
			}
			if cfg.PreviewSize != 0 {
				t.Errorf("unset field = %d, want zero", cfg.PreviewSize)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(writeFile(t, "bad.json", "{")); err == nil {
		t.Error("bad json should fail")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "size: [")); err == nil {
		t.Error("bad yaml should fail")
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	want := Config{
		Model:        "normal",
		Size:         64,
		HistoryLimit: 50,
		FlatZoom:     6,
		ViewWidth:    640,
		ViewHeight:   480,
		OutputDir:    "previews",
		PreviewSize:  256,
		Supersample:  2,
		Format:       FormatWebP,
		Workers:      runtime.NumCPU(),
		LogLevel:     "info",
	}
	if cfg != want {
		t.Errorf("cfg = %+v\nwant %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestResolveFlagsWin(t *testing.T) {
	cfg := Config{Model: "slim", Size: 128, Workers: 2, Format: FormatPNG}
	cfg.Resolve(Flags{Model: "normal", Workers: 8, OutputDir: "out", LogLevel: "debug"})
	if cfg.Model != "normal" || cfg.Workers != 8 || cfg.OutputDir != "out" || cfg.LogLevel != "debug" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Size != 128 || cfg.Format != FormatPNG {
		t.Errorf("file values lost: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"model", func(c *Config) { c.Model = "giant" }},
		{"size", func(c *Config) { c.Size = 32 }},
		{"format", func(c *Config) { c.Format = "gif" }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.Resolve(Flags{})
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
