// Package config loads editor and preview settings from JSON or YAML and
// fills in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"bedrock-skin-editor/internal/history"
	"bedrock-skin-editor/internal/logging"
	"bedrock-skin-editor/internal/uvmap"

	"gopkg.in/yaml.v3"
)

// Output image formats for previews.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// Config holds editor defaults and render settings.
type Config struct {
	// Editor
	Model        string `json:"model" yaml:"model"`
	Size         int    `json:"size" yaml:"size"`
	HistoryLimit int    `json:"history_limit" yaml:"history_limit"`
	FlatZoom     int    `json:"flat_zoom" yaml:"flat_zoom"`
	ViewWidth    int    `json:"view_width" yaml:"view_width"`
	ViewHeight   int    `json:"view_height" yaml:"view_height"`

	// Previews
	OutputDir   string `json:"output_dir" yaml:"output_dir"`
	PreviewSize int    `json:"preview_size" yaml:"preview_size"`
	Supersample int    `json:"supersample" yaml:"supersample"`
	Format      string `json:"format" yaml:"format"`
	BackView    bool   `json:"back_view" yaml:"back_view"`
	Workers     int    `json:"workers" yaml:"workers"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Load reads a config file. Files ending in .yaml or .yml are YAML, anything
// else is JSON. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Model       string
	Size        int
	OutputDir   string
	PreviewSize int
	Format      string
	Workers     int
	LogLevel    string
}

// Resolve applies flags over the file values and fills in defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Model != "" {
		c.Model = flags.Model
	}
	if flags.Size > 0 {
		c.Size = flags.Size
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.Model == "" {
		c.Model = string(uvmap.Normal)
	}
	if c.Size <= 0 {
		c.Size = 64
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = history.DefaultLimit
	}
	if c.FlatZoom <= 0 {
		c.FlatZoom = 6
	}
	if c.ViewWidth <= 0 || c.ViewHeight <= 0 {
		c.ViewWidth, c.ViewHeight = 640, 480
	}
	if c.OutputDir == "" {
		c.OutputDir = "previews"
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Format == "" {
		c.Format = FormatWebP
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := uvmap.ParseModel(c.Model); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Size != 64 && c.Size != 128 {
		return fmt.Errorf("config: size must be 64 or 128, got %d", c.Size)
	}
	if c.Format != FormatWebP && c.Format != FormatPNG {
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
