package skinpack

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
)

var (
	ErrNotPNG            = errors.New("skinpack: not a png image")
	ErrInvalidDimensions = errors.New("skinpack: skin must be 64x64 or 128x128")
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Validate checks that data is a PNG of an accepted skin size and returns
// its edge length.
func Validate(data []byte) (int, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return 0, ErrNotPNG
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotPNG, err)
	}
	if cfg.Width != cfg.Height || (cfg.Width != 64 && cfg.Width != 128) {
		return 0, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	}
	return cfg.Width, nil
}
