// Package batch renders preview images for every skin of a pack on a
// worker pool.
package batch

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"bedrock-skin-editor/internal/config"
	"bedrock-skin-editor/internal/logging"
	"bedrock-skin-editor/internal/mathutil"
	"bedrock-skin-editor/internal/postprocess"
	"bedrock-skin-editor/internal/raster"
	"bedrock-skin-editor/internal/skinpack"
	"bedrock-skin-editor/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds the shared settings of a batch run.
type Config struct {
	OutputDir   string
	RenderSize  int
	Supersample int
	// Format is "webp" or "png".
	Format string
	// BackView renders front and back side by side.
	BackView bool
	Workers  int

	// Progress receives a status line every ProgressInterval. Nil disables it.
	Progress         io.Writer
	ProgressInterval time.Duration
}

// Result holds the outcome of rendering one skin.
type Result struct {
	ID      string
	Name    string
	Image   string // file name inside OutputDir
	Success bool
	Error   string
}

// Run renders every skin and returns one result per skin, in input order.
func Run(cfg Config, skins []skinpack.Skin) []Result {
	total := len(skins)
	results := make([]Result, total)
	var processed atomic.Int64
	workers := max(cfg.Workers, 1)

	// Skins are decoded once through the cache; workers copy the decoded
	// image before rendering.
	byID := make(map[string][]byte, total)
	for _, s := range skins {
		byID[s.ID] = s.Texture
	}
	cache := texture.NewCache(func(id string) (*image.NRGBA, error) {
		buf, err := texture.Decode(byID[id])
		if err != nil {
			return nil, err
		}
		return buf.Snapshot(), nil
	})

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	stopped := make(chan struct{})
	if cfg.Progress == nil {
		close(stopped)
	} else {
		interval := cfg.ProgressInterval
		if interval <= 0 {
			interval = 2 * time.Second
		}
		go func() {
			defer close(stopped)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f skins/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	skinChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range skinChan {
				results[idx] = processSkin(cfg, cache, skins[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range skins {
		skinChan <- i
	}
	close(skinChan)

	wg.Wait()
	close(done)
	<-stopped

	logging.Logger().Info("previews rendered", "skins", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

// FileName returns the preview file name for a skin.
func FileName(id, format string) string {
	if format == config.FormatPNG {
		return id + ".png"
	}
	return id + ".webp"
}

func processSkin(cfg Config, cache *texture.Cache, s skinpack.Skin) Result {
	res := Result{ID: s.ID, Name: s.Name, Image: FileName(s.ID, cfg.Format)}
	fail := func(err error) Result {
		logging.Logger().Warn("preview failed", "skin", s.ID, "err", err)
		res.Error = err.Error()
		return res
	}

	src := cache.Resolve(s.ID)
	if src == nil {
		return fail(fmt.Errorf("batch: skin %s: texture could not be decoded", s.ID))
	}
	tex, err := texture.FromImage(src)
	if err != nil {
		return fail(fmt.Errorf("batch: skin %s: %w", s.ID, err))
	}

	opts := raster.Options{Model: s.Model, Size: cfg.RenderSize, Supersample: cfg.Supersample}
	img := raster.RenderSkin(tex, opts)
	if cfg.BackView {
		opts.View = mathutil.PreviewBackView
		back := raster.RenderSkin(tex, opts)
		img = postprocess.Pair(img, back, cfg.RenderSize, 0.95)
	}

	data, err := encode(img, cfg.Format)
	if err != nil {
		return fail(fmt.Errorf("batch: encode %s: %w", s.ID, err))
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fail(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, res.Image), data, 0644); err != nil {
		return fail(err)
	}

	res.Success = true
	return res
}

func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if format == config.FormatPNG {
		err = png.Encode(&buf, img)
	} else {
		err = nativewebp.Encode(&buf, img, nil)
	}
	return buf.Bytes(), err
}
