package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"bedrock-skin-editor/internal/config"
	"bedrock-skin-editor/internal/logging"
	"bedrock-skin-editor/internal/raster"
	"bedrock-skin-editor/internal/script"
	"bedrock-skin-editor/internal/session"
	"bedrock-skin-editor/internal/uvmap"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json, .yaml)")
	output := flag.String("o", "skin.png", "Output skin PNG")
	flatOut := flag.String("flat", "", "Also write the flat view with grid to this PNG")
	previewOut := flag.String("preview", "", "Also write a 3D preview to this PNG")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: skinpaint [flags] <script.yaml>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{LogLevel: *logLevel})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.SetLogger(logging.New(os.Stderr, level))

	sc, err := script.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts, err := sc.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts.HistoryLimit = cfg.HistoryLimit
	opts.ViewWidth, opts.ViewHeight = cfg.ViewWidth, cfg.ViewHeight
	if opts.Size == 0 {
		opts.Size = cfg.Size
	}

	sess, err := session.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()
	sess.Flat().SetZoom(cfg.FlatZoom)

	commits := 0
	sess.OnTextureUpdate(func([]byte) { commits++ })

	if err := sc.Run(sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tex, err := sess.Texture()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding skin: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, tex, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Skin: %s (%dx%d, %s, %d steps, %d updates, history %d/%d)\n",
		*output, sess.Size(), sess.Size(), sess.Model(), len(sc.Steps), commits,
		sess.History().Index()+1, sess.History().Len())

	if *flatOut != "" {
		if err := writePNG(*flatOut, sess.Flat().Render(sess.Grid())); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Flat view: %s\n", *flatOut)
	}
	if *previewOut != "" {
		img := raster.RenderSkin(sess.Buffer(), raster.Options{
			Model:       sess.Model(),
			HideBase:    !sess.LayerVisible(uvmap.Base),
			HideOverlay: !sess.LayerVisible(uvmap.Overlay),
			Size:        cfg.PreviewSize,
			Supersample: cfg.Supersample,
		})
		if err := writePNG(*previewOut, img); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Preview: %s\n", *previewOut)
	}
}

func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
