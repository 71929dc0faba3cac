package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bedrock-skin-editor/internal/batch"
	"bedrock-skin-editor/internal/config"
	"bedrock-skin-editor/internal/logging"
	"bedrock-skin-editor/internal/skinpack"

	"github.com/mattn/go-isatty"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .yaml)")
	testN := flag.Int("test", 0, "Render only the first N skins")
	only := flag.String("skin", "", "Render only the skin with this ID")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: previews)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 256)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error")
	sheetPath := flag.String("sheet", "", "Also write a PDF contact sheet to this path")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: render [flags] <pack.mcpack>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	packPath := flag.Arg(0)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:   *outputDir,
		PreviewSize: *size,
		Format:      *format,
		Workers:     *workers,
		LogLevel:    *logLevel,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.SetLogger(logging.New(os.Stderr, level))

	pack, err := skinpack.ImportFile(packPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading pack: %v\n", err)
		os.Exit(1)
	}

	skins := pack.Skins
	if *only != "" {
		s, ok := pack.Get(*only)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no skin %q in %s\n", *only, packPath)
			os.Exit(1)
		}
		skins = []skinpack.Skin{s}
	}
	if *testN > 0 && *testN < len(skins) {
		skins = skins[:*testN]
	}

	if len(skins) == 0 {
		fmt.Println("No skins to render.")
		os.Exit(0)
	}

	fmt.Printf("Skin pack %q → %s previews\n", pack.Name, cfg.Format)
	fmt.Printf("Skins: %d, Workers: %d\n", len(skins), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		RenderSize:  cfg.PreviewSize,
		Supersample: cfg.Supersample,
		Format:      cfg.Format,
		BackView:    cfg.BackView,
		Workers:     cfg.Workers,
	}
	// Progress lines only make sense on an interactive terminal.
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		batchCfg.Progress = os.Stdout
	}

	results := batch.Run(batchCfg, skins)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(skins))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors[:min(len(errors), 20)] {
			fmt.Printf("  %s (%s): %s\n", e.Name, e.ID, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, batch.ManifestFile)
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, pack, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if *sheetPath != "" {
		if err := writeSheet(*sheetPath, pack.Name, skins); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			fmt.Printf("Sheet: %s\n", *sheetPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func writeSheet(path, title string, skins []skinpack.Skin) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := batch.WriteSheet(f, title, skins, batch.SheetConfig{}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
