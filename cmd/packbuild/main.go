package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"bedrock-skin-editor/internal/logging"
	"bedrock-skin-editor/internal/skinpack"
	"bedrock-skin-editor/internal/templates"
	"bedrock-skin-editor/internal/texture"
	"bedrock-skin-editor/internal/uvmap"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func main() {
	output := flag.String("o", "skins.mcpack", "Output .mcpack path")
	name := flag.String("name", skinpack.DefaultPackName, "Pack display name")
	model := flag.String("model", "auto", "Model for every skin: auto, normal or slim")
	size := flag.Int("size", 0, "Resample every skin to 64 or 128 (default: keep)")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: packbuild [flags] <skin-dir>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		logging.SetLogger(logging.New(os.Stderr, slog.LevelDebug))
	}

	var fixed uvmap.Model
	if *model != "auto" {
		m, err := uvmap.ParseModel(*model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		fixed = m
	}
	if *size != 0 && !texture.ValidSize(*size) {
		fmt.Fprintf(os.Stderr, "Error: -size must be 64 or 128\n")
		os.Exit(2)
	}

	idx, err := texture.BuildIndex(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
	cache := texture.NewIndexCache(idx)
	fmt.Printf("Skins: %d indexed\n", idx.Len())

	title := cases.Title(language.English)
	pack := skinpack.NewPack(*name)
	skipped := 0
	for _, stem := range idx.Names() {
		img := cache.Resolve(stem)
		if img == nil {
			skipped++
			continue
		}
		buf, err := texture.FromImage(img)
		if err != nil {
			fmt.Printf("  skip %s: %v\n", stem, err)
			skipped++
			continue
		}
		if *size != 0 && *size != buf.Size() {
			if buf, err = buf.Resample(*size); err != nil {
				fmt.Printf("  skip %s: %v\n", stem, err)
				skipped++
				continue
			}
		}

		m := fixed
		if m == "" {
			m = templates.DetectModel(buf)
		}
		data, err := buf.Encode()
		if err != nil {
			fmt.Printf("  skip %s: %v\n", stem, err)
			skipped++
			continue
		}
		display := title.String(strings.NewReplacer("_", " ", "-", " ").Replace(stem))
		s, err := pack.Add(display, data, m)
		if err != nil {
			fmt.Printf("  skip %s: %v\n", stem, err)
			skipped++
			continue
		}
		fmt.Printf("  %-8s %-24s %dx%d %s\n", s.ID, s.Name, buf.Size(), buf.Size(), m)
	}

	if pack.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no usable skins found")
		os.Exit(1)
	}

	packID, err := skinpack.ExportFile(*output, pack, skinpack.ExportOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing pack: %v\n", err)
		os.Exit(1)
	}
	info, err := os.Stat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%s, %d skins, %d skipped, id %s)\n",
		*output, humanize.Bytes(uint64(info.Size())), pack.Len(), skipped, packID)
}
