package main

import (
	"flag"
	"fmt"
	"os"

	"bedrock-skin-editor/internal/skinpack"
	"bedrock-skin-editor/internal/templates"
	"bedrock-skin-editor/internal/texture"
	"bedrock-skin-editor/internal/uvmap"

	"github.com/dustin/go-humanize"
)

func main() {
	verbose := flag.Bool("v", false, "Show per-part layer coverage")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspect [-v] <pack.mcpack>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	pack, err := skinpack.ImportFile(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Pack: %q, Skins: %d, Archive: %s\n", pack.Name, pack.Len(), humanize.Bytes(uint64(info.Size())))

	mismatched := 0
	for i, s := range pack.Skins {
		buf, err := texture.Decode(s.Texture)
		if err != nil {
			fmt.Printf("  Skin[%d] %s %q: %v\n", i, s.ID, s.Name, err)
			continue
		}
		detected := templates.DetectModel(buf)
		note := ""
		if detected != s.Model {
			note = fmt.Sprintf(" (texture looks %s)", detected)
			mismatched++
		}
		fmt.Printf("  Skin[%d] %s %q: %dx%d, %s, model=%s%s\n",
			i, s.ID, s.Name, buf.Size(), buf.Size(), humanize.Bytes(uint64(len(s.Texture))), s.Model, note)

		if !*verbose {
			continue
		}
		scale := uvmap.Scale(buf.Size())
		for _, layer := range []uvmap.Layer{uvmap.Base, uvmap.Overlay} {
			fmt.Printf("    --- %s layer coverage ---\n", layer)
			for _, p := range uvmap.Parts(layer, s.Model, scale) {
				opaque, total := coverage(buf, p)
				fmt.Printf("    %-16s %5d/%-5d %s\n", p.Name, opaque, total, humanize.FtoaWithDigits(percent(opaque, total), 1)+"%")
			}
		}
	}
	if mismatched > 0 {
		fmt.Printf("%d skin(s) declare a model that does not match the texture\n", mismatched)
	}
}

// coverage counts the opaque pixels over all six faces of p.
func coverage(buf *texture.Buffer, p uvmap.Part) (opaque, total int) {
	for _, f := range uvmap.Faces {
		px, err := buf.Region(p.FaceRect(f))
		if err != nil {
			continue
		}
		for _, c := range px {
			if c.A >= 128 {
				opaque++
			}
		}
		total += len(px)
	}
	return opaque, total
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
