package batch

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"bedrock-skin-editor/internal/raster"
	"bedrock-skin-editor/internal/skinpack"
	"bedrock-skin-editor/internal/texture"

	"github.com/go-pdf/fpdf"
)

// SheetConfig controls the contact sheet layout. Lengths are in mm.
type SheetConfig struct {
	Columns    int
	Cell       float64
	RenderSize int
}

var defaultSheet = SheetConfig{Columns: 4, Cell: 45, RenderSize: 128}

// WriteSheet writes an A4 PDF with a labelled front preview of every skin.
// Skins whose texture does not decode get an empty cell with their name.
func WriteSheet(w io.Writer, title string, skins []skinpack.Skin, cfg SheetConfig) error {
	if cfg.Columns <= 0 {
		cfg.Columns = defaultSheet.Columns
	}
	if cfg.Cell <= 0 {
		cfg.Cell = defaultSheet.Cell
	}
	if cfg.RenderSize <= 0 {
		cfg.RenderSize = defaultSheet.RenderSize
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	left, top, _, bottom := pdf.GetMargins()
	_, pageH := pdf.GetPageSize()

	const labelH = 5.0
	const headerH = 12.0
	rowH := cfg.Cell + labelH
	x, y := left, pageH // forces a page on the first skin

	newPage := func() {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, headerH, tr(title), "", 1, "L", false, 0, "")
		x, y = left, top+headerH
	}

	for i, s := range skins {
		if i%cfg.Columns == 0 && i > 0 {
			x = left
			y += rowH
		}
		if y+rowH > pageH-bottom {
			newPage()
		}

		if tex, err := texture.Decode(s.Texture); err == nil {
			img := raster.RenderSkin(tex, raster.Options{Model: s.Model, Size: cfg.RenderSize})
			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				return fmt.Errorf("batch: encode sheet image %s: %w", s.ID, err)
			}
			opt := fpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(s.ID, opt, &buf)
			pdf.ImageOptions(s.ID, x, y, cfg.Cell, cfg.Cell, false, opt, 0, "")
		} else {
			pdf.SetDrawColor(200, 200, 200)
			pdf.Rect(x, y, cfg.Cell, cfg.Cell, "D")
		}

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(x, y+cfg.Cell)
		pdf.CellFormat(cfg.Cell, labelH, tr(s.Name), "", 0, "C", false, 0, "")
		x += cfg.Cell
	}

	if len(skins) == 0 {
		newPage()
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("batch: build sheet: %w", err)
	}
	return pdf.Output(w)
}
