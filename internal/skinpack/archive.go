package skinpack

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"bedrock-skin-editor/internal/logging"
	"bedrock-skin-editor/internal/uvmap"
)

// Archive entry names.
const (
	ManifestFile  = "manifest.json"
	SkinsFile     = "skins.json"
	LangFile      = "texts/en_US.lang"
	LanguagesFile = "texts/languages.json"
)

var (
	ErrNoManifest = errors.New("skinpack: manifest.json missing")
	ErrNoSkins    = errors.New("skinpack: skins.json missing")
)

type manifestHeader struct {
	Name    string `json:"name"`
	Version [3]int `json:"version"`
	UUID    string `json:"uuid"`
}

type manifestModule struct {
	Type    string `json:"type"`
	Version [3]int `json:"version"`
	UUID    string `json:"uuid"`
}

// Manifest is manifest.json.
type Manifest struct {
	Header        manifestHeader   `json:"header"`
	Modules       []manifestModule `json:"modules"`
	FormatVersion int              `json:"format_version"`
}

// SkinEntry is one element of skins.json.
type SkinEntry struct {
	Type             string `json:"type"`
	Geometry         string `json:"geometry"`
	LocalizationName string `json:"localization_name"`
	Texture          string `json:"texture"`
}

// SkinsJSON is skins.json.
type SkinsJSON struct {
	Skins            []SkinEntry `json:"skins"`
	LocalizationName string      `json:"localization_name"`
	SerializeName    string      `json:"serialize_name"`
}

// ExportOptions supplies the clock and UUID source for Export.
type ExportOptions struct {
	Now     func() time.Time
	NewUUID Generator
}

func (o ExportOptions) withDefaults() ExportOptions {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewUUID == nil {
		o.NewUUID = DefaultGenerator
	}
	return o
}

// PackID returns the localisation key prefix used in skins.json and the
// .lang file.
func PackID(t time.Time) string {
	return fmt.Sprintf("skinpack%d", t.UnixMilli())
}

// Export writes p to w as a .mcpack zip and returns the pack ID used.
func Export(w io.Writer, p *Pack, opts ExportOptions) (string, error) {
	opts = opts.withDefaults()
	packID := PackID(opts.Now())

	manifest := Manifest{
		Header: manifestHeader{Name: p.Name, Version: [3]int{1, 0, 0}, UUID: opts.NewUUID()},
		Modules: []manifestModule{
			{Type: "skin_pack", Version: [3]int{1, 0, 0}, UUID: opts.NewUUID()},
		},
		FormatVersion: 1,
	}

	skins := SkinsJSON{
		Skins:            make([]SkinEntry, 0, len(p.Skins)),
		LocalizationName: packID,
		SerializeName:    packID,
	}
	lang := []string{fmt.Sprintf("skinpack.%s=%s", packID, CleanName(p.Name))}
	for _, s := range p.Skins {
		skins.Skins = append(skins.Skins, SkinEntry{
			Type:             "free",
			Geometry:         s.Model.Geometry(),
			LocalizationName: s.ID,
			Texture:          s.ID + ".png",
		})
		lang = append(lang, fmt.Sprintf("skin.%s.%s=%s", packID, s.ID, CleanName(s.Name)))
	}

	manifestJSON, err := marshalIndent(manifest)
	if err != nil {
		return "", err
	}
	skinsJSON, err := marshalIndent(skins)
	if err != nil {
		return "", err
	}

	zw := zip.NewWriter(w)
	files := []zipEntry{
		{ManifestFile, manifestJSON},
		{SkinsFile, skinsJSON},
		{LangFile, []byte(strings.Join(lang, "\n"))},
		{LanguagesFile, []byte(`["en_US"]`)},
	}
	for _, s := range p.Skins {
		files = append(files, zipEntry{s.ID + ".png", s.Texture})
	}
	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return "", fmt.Errorf("skinpack: create %s: %w", f.name, err)
		}
		if _, err := fw.Write(f.data); err != nil {
			return "", fmt.Errorf("skinpack: write %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("skinpack: close archive: %w", err)
	}

	logging.Logger().Debug("pack exported", "pack", p.Name, "id", packID, "skins", len(p.Skins))
	return packID, nil
}

// ExportFile writes p to path.
func ExportFile(path string, p *Pack, opts ExportOptions) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("skinpack: create %s: %w", path, err)
	}
	id, err := Export(f, p, opts)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("skinpack: close %s: %w", path, cerr)
	}
	return id, err
}

type zipEntry struct {
	name string
	data []byte
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("skinpack: encode json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

var langSkinLine = regexp.MustCompile(`^skin\.([^.]+)\.([^=]+)=(.+)$`)

// parseLang maps skin localisation keys to display names.
func parseLang(data []byte) map[string]string {
	names := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if m := langSkinLine.FindStringSubmatch(line); m != nil {
			names[m[2]] = strings.TrimSpace(m[3])
		}
	}
	return names
}

// Import reads a .mcpack archive. Skins get fresh IDs; entries whose
// texture is missing or invalid are skipped with a warning.
func Import(r io.ReaderAt, size int64) (*Pack, error) {
	return ImportWith(r, size, DefaultGenerator)
}

// ImportWith is Import with an explicit ID generator.
func ImportWith(r io.ReaderAt, size int64, gen Generator) (*Pack, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("skinpack: open archive: %w", err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	var manifest Manifest
	if err := readJSON(files, ManifestFile, &manifest, ErrNoManifest); err != nil {
		return nil, err
	}
	var skins SkinsJSON
	if err := readJSON(files, SkinsFile, &skins, ErrNoSkins); err != nil {
		return nil, err
	}

	names := map[string]string{}
	if f, ok := files[LangFile]; ok {
		data, err := readFile(f)
		if err != nil {
			return nil, err
		}
		names = parseLang(data)
	}

	log := logging.Logger()
	p := &Pack{Name: manifest.Header.Name, newID: gen}
	for _, e := range skins.Skins {
		f, ok := files[e.Texture]
		if !ok {
			log.Warn("skin texture missing", "texture", e.Texture)
			continue
		}
		tex, err := readFile(f)
		if err != nil {
			return nil, err
		}
		if _, err := Validate(tex); err != nil {
			log.Warn("skin texture invalid", "texture", e.Texture, "err", err)
			continue
		}
		name := names[e.LocalizationName]
		if name == "" {
			name = e.LocalizationName
		}
		p.Skins = append(p.Skins, Skin{
			ID:      shortID(gen),
			Name:    name,
			Texture: tex,
			Model:   uvmap.ModelFromGeometry(e.Geometry),
		})
	}
	log.Debug("pack imported", "pack", p.Name, "skins", len(p.Skins))
	return p, nil
}

// ImportFile reads a .mcpack from disk.
func ImportFile(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("skinpack: open %s: %w", path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("skinpack: stat %s: %w", path, err)
	}
	return Import(f, info.Size())
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("skinpack: open %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("skinpack: read %s: %w", f.Name, err)
	}
	return data, nil
}

func readJSON(files map[string]*zip.File, name string, v any, missing error) error {
	f, ok := files[name]
	if !ok {
		return missing
	}
	data, err := readFile(f)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("skinpack: parse %s: %w", name, err)
	}
	return nil
}
