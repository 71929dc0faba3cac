package batch

import (
	"encoding/json"
	"os"

	"bedrock-skin-editor/internal/skinpack"
)

// ManifestFile is the index written next to the previews.
const ManifestFile = "previews.json"

// ManifestEntry represents one skin in the output manifest.
type ManifestEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Geometry string `json:"geometry"`
	Image    string `json:"image,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Manifest lists the previews of one pack.
type Manifest struct {
	Pack  string          `json:"pack"`
	Skins []ManifestEntry `json:"skins"`
}

// WriteManifest writes previews.json for the results of Run.
func WriteManifest(path string, pack *skinpack.Pack, results []Result) error {
	m := Manifest{Pack: pack.Name, Skins: make([]ManifestEntry, 0, len(results))}
	for _, r := range results {
		e := ManifestEntry{ID: r.ID, Name: r.Name}
		if s, ok := pack.Get(r.ID); ok {
			e.Geometry = s.Model.Geometry()
		}
		if r.Success {
			e.Image = r.Image
		} else {
			e.Error = r.Error
		}
		m.Skins = append(m.Skins, e)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
