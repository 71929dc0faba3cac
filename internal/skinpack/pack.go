// Package skinpack models a Bedrock skin pack and reads and writes it as a
// .mcpack archive.
package skinpack

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"bedrock-skin-editor/internal/uvmap"

	"golang.org/x/text/unicode/norm"
)

// DefaultPackName names packs created without one.
const DefaultPackName = "Skin Pack"

var ErrSkinNotFound = errors.New("skinpack: skin not found")

// Skin is one entry of a pack. Texture holds PNG bytes.
type Skin struct {
	ID      string
	Name    string
	Texture []byte
	Model   uvmap.Model
}

// Pack is an ordered list of skins under a display name.
type Pack struct {
	Name  string
	Skins []Skin

	newID Generator
}

// NewPack creates an empty pack.
func NewPack(name string) *Pack {
	if strings.TrimSpace(name) == "" {
		name = DefaultPackName
	}
	return &Pack{Name: CleanName(name), newID: DefaultGenerator}
}

// WithGenerator sets the ID source for new skins.
func (p *Pack) WithGenerator(gen Generator) *Pack {
	p.newID = gen
	return p
}

func (p *Pack) generator() Generator {
	if p.newID == nil {
		return DefaultGenerator
	}
	return p.newID
}

// CleanName NFC-normalises a display name and folds line breaks into
// spaces so it fits on one .lang line.
func CleanName(s string) string {
	s = norm.NFC.String(s)
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.TrimSpace(s)
}

// Len returns the number of skins.
func (p *Pack) Len() int { return len(p.Skins) }

func (p *Pack) index(id string) int {
	return slices.IndexFunc(p.Skins, func(s Skin) bool { return s.ID == id })
}

// Get returns the skin with the given ID.
func (p *Pack) Get(id string) (Skin, bool) {
	i := p.index(id)
	if i < 0 {
		return Skin{}, false
	}
	return p.Skins[i], true
}

// Add validates texture and appends a new skin with a fresh ID.
func (p *Pack) Add(name string, texture []byte, model uvmap.Model) (Skin, error) {
	if _, err := Validate(texture); err != nil {
		return Skin{}, fmt.Errorf("skinpack: add %q: %w", name, err)
	}
	s := Skin{
		ID:      shortID(p.generator()),
		Name:    CleanName(name),
		Texture: texture,
		Model:   model,
	}
	p.Skins = append(p.Skins, s)
	return s, nil
}

// AddSkins appends skins as they are, keeping their IDs.
func (p *Pack) AddSkins(skins ...Skin) {
	p.Skins = append(p.Skins, skins...)
}

// Remove deletes a skin. It reports whether the skin existed.
func (p *Pack) Remove(id string) bool {
	i := p.index(id)
	if i < 0 {
		return false
	}
	p.Skins = slices.Delete(p.Skins, i, i+1)
	return true
}

func (p *Pack) update(id string, fn func(*Skin)) error {
	i := p.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSkinNotFound, id)
	}
	fn(&p.Skins[i])
	return nil
}

// Rename changes a skin's display name.
func (p *Pack) Rename(id, name string) error {
	return p.update(id, func(s *Skin) { s.Name = CleanName(name) })
}

// SetModel changes a skin's model variant.
func (p *Pack) SetModel(id string, model uvmap.Model) error {
	return p.update(id, func(s *Skin) { s.Model = model })
}

// SetTexture replaces a skin's texture after validating it.
func (p *Pack) SetTexture(id string, texture []byte) error {
	if _, err := Validate(texture); err != nil {
		return fmt.Errorf("skinpack: set texture %s: %w", id, err)
	}
	return p.update(id, func(s *Skin) { s.Texture = texture })
}

// SetName renames the pack.
func (p *Pack) SetName(name string) {
	p.Name = CleanName(name)
}

// Move shifts the skin at index from to index to.
func (p *Pack) Move(from, to int) error {
	n := len(p.Skins)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("skinpack: move %d -> %d out of range [0,%d)", from, to, n)
	}
	s := p.Skins[from]
	p.Skins = slices.Delete(p.Skins, from, from+1)
	p.Skins = slices.Insert(p.Skins, to, s)
	return nil
}
