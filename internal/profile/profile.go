// Package profile loads the profile variant's document: the card list and
// the personal card. The embedded default document is the base layer; an
// optional YAML file on disk overrides it field by field.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/contacts"
	"github.com/smileynet/contacts/internal/contact"
)

// Document is everything the profile variant renders.
type Document struct {
	Cards   []contact.Card
	Profile contact.Profile
}

// Sentinel validation errors.
var (
	ErrDuplicateID     = errors.New("profile: duplicate card id")
	ErrMissingID       = errors.New("profile: card id cannot be empty")
	ErrMultiplePrimary = errors.New("profile: more than one primary card")
)

// rawDocument mirrors Document but uses pointers to distinguish set vs unset.
type rawDocument struct {
	Contacts *[]contact.Card `yaml:"contacts"`
	Profile  *rawProfile     `yaml:"profile"`
}

type rawProfile struct {
	FullName *string           `yaml:"full_name"`
	Title    *string           `yaml:"title"`
	Bio      *string           `yaml:"bio"`
	Roles    *[]string         `yaml:"roles"`
	Socials  *[]contact.Social `yaml:"socials"`
}

// Defaults returns the embedded default document.
func Defaults() (Document, error) {
	var doc Document
	layer, err := readLayer(contacts.Defaults, contacts.ProfileFile)
	if err != nil {
		return Document{}, err
	}
	if layer != nil {
		doc.merge(layer)
	}
	return doc, nil
}

// Load returns the default document overridden by the YAML file at path.
// A missing or empty file yields the defaults. Unknown fields are rejected.
func Load(path string) (Document, error) {
	doc, err := Defaults()
	if err != nil {
		return Document{}, err
	}
	if path == "" {
		return doc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return Document{}, fmt.Errorf("profile: reading %s: %w", path, err)
	}
	layer, err := decode(path, data)
	if err != nil {
		return Document{}, err
	}
	if layer != nil {
		doc.merge(layer)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks card identity invariants: non-empty unique IDs and at most
// one self card.
func (d Document) Validate() error {
	seen := make(map[string]bool, len(d.Cards))
	primaries := 0
	for i, c := range d.Cards {
		if c.ID == "" {
			return fmt.Errorf("%w (card %d, %q)", ErrMissingID, i, c.Name)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = true
		if c.Primary() {
			primaries++
		}
	}
	if primaries > 1 {
		return fmt.Errorf("%w (%d)", ErrMultiplePrimary, primaries)
	}
	return nil
}

func readLayer(fsys fs.FS, name string) (*rawDocument, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("profile: reading %s: %w", name, err)
	}
	return decode(name, data)
}

func decode(name string, data []byte) (*rawDocument, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw rawDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile: parsing %s: %w", name, err)
	}
	return &raw, nil
}

// merge applies non-nil fields from a layer onto d.
func (d *Document) merge(layer *rawDocument) {
	if layer.Contacts != nil {
		d.Cards = append([]contact.Card(nil), (*layer.Contacts)...)
	}
	p := layer.Profile
	if p == nil {
		return
	}
	if p.FullName != nil {
		d.Profile.FullName = *p.FullName
	}
	if p.Title != nil {
		d.Profile.Title = *p.Title
	}
	if p.Bio != nil {
		d.Profile.Bio = *p.Bio
	}
	if p.Roles != nil {
		d.Profile.Roles = append([]string(nil), (*p.Roles)...)
	}
	if p.Socials != nil {
		d.Profile.Socials = append([]contact.Social(nil), (*p.Socials)...)
	}
}
