package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kozaktomas/namevibe/internal/identity"
	"github.com/kozaktomas/namevibe/internal/vibe"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML document loaded by the seed command.
//
//	names:
//	  - identifier: haneul_2
//	    gender: F
//	    unisex: true
//	    vibes: [friendly, calm]
//	    hangul: 하늘
//	    romanized: Haneul
//	    meaning: sky
//	companions:
//	  - identifier: haneul
//	    name: Kim Haneul
//	    category: actress
//	    image_url: https://example.com/haneul.jpg
type SeedFile struct {
	Names      []SeedName      `yaml:"names"`
	Companions []SeedCompanion `yaml:"companions"`
}

type SeedName struct {
	Identifier string   `yaml:"identifier"`
	Gender     Gender   `yaml:"gender"`
	Unisex     bool     `yaml:"unisex"`
	Vibes      []string `yaml:"vibes"`
	Hangul     string   `yaml:"hangul"`
	Romanized  string   `yaml:"romanized"`
	Meaning    string   `yaml:"meaning"`
}

type SeedCompanion struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	ImageURL   string `yaml:"image_url"`
}

// ParseSeed decodes and validates a seed document.
func ParseSeed(data []byte) (*SeedFile, error) {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks required fields and vibe labels, rejects duplicate name
// identifiers and companion identifiers carrying a variant suffix.
func (f *SeedFile) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(f.Names))
	for i, n := range f.Names {
		id := identity.Normalize(strings.TrimSpace(n.Identifier))
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("names[%d]: identifier is required", i))
		case seen[id]:
			errs = append(errs, fmt.Errorf("names[%d]: duplicate identifier %q", i, id))
		}
		seen[id] = true
		if !n.Gender.Valid() {
			errs = append(errs, fmt.Errorf("names[%d]: gender must be M, F or U, got %q", i, n.Gender))
		}
		for _, tag := range ParseVibeTags(strings.Join(n.Vibes, VibeTagSeparator)) {
			if _, err := vibe.ParseCategory(tag); err != nil {
				errs = append(errs, fmt.Errorf("names[%d]: %w", i, err))
			}
		}
	}
	for i, c := range f.Companions {
		id := strings.TrimSpace(c.Identifier)
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("companions[%d]: identifier is required", i))
		case identity.HasVariant(id):
			errs = append(errs, fmt.Errorf("companions[%d]: identifier %q must be a base identity without a variant suffix", i, id))
		}
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Errorf("companions[%d]: name is required", i))
		}
	}
	return errors.Join(errs...)
}

// Len is the number of records the file upserts.
func (f *SeedFile) Len() int {
	return len(f.Names) + len(f.Companions)
}

// Record converts the entry into a NameRecord with an NFC identifier.
func (n SeedName) Record() NameRecord {
	return NameRecord{
		Identifier: identity.Normalize(strings.TrimSpace(n.Identifier)),
		Gender:     n.Gender,
		Unisex:     n.Unisex,
		VibeTags:   JoinVibeTags(n.Vibes),
		Hangul:     n.Hangul,
		Romanized:  n.Romanized,
		Meaning:    n.Meaning,
	}
}

// Record converts the entry into a CompanionRecord with an NFC identifier.
func (c SeedCompanion) Record() CompanionRecord {
	return CompanionRecord{
		Identifier: identity.Normalize(strings.TrimSpace(c.Identifier)),
		Name:       strings.TrimSpace(c.Name),
		Category:   c.Category,
		ImageURL:   c.ImageURL,
	}
}

// Apply upserts every name and then every companion. progress, if non-nil,
// is called once per record written. It stops at the first store error.
func (f *SeedFile) Apply(ctx context.Context, w DatasetWriter, progress func()) error {
	for _, n := range f.Names {
		if _, err := w.UpsertName(ctx, n.Record()); err != nil {
			return err
		}
		if progress != nil {
			progress()
		}
	}
	for _, c := range f.Companions {
		if _, err := w.UpsertCompanion(ctx, c.Record()); err != nil {
			return err
		}
		if progress != nil {
			progress()
		}
	}
	return nil
}
