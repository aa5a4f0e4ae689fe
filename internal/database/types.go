package database

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender is the gender category of a name record and the gender preference of a request.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderUnisex Gender = "U"
)

// Valid reports whether g is one of M, F or U.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderUnisex
}

// NameRecord is a recommendable name. Identifier has the form <slug>[_<variant>].
type NameRecord struct {
	ID         int64
	Identifier string
	Gender     Gender
	Unisex     bool   // independent of Gender, may disagree with it
	VibeTags   string // comma-separated vibe labels, e.g. "friendly,calm"
	Hangul     string // script form
	Romanized  string
	Meaning    string
}

// Vibes returns the record's vibe labels.
func (n *NameRecord) Vibes() []string {
	return ParseVibeTags(n.VibeTags)
}

// HasVibe reports whether the record is tagged with the given vibe label.
func (n *NameRecord) HasVibe(tag string) bool {
	return slices.Contains(n.Vibes(), tag)
}

// MatchesGender applies the gender predicate used for candidate search:
// Male and Female match the record's gender category exactly, Unisex matches the unisex flag.
func (n *NameRecord) MatchesGender(pref Gender) bool {
	if pref == GenderUnisex {
		return n.Unisex
	}
	return n.Gender == pref
}

// CompanionRecord is a public figure sharing a name's base identity.
type CompanionRecord struct {
	ID         int64
	Identifier string // base identity of the matching name records
	Name       string
	Category   string // profession or category text
	ImageURL   string
}

// RateEvent is a single admitted call recorded by the admission gate.
type RateEvent struct {
	ID        uuid.UUID
	Caller    string
	CreatedAt time.Time
}

// NameFilter selects candidate names.
type NameFilter struct {
	Vibe   string
	Gender Gender
}

// ParseVibeTags splits a delimited vibe membership string into trimmed, lowercased labels.
func ParseVibeTags(s string) []string {
	var tags []string
	for tag := range strings.SplitSeq(s, VibeTagSeparator) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinVibeTags builds the delimited vibe membership string stored with a name.
func JoinVibeTags(tags []string) string {
	var cleaned []string
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" && !slices.Contains(cleaned, tag) {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, VibeTagSeparator)
}
