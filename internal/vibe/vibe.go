// Package vibe derives a vibe category from facial-expression likelihoods.
package vibe

import "fmt"

// Emotion names a facial-expression signal reported by the vision provider.
type Emotion string

const (
	Joy      Emotion = "joy"
	Sorrow   Emotion = "sorrow"
	Anger    Emotion = "anger"
	Surprise Emotion = "surprise"
)

// Signals maps emotions to their reported likelihood. Missing emotions read as Unknown.
type Signals map[Emotion]Likelihood

// Category is the vibe label used as a matching key against name records.
type Category string

const (
	Friendly Category = "friendly"
	Calm     Category = "calm"
	Cool     Category = "cool"
)

// Categories lists every vibe category in classification priority order.
var Categories = []Category{Friendly, Calm, Cool}

// Tag returns the label stored in a name record's vibe tag list.
func (c Category) Tag() string {
	return string(c)
}

// ParseCategory parses a vibe tag label.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown vibe category %q", s)
}

// Classify maps emotion likelihoods to exactly one category.
// Joy dominates sorrow, which dominates anger; Friendly is the default.
func Classify(signals Signals) Category {
	switch {
	case signals[Joy].High():
		return Friendly
	case signals[Sorrow].High():
		return Calm
	case signals[Anger].High():
		return Cool
	default:
		return Friendly
	}
}
