package vibe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Likelihood is the 5-level ordinal a vision provider reports per emotion.
type Likelihood int

const (
	Unknown Likelihood = iota
	VeryUnlikely
	Unlikely
	Possible
	Likely
	VeryLikely
)

var likelihoodNames = map[Likelihood]string{
	Unknown:      "UNKNOWN",
	VeryUnlikely: "VERY_UNLIKELY",
	Unlikely:     "UNLIKELY",
	Possible:     "POSSIBLE",
	Likely:       "LIKELY",
	VeryLikely:   "VERY_LIKELY",
}

func (l Likelihood) String() string {
	if name, ok := likelihoodNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Likelihood(%d)", int(l))
}

// High reports whether the likelihood is Likely or VeryLikely.
func (l Likelihood) High() bool {
	return l == Likely || l == VeryLikely
}

// ParseLikelihood parses provider likelihood names. Matching is case-insensitive and
// accepts spaces or dashes in place of underscores ("very likely", "Very-Likely").
func ParseLikelihood(s string) (Likelihood, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for l, name := range likelihoodNames {
		if name == key {
			return l, nil
		}
	}
	return Unknown, fmt.Errorf("unknown likelihood %q", s)
}

// MarshalJSON encodes the likelihood by name.
func (l Likelihood) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a likelihood name. Unrecognized names decode to Unknown.
func (l *Likelihood) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("likelihood must be a string: %w", err)
	}
	parsed, err := ParseLikelihood(s)
	if err != nil {
		*l = Unknown
		return nil
	}
	*l = parsed
	return nil
}
