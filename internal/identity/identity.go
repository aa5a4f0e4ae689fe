// Package identity maps name-record identifiers to the base identity shared
// with their companion records.
package identity

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// variantSuffix matches the numeric variant suffix such as "_01" at the end of an
// identifier. Stacked suffixes ("_01_02") are matched together so Base is idempotent.
var variantSuffix = regexp.MustCompile(`(?:_[0-9]+)+$`)

// Base returns the identifier with any trailing "_<digits>" variant suffix removed
// (e.g., "jisoo_지수_01" -> "jisoo_지수").
// Identifiers are NFC-normalized first so decomposed Hangul from clients or
// imports groups with the composed form stored in the dataset.
// Both the recommendation path and the shared-result path must use this function.
func Base(identifier string) string {
	return variantSuffix.ReplaceAllString(Normalize(identifier), "")
}

// Normalize returns the NFC form of an identifier. Every identifier written to the
// dataset goes through it so stored keys compare equal to Base output.
func Normalize(identifier string) string {
	return norm.NFC.String(identifier)
}

// HasVariant reports whether the identifier carries a numeric variant suffix.
func HasVariant(identifier string) bool {
	return variantSuffix.MatchString(Normalize(identifier))
}
