package pokedex

import (
	"fmt"
	"strings"
)

// englishFlavorText returns the first flavor text tagged exactly "en".
// If none matches the description is the empty string; this fallback is
// part of the API contract and must not be replaced with a best-match
// or locale-fallback lookup.
func englishFlavorText(entries []FlavorText) string {
	for _, entry := range entries {
		if entry.Language == "en" {
			return entry.Text
		}
	}
	return ""
}

// normalizeDescription replaces the newline and form-feed characters
// that upstream flavor texts carry with plain spaces and collapses the
// doubled spaces that replacement can produce, so descriptions are
// always single-line.
func normalizeDescription(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\f", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

// deriveProfile builds the canonical Profile from raw species data.
// A species without a habitat cannot be answered and is reported as
// not found.
func deriveProfile(raw RawProfile) (Profile, error) {
	if raw.Habitat == "" {
		return Profile{}, fmt.Errorf("%w: species %q has no habitat", ErrNotFound, raw.Name)
	}

	return Profile{
		Name:        raw.Name,
		Description: normalizeDescription(englishFlavorText(raw.FlavorTexts)),
		Habitat:     raw.Habitat,
		IsLegendary: raw.IsLegendary,
	}, nil
}
