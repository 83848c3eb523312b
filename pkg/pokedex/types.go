// Package pokedex implements the request orchestration behind the
// Pokedex API: cache-or-fetch for creature profiles, the translation
// style routing rule, and the mapping of upstream failures to the two
// outcomes the API reports.
package pokedex

import "context"

// Profile is the canonical answer for one creature query. It is built
// once per successful upstream fetch and never mutated afterwards;
// caches hold copies, not shared state.
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Habitat     string `json:"habitat"`
	IsLegendary bool   `json:"is_legendary"`
}

// FlavorText is one localized description of a species as reported by
// the upstream profile source.
type FlavorText struct {
	Language string
	Text     string
}

// RawProfile is the untransformed species data returned by the upstream
// profile source. Habitat is empty when the species has none; the
// orchestrator treats that as an unrecoverable condition.
type RawProfile struct {
	Name        string
	FlavorTexts []FlavorText
	Habitat     string
	IsLegendary bool
}

// ProfileSource fetches species data by name from the upstream API.
type ProfileSource interface {
	FetchProfile(ctx context.Context, name string) (RawProfile, error)
}

// TranslationSource translates text into the requested style.
type TranslationSource interface {
	Translate(ctx context.Context, text string, style Style) (string, error)
}
