package pokedex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/viac92/Pokedex-API/pkg/cache"
)

// Config holds the collaborators for a Service.
type Config struct {
	// Profiles fetches species data from the upstream profile API.
	Profiles ProfileSource

	// Translations translates descriptions via the upstream translation API.
	Translations TranslationSource

	// ProfileCache stores JSON-encoded profiles by name.
	// Defaults to an in-memory table.
	ProfileCache cache.Store

	// TranslationCache stores translated descriptions by name.
	// Defaults to an in-memory table.
	TranslationCache cache.Store

	// Logger for orchestration events. Defaults to a disabled logger.
	Logger zerolog.Logger
}

// Service orchestrates the two Pokedex flows. It consults the caches
// first, falls back to the upstream sources, and populates the caches
// on success. Failures are never cached, so a later call for the same
// name goes upstream again.
//
// A Service is safe for concurrent use; requests coordinate only
// through the cache tables, and no lock is held across an upstream
// call. Two concurrent cold requests for the same name may both go
// upstream; the last write wins, which is harmless because values for
// a name are stable.
type Service struct {
	profiles     ProfileSource
	translations TranslationSource
	profileCache cache.Store
	translated   cache.Store
	logger       zerolog.Logger
}

// New creates a Service.
func New(cfg Config) (*Service, error) {
	if cfg.Profiles == nil {
		return nil, fmt.Errorf("profile source is required")
	}
	if cfg.Translations == nil {
		return nil, fmt.Errorf("translation source is required")
	}
	if cfg.ProfileCache == nil {
		cfg.ProfileCache = cache.NewMemory("profiles")
	}
	if cfg.TranslationCache == nil {
		cfg.TranslationCache = cache.NewMemory("translations")
	}

	return &Service{
		profiles:     cfg.Profiles,
		translations: cfg.Translations,
		profileCache: cfg.ProfileCache,
		translated:   cfg.TranslationCache,
		logger:       cfg.Logger,
	}, nil
}

// GetProfile returns the canonical profile for name, from cache when
// warm. Every failure shape of the upstream source is reported as
// ErrNotFound; nothing is cached on failure.
func (s *Service) GetProfile(ctx context.Context, name string) (Profile, error) {
	if profile, ok := s.cachedProfile(ctx, name); ok {
		lookupsTotal.WithLabelValues(flowProfile, outcomeHit).Inc()
		s.logger.Debug().Str("pokemon", name).Bool("cache_hit", true).Msg("Profile served from cache")
		return profile, nil
	}

	raw, err := s.profiles.FetchProfile(ctx, name)
	if err != nil {
		upstreamCallsTotal.WithLabelValues("pokeapi", "error").Inc()
		lookupsTotal.WithLabelValues(flowProfile, outcomeNotFound).Inc()
		s.logger.Warn().Err(err).Str("pokemon", name).Msg("Profile fetch failed")
		if errors.Is(err, ErrNotFound) {
			return Profile{}, err
		}
		return Profile{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	upstreamCallsTotal.WithLabelValues("pokeapi", "ok").Inc()

	profile, err := deriveProfile(raw)
	if err != nil {
		lookupsTotal.WithLabelValues(flowProfile, outcomeNotFound).Inc()
		s.logger.Warn().Err(err).Str("pokemon", name).Msg("Species data incomplete")
		return Profile{}, err
	}

	s.storeProfile(ctx, name, profile)
	lookupsTotal.WithLabelValues(flowProfile, outcomeFetched).Inc()
	s.logger.Info().
		Str("pokemon", name).
		Str("habitat", profile.Habitat).
		Bool("is_legendary", profile.IsLegendary).
		Msg("Profile fetched and cached")

	return profile, nil
}

// GetTranslatedProfile returns the profile for name with its
// description replaced by a styled translation. The translation cache
// is keyed by name, so a previously translated name short-circuits
// without an upstream call. On translation failure the whole request
// fails; the untranslated profile is never returned as a fallback.
func (s *Service) GetTranslatedProfile(ctx context.Context, name string) (Profile, error) {
	profile, err := s.GetProfile(ctx, name)
	if err != nil {
		return Profile{}, err
	}

	if translated, ok := s.translated.Get(ctx, name); ok {
		lookupsTotal.WithLabelValues(flowTranslated, outcomeHit).Inc()
		s.logger.Debug().Str("pokemon", name).Bool("cache_hit", true).Msg("Translation served from cache")
		profile.Description = translated
		return profile, nil
	}

	style := SelectStyle(profile.Habitat, profile.IsLegendary)
	translated, err := s.translations.Translate(ctx, profile.Description, style)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrRateLimited) {
			outcome = "rate_limited"
		}
		upstreamCallsTotal.WithLabelValues("funtranslations", outcome).Inc()
		lookupsTotal.WithLabelValues(flowTranslated, outcomeTranslationFailed).Inc()
		s.logger.Warn().Err(err).Str("pokemon", name).Str("style", string(style)).Msg("Translation failed")
		if errors.Is(err, ErrTranslationFailed) {
			return Profile{}, err
		}
		return Profile{}, fmt.Errorf("%w: %w", ErrTranslationFailed, err)
	}
	upstreamCallsTotal.WithLabelValues("funtranslations", "ok").Inc()

	// Cache write failures degrade to an uncached success, never to a
	// failed request.
	if err := s.translated.Put(ctx, name, translated); err != nil {
		s.logger.Warn().Err(err).Str("pokemon", name).Msg("Failed to cache translation")
	}
	lookupsTotal.WithLabelValues(flowTranslated, outcomeFetched).Inc()
	s.logger.Info().Str("pokemon", name).Str("style", string(style)).Msg("Translation fetched and cached")

	profile.Description = translated
	return profile, nil
}

// cachedProfile decodes a cached profile. A corrupt entry is treated as
// a miss so the next fetch overwrites it.
func (s *Service) cachedProfile(ctx context.Context, name string) (Profile, bool) {
	data, ok := s.profileCache.Get(ctx, name)
	if !ok {
		return Profile{}, false
	}

	var profile Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		s.logger.Warn().Err(err).Str("pokemon", name).Msg("Corrupt cached profile, refetching")
		return Profile{}, false
	}
	return profile, true
}

func (s *Service) storeProfile(ctx context.Context, name string, profile Profile) {
	data, err := json.Marshal(profile)
	if err != nil {
		s.logger.Warn().Err(err).Str("pokemon", name).Msg("Failed to encode profile for cache")
		return
	}
	if err := s.profileCache.Put(ctx, name, string(data)); err != nil {
		s.logger.Warn().Err(err).Str("pokemon", name).Msg("Failed to cache profile")
	}
}
