// Package pokeapi implements the upstream profile source backed by the
// public PokeAPI.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/viac92/Pokedex-API/pkg/pokedex"
)

// DefaultBaseURL is the public PokeAPI host.
const DefaultBaseURL = "https://pokeapi.co"

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_requests_total",
		Help: "Total PokeAPI requests by status",
	}, []string{"status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pokeapi_request_duration_seconds",
		Help:    "PokeAPI request duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5},
	})
)

// Config holds the client configuration.
type Config struct {
	// BaseURL of the PokeAPI host (default: DefaultBaseURL).
	BaseURL string

	// Timeout for one upstream call (default: 10s).
	Timeout time.Duration

	// Logger for upstream events.
	Logger zerolog.Logger
}

// Client fetches species data from PokeAPI.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a PokeAPI client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger,
	}
}

// speciesResponse is the subset of the pokemon-species resource the
// Pokedex needs.
type speciesResponse struct {
	Name              string `json:"name"`
	FlavorTextEntries []struct {
		FlavorText string `json:"flavor_text"`
		Language   struct {
			Name string `json:"name"`
		} `json:"language"`
	} `json:"flavor_text_entries"`
	Habitat *struct {
		Name string `json:"name"`
	} `json:"habitat"`
	IsLegendary bool `json:"is_legendary"`
}

// FetchProfile fetches the species resource for name. An unknown name
// is reported as pokedex.ErrNotFound; every other failure carries its
// own description and is collapsed by the orchestrator.
func (c *Client) FetchProfile(ctx context.Context, name string) (pokedex.RawProfile, error) {
	endpoint := c.baseURL + "/api/v2/pokemon-species/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pokedex.RawProfile{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Str("pokemon", name).Msg("PokeAPI request failed")
		return pokedex.RawProfile{}, fmt.Errorf("pokeapi request: %w", err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotFound {
		return pokedex.RawProfile{}, fmt.Errorf("%w: no species %q", pokedex.ErrNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("pokemon", name).Msg("PokeAPI error response")
		return pokedex.RawProfile{}, fmt.Errorf("pokeapi status %d for %q", resp.StatusCode, name)
	}

	var species speciesResponse
	if err := json.NewDecoder(resp.Body).Decode(&species); err != nil {
		return pokedex.RawProfile{}, fmt.Errorf("decode species %q: %w", name, err)
	}

	raw := pokedex.RawProfile{
		Name:        species.Name,
		FlavorTexts: make([]pokedex.FlavorText, 0, len(species.FlavorTextEntries)),
		IsLegendary: species.IsLegendary,
	}
	for _, entry := range species.FlavorTextEntries {
		raw.FlavorTexts = append(raw.FlavorTexts, pokedex.FlavorText{
			Language: entry.Language.Name,
			Text:     entry.FlavorText,
		})
	}
	if species.Habitat != nil {
		raw.Habitat = species.Habitat.Name
	}

	c.logger.Debug().Str("pokemon", name).Str("habitat", raw.Habitat).Msg("Species fetched")
	return raw, nil
}

var _ pokedex.ProfileSource = (*Client)(nil)
