// Package funtranslations implements the upstream translation source
// backed by the FunTranslations API.
package funtranslations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/viac92/Pokedex-API/pkg/pokedex"
	"github.com/viac92/Pokedex-API/pkg/ratelimit"
)

// DefaultBaseURL is the public FunTranslations host.
const DefaultBaseURL = "https://api.funtranslations.com"

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "funtranslations_requests_total",
		Help: "Total FunTranslations requests by style and status",
	}, []string{"style", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "funtranslations_request_duration_seconds",
		Help:    "FunTranslations request duration in seconds by style",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"style"})
)

// Config holds the client configuration.
type Config struct {
	// BaseURL of the FunTranslations host (default: DefaultBaseURL).
	BaseURL string

	// Timeout for one upstream call (default: 10s).
	Timeout time.Duration

	// Tracker records observed quota state. Optional.
	Tracker *ratelimit.Tracker

	// Logger for upstream events.
	Logger zerolog.Logger
}

// Client translates text through FunTranslations.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracker    *ratelimit.Tracker
	logger     zerolog.Logger
}

// New creates a FunTranslations client.
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
		tracker:    cfg.Tracker,
		logger:     cfg.Logger,
	}
}

type translateRequest struct {
	Text string `json:"text"`
}

type translateResponse struct {
	Contents struct {
		Translated string `json:"translated"`
	} `json:"contents"`
}

// Translate sends text to the style endpoint. Quota exhaustion is
// reported as pokedex.ErrRateLimited; any other failure carries its own
// description and is collapsed by the orchestrator.
func (c *Client) Translate(ctx context.Context, text string, style pokedex.Style) (string, error) {
	body, err := json.Marshal(translateRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("encode translation request: %w", err)
	}

	endpoint := c.baseURL + "/translate/" + string(style)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues(string(style)).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(string(style), "network_error").Inc()
		c.logger.Error().Err(err).Str("style", string(style)).Msg("FunTranslations request failed")
		return "", fmt.Errorf("funtranslations request: %w", err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(string(style), fmt.Sprintf("%d", resp.StatusCode)).Inc()
	if c.tracker != nil {
		c.tracker.Observe(resp.StatusCode, resp.Header)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%w: funtranslations quota exhausted", pokedex.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("style", string(style)).Msg("FunTranslations error response")
		return "", fmt.Errorf("funtranslations status %d", resp.StatusCode)
	}

	var result translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode translation: %w", err)
	}

	// The upstream occasionally doubles spaces around sentence joins.
	translated := strings.ReplaceAll(result.Contents.Translated, "  ", " ")

	c.logger.Debug().Str("style", string(style)).Msg("Text translated")
	return translated, nil
}

var _ pokedex.TranslationSource = (*Client)(nil)
