package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	quotaRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "funtranslations_quota_remaining",
		Help: "Calls remaining in the current FunTranslations rate limit window (-1 when unknown)",
	})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "funtranslations_rate_limited_total",
		Help: "Total number of rate-limited FunTranslations responses observed",
	})
)

// Tracker records FunTranslations quota state from observed responses.
// All methods are safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	state  State
	logger zerolog.Logger
}

// NewTracker creates a tracker with no quota knowledge yet.
func NewTracker(logger zerolog.Logger) *Tracker {
	quotaRemaining.Set(-1)
	return &Tracker{
		state:  State{Remaining: -1, Limit: -1},
		logger: logger,
	}
}

// Observe updates the tracked state from one upstream response.
func (t *Tracker) Observe(statusCode int, headers http.Header) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.LastUpdate = now

	if remaining, ok := headerInt(headers, "X-RateLimit-Remaining"); ok {
		t.state.Remaining = remaining
		quotaRemaining.Set(float64(remaining))
	}
	if limit, ok := headerInt(headers, "X-RateLimit-Limit"); ok {
		t.state.Limit = limit
	}

	if statusCode == http.StatusTooManyRequests {
		t.state.Limited = true
		t.state.Remaining = 0
		quotaRemaining.Set(0)
		if seconds, ok := headerInt(headers, "Retry-After"); ok {
			t.state.ResetAt = now.Add(time.Duration(seconds) * time.Second)
		}
		rateLimitedTotal.Inc()

		t.logger.Warn().
			Time("reset_at", t.state.ResetAt).
			Msg("FunTranslations quota exhausted")
		return
	}

	// Any successful response means the window has quota again.
	t.state.Limited = false
	t.state.ResetAt = time.Time{}
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func headerInt(headers http.Header, key string) (int, bool) {
	value := headers.Get(key)
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
