// Package ratelimit tracks the FunTranslations quota as observed from
// responses. The public FunTranslations API allows only a handful of
// calls per hour; this package records what the upstream reports so the
// health endpoint and metrics can expose it.
//
// The tracker is strictly passive. It never blocks, delays, or retries
// a request: a rate-limited translation surfaces as a failed request,
// and the very next request goes upstream again.
package ratelimit

import "time"

// State is a snapshot of the last known upstream quota.
type State struct {
	// Remaining is the number of calls left in the current window, as
	// reported by the X-RateLimit-Remaining header. -1 when the
	// upstream has not reported a value yet.
	Remaining int `json:"remaining"`

	// Limit is the window size reported by X-RateLimit-Limit.
	// -1 when unknown.
	Limit int `json:"limit"`

	// ResetAt is when the current window ends, derived from the
	// Retry-After header of the last 429 response. Zero when unknown.
	ResetAt time.Time `json:"reset_at,omitzero"`

	// Limited reports whether the last observed response was a 429.
	Limited bool `json:"limited"`

	// LastUpdate is when the state was last refreshed from a response.
	LastUpdate time.Time `json:"last_update,omitzero"`
}

// Exhausted reports whether the upstream is known to be out of quota:
// the last response was a 429 and the reset time, if known, has not
// passed yet.
func (s State) Exhausted() bool {
	if !s.Limited {
		return false
	}
	if s.ResetAt.IsZero() {
		return true
	}
	return time.Now().Before(s.ResetAt)
}
