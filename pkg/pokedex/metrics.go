package pokedex

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokedex_lookups_total",
		Help: "Total Pokedex lookups by flow and outcome",
	}, []string{"flow", "outcome"})

	upstreamCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokedex_upstream_calls_total",
		Help: "Total upstream calls issued by the orchestrator, by source and outcome",
	}, []string{"source", "outcome"})
)

// Label values for lookupsTotal.
const (
	flowProfile    = "profile"
	flowTranslated = "translated"

	outcomeHit               = "cache_hit"
	outcomeFetched           = "fetched"
	outcomeNotFound          = "not_found"
	outcomeTranslationFailed = "translation_failed"
)
