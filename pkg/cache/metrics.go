package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits tracks cache hits by table and backend.
	Hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokedex_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"table", "backend"},
	)

	// Misses tracks cache misses by table and backend.
	Misses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokedex_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"table", "backend"},
	)

	// Entries tracks the number of entries per in-memory table.
	Entries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pokedex_cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"table", "backend"},
	)

	// Errors tracks cache backend failures by table and operation.
	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokedex_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"table", "operation"},
	)
)
