// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Cache backend names accepted in CACHE_BACKEND.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config is the full service configuration.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:"0.0.0.0:3030"`

	// PokeAPIBaseURL is the PokeAPI host.
	PokeAPIBaseURL string `env:"POKEAPI_BASE_URL" envDefault:"https://pokeapi.co"`

	// FunTranslationsBaseURL is the FunTranslations host.
	FunTranslationsBaseURL string `env:"FUNTRANSLATIONS_BASE_URL" envDefault:"https://api.funtranslations.com"`

	// UpstreamTimeout bounds one upstream HTTP call.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`

	// LogLevel is the minimum log level.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogPretty switches to human-readable console logs.
	LogPretty bool `env:"LOG_PRETTY" envDefault:"false"`

	// CacheBackend selects the cache store: "memory" or "redis".
	CacheBackend string `env:"CACHE_BACKEND" envDefault:"memory"`

	// RedisURL is the Redis connection URL, used when CacheBackend is "redis".
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is read first when present; real environment
// variables take precedence over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.CacheBackend != CacheBackendMemory && cfg.CacheBackend != CacheBackendRedis {
		return Config{}, fmt.Errorf("invalid CACHE_BACKEND %q (want %q or %q)",
			cfg.CacheBackend, CacheBackendMemory, CacheBackendRedis)
	}

	return cfg, nil
}
