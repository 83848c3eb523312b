// Command pokedex-api serves the Pokedex HTTP API: canonical creature
// profiles on /pokemon/{name} and fun-translated ones on
// /translated/{name}.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/viac92/Pokedex-API/internal/config"
	"github.com/viac92/Pokedex-API/pkg/cache"
	"github.com/viac92/Pokedex-API/pkg/funtranslations"
	"github.com/viac92/Pokedex-API/pkg/logging"
	"github.com/viac92/Pokedex-API/pkg/pokeapi"
	"github.com/viac92/Pokedex-API/pkg/pokedex"
	"github.com/viac92/Pokedex-API/pkg/ratelimit"
)

// requestTimeout bounds one inbound request end to end, including both
// upstream calls on a fully cold name.
const requestTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.Setup(logging.Config{})
		fallback.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Setup(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger := logging.NewLogger("server")

	profileCache, translationCache, err := buildCaches(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up cache backend")
	}

	tracker := ratelimit.NewTracker(logging.NewLogger("funtranslations"))

	service, err := pokedex.New(pokedex.Config{
		Profiles: pokeapi.New(pokeapi.Config{
			BaseURL: cfg.PokeAPIBaseURL,
			Timeout: cfg.UpstreamTimeout,
			Logger:  logging.NewLogger("pokeapi"),
		}),
		Translations: funtranslations.New(funtranslations.Config{
			BaseURL: cfg.FunTranslationsBaseURL,
			Timeout: cfg.UpstreamTimeout,
			Tracker: tracker,
			Logger:  logging.NewLogger("funtranslations"),
		}),
		ProfileCache:     profileCache,
		TranslationCache: translationCache,
		Logger:           logging.NewLogger("pokedex"),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Pokedex service")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /pokemon/{name}", pokemonHandler(service))
	mux.HandleFunc("GET /translated/{name}", translatedHandler(service))
	mux.HandleFunc("GET /health", healthHandler(tracker))
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Str("cache_backend", cfg.CacheBackend).Msg("Starting Pokedex API")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Shutdown failed")
	}
}

// buildCaches creates the two cache tables for the configured backend.
func buildCaches(cfg config.Config, logger zerolog.Logger) (cache.Store, cache.Store, error) {
	if cfg.CacheBackend == config.CacheBackendMemory {
		return cache.NewMemory("profiles"), cache.NewMemory("translations"), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, nil, err
	}
	logger.Info().Str("redis", opts.Addr).Msg("Connected to Redis")

	cacheLog := logging.NewLogger("cache")
	return cache.NewRedis(client, "profiles", cacheLog), cache.NewRedis(client, "translations", cacheLog), nil
}

type errorBody struct {
	Error string `json:"error"`
}

func pokemonHandler(service *pokedex.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		profile, err := service.GetProfile(ctx, r.PathValue("name"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "Pokemon not found"})
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func translatedHandler(service *pokedex.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		profile, err := service.GetTranslatedProfile(ctx, r.PathValue("name"))
		if err != nil {
			if errors.Is(err, pokedex.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorBody{Error: "Pokemon not found"})
				return
			}
			writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "Translation failed"})
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func healthHandler(tracker *ratelimit.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":            "ok",
			"translation_quota": tracker.Snapshot(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger := logging.NewLogger("server")
		logger.Error().Err(err).Msg("Failed to write response")
	}
}
