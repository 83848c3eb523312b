package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/viac92/Pokedex-API/pkg/pokedex"
	"github.com/viac92/Pokedex-API/pkg/ratelimit"
)

type stubProfiles struct {
	profiles map[string]pokedex.RawProfile
}

func (s *stubProfiles) FetchProfile(_ context.Context, name string) (pokedex.RawProfile, error) {
	raw, ok := s.profiles[name]
	if !ok {
		return pokedex.RawProfile{}, fmt.Errorf("%w: no species %q", pokedex.ErrNotFound, name)
	}
	return raw, nil
}

type stubTranslator struct {
	err error
}

func (s *stubTranslator) Translate(_ context.Context, text string, style pokedex.Style) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("%s, translated by %s.", text, style), nil
}

func newTestService(t *testing.T, translatorErr error) *pokedex.Service {
	t.Helper()

	service, err := pokedex.New(pokedex.Config{
		Profiles: &stubProfiles{profiles: map[string]pokedex.RawProfile{
			"pikachu": {
				Name: "pikachu",
				FlavorTexts: []pokedex.FlavorText{
					{Language: "en", Text: "When several of these POKéMON gather, their electricity could build and cause lightning storms."},
				},
				Habitat: "forest",
			},
		}},
		Translations: &stubTranslator{err: translatorErr},
	})
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return service
}

func doRequest(handler http.HandlerFunc, name string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/", nil)
	req.SetPathValue("name", name)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestPokemonHandler_OK(t *testing.T) {
	handler := pokemonHandler(newTestService(t, nil))

	w := doRequest(handler, "pikachu")
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Body is not JSON: %v", err)
	}
	if body["name"] != "pikachu" {
		t.Errorf("name = %v", body["name"])
	}
	if body["habitat"] != "forest" {
		t.Errorf("habitat = %v", body["habitat"])
	}
	if body["is_legendary"] != false {
		t.Errorf("is_legendary = %v", body["is_legendary"])
	}
	if body["description"] != "When several of these POKéMON gather, their electricity could build and cause lightning storms." {
		t.Errorf("description = %v", body["description"])
	}
}

func TestPokemonHandler_NotFound(t *testing.T) {
	handler := pokemonHandler(newTestService(t, nil))

	w := doRequest(handler, "NoPokemon")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Status = %d, want 404", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Pokemon not found"}` {
		t.Errorf("Body = %s", got)
	}
}

func TestTranslatedHandler_OK(t *testing.T) {
	handler := translatedHandler(newTestService(t, nil))

	w := doRequest(handler, "pikachu")
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Body is not JSON: %v", err)
	}
	description, _ := body["description"].(string)
	if !strings.Contains(description, "translated by shakespeare") {
		t.Errorf("description = %q, want shakespeare translation", description)
	}
	if body["name"] != "pikachu" || body["habitat"] != "forest" {
		t.Errorf("Non-description fields changed: %v", body)
	}
}

func TestTranslatedHandler_NotFound(t *testing.T) {
	handler := translatedHandler(newTestService(t, nil))

	w := doRequest(handler, "NoPokemon")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Status = %d, want 404", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Pokemon not found"}` {
		t.Errorf("Body = %s", got)
	}
}

func TestTranslatedHandler_TranslationFailure(t *testing.T) {
	handler := translatedHandler(newTestService(t, fmt.Errorf("funtranslations: %w", pokedex.ErrRateLimited)))

	w := doRequest(handler, "pikachu")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Status = %d, want 429", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Translation failed"}` {
		t.Errorf("Body = %s", got)
	}
}

func TestHealthHandler(t *testing.T) {
	tracker := ratelimit.NewTracker(zerolog.Nop())
	handler := healthHandler(tracker)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Body is not JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if _, ok := body["translation_quota"]; !ok {
		t.Error("Expected translation_quota in health payload")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	// Creating a service registers all promauto metrics.
	newTestService(t, nil)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "# HELP") || !strings.Contains(body, "# TYPE") {
		t.Error("Expected Prometheus format metrics output")
	}
	if !strings.Contains(body, "funtranslations_quota_remaining") {
		t.Error("Expected funtranslations_quota_remaining in metrics output")
	}
}
