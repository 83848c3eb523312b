// Package testutil provides mock upstream servers for testing.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// FlavorTextEntry is one localized description served by the mock.
type FlavorTextEntry struct {
	Language string
	Text     string
}

// Species defines the data the mock PokeAPI serves for one name.
type Species struct {
	Name        string
	FlavorTexts []FlavorTextEntry
	Habitat     string // empty means the species has no habitat (null in the payload)
	IsLegendary bool
}

// MockPokeAPI is a configurable stand-in for the PokeAPI species
// endpoint. Unknown names get a 404.
type MockPokeAPI struct {
	server *httptest.Server

	mu             sync.RWMutex
	species        map[string]Species
	requestCount   int
	requestsByName map[string]int
	forcedStatus   int
}

// NewMockPokeAPI creates a mock server with no species registered.
func NewMockPokeAPI() *MockPokeAPI {
	mock := &MockPokeAPI{
		species:        make(map[string]Species),
		requestsByName: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

// URL returns the mock server base URL.
func (m *MockPokeAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockPokeAPI) Close() {
	m.server.Close()
}

// AddSpecies registers a species payload.
func (m *MockPokeAPI) AddSpecies(s Species) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.species[s.Name] = s
}

// ForceStatus makes every subsequent request answer with the given
// status code and an empty body. Pass 0 to restore normal behavior.
func (m *MockPokeAPI) ForceStatus(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forcedStatus = status
}

// RequestCount returns the total number of requests served.
func (m *MockPokeAPI) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// RequestsFor returns the number of requests served for one name.
func (m *MockPokeAPI) RequestsFor(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestsByName[name]
}

func (m *MockPokeAPI) handle(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v2/pokemon-species/"), "/")

	m.mu.Lock()
	m.requestCount++
	m.requestsByName[name]++
	forced := m.forcedStatus
	species, ok := m.species[name]
	m.mu.Unlock()

	if forced != 0 {
		w.WriteHeader(forced)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`"Not Found"`))
		return
	}

	entries := make([]map[string]interface{}, 0, len(species.FlavorTexts))
	for _, entry := range species.FlavorTexts {
		entries = append(entries, map[string]interface{}{
			"flavor_text": entry.Text,
			"language":    map[string]string{"name": entry.Language},
		})
	}

	payload := map[string]interface{}{
		"name":                species.Name,
		"flavor_text_entries": entries,
		"is_legendary":        species.IsLegendary,
	}
	if species.Habitat != "" {
		payload["habitat"] = map[string]string{"name": species.Habitat}
	} else {
		payload["habitat"] = nil
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(payload)
}

// Canonical fixtures used across tests.

// PikachuSpecies is a common forest species.
func PikachuSpecies() Species {
	return Species{
		Name: "pikachu",
		FlavorTexts: []FlavorTextEntry{
			{Language: "en", Text: "When several of these POKéMON gather,\ntheir electricity could build and cause\flightning storms."},
		},
		Habitat: "forest",
	}
}

// MewtwoSpecies is a legendary species.
func MewtwoSpecies() Species {
	return Species{
		Name: "mewtwo",
		FlavorTexts: []FlavorTextEntry{
			{Language: "en", Text: "It was created by\na scientist after\nyears of horrific\fgene splicing and\nDNA engineering\nexperiments."},
		},
		Habitat:     "rare",
		IsLegendary: true,
	}
}

// ZubatSpecies is a cave species.
func ZubatSpecies() Species {
	return Species{
		Name: "zubat",
		FlavorTexts: []FlavorTextEntry{
			{Language: "zh-Hant", Text: "因為沒有眼珠所以看不見東西。"},
			{Language: "en", Text: "Forms colonies in\nperpetually dark places. Uses\nultrasonic waves to identify and\napproach targets."},
		},
		Habitat: "cave",
	}
}
