package pokeapi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/viac92/Pokedex-API/internal/testutil"
	"github.com/viac92/Pokedex-API/pkg/pokedex"
)

func newTestClient(t *testing.T) (*Client, *testutil.MockPokeAPI) {
	t.Helper()

	mock := testutil.NewMockPokeAPI()
	t.Cleanup(mock.Close)

	client := New(Config{
		BaseURL: mock.URL(),
		Timeout: 5 * time.Second,
	})
	return client, mock
}

func TestFetchProfile_Success(t *testing.T) {
	client, mock := newTestClient(t)
	mock.AddSpecies(testutil.ZubatSpecies())

	raw, err := client.FetchProfile(context.Background(), "zubat")
	if err != nil {
		t.Fatalf("FetchProfile failed: %v", err)
	}

	if raw.Name != "zubat" {
		t.Errorf("Name = %q, want %q", raw.Name, "zubat")
	}
	if raw.Habitat != "cave" {
		t.Errorf("Habitat = %q, want %q", raw.Habitat, "cave")
	}
	if raw.IsLegendary {
		t.Error("IsLegendary = true, want false")
	}
	if len(raw.FlavorTexts) != 2 {
		t.Fatalf("FlavorTexts count = %d, want 2", len(raw.FlavorTexts))
	}
	if raw.FlavorTexts[0].Language != "zh-Hant" {
		t.Errorf("First flavor text language = %q, want zh-Hant (entry order preserved)", raw.FlavorTexts[0].Language)
	}
	if raw.FlavorTexts[1].Language != "en" {
		t.Errorf("Second flavor text language = %q, want en", raw.FlavorTexts[1].Language)
	}
}

func TestFetchProfile_LegendaryFlag(t *testing.T) {
	client, mock := newTestClient(t)
	mock.AddSpecies(testutil.MewtwoSpecies())

	raw, err := client.FetchProfile(context.Background(), "mewtwo")
	if err != nil {
		t.Fatalf("FetchProfile failed: %v", err)
	}
	if !raw.IsLegendary {
		t.Error("IsLegendary = false, want true")
	}
	if raw.Habitat != "rare" {
		t.Errorf("Habitat = %q, want %q", raw.Habitat, "rare")
	}
}

func TestFetchProfile_MissingHabitatIsEmpty(t *testing.T) {
	client, mock := newTestClient(t)
	mock.AddSpecies(testutil.Species{
		Name:        "arceus",
		FlavorTexts: []testutil.FlavorTextEntry{{Language: "en", Text: "A mythical creature."}},
		IsLegendary: true,
	})

	raw, err := client.FetchProfile(context.Background(), "arceus")
	if err != nil {
		t.Fatalf("FetchProfile failed: %v", err)
	}
	if raw.Habitat != "" {
		t.Errorf("Habitat = %q, want empty for null habitat", raw.Habitat)
	}
}

func TestFetchProfile_NotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.FetchProfile(context.Background(), "NoPokemon")
	if !errors.Is(err, pokedex.ErrNotFound) {
		t.Errorf("Expected pokedex.ErrNotFound for unknown name, got %v", err)
	}
}

func TestFetchProfile_ServerError(t *testing.T) {
	client, mock := newTestClient(t)
	mock.ForceStatus(500)

	_, err := client.FetchProfile(context.Background(), "pikachu")
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}
	// Non-404 failures are not ErrNotFound here; the orchestrator
	// collapses them at its boundary.
	if errors.Is(err, pokedex.ErrNotFound) {
		t.Errorf("500 response should not map to ErrNotFound in the client, got %v", err)
	}
}

func TestFetchProfile_ContextCancelled(t *testing.T) {
	client, mock := newTestClient(t)
	mock.AddSpecies(testutil.PikachuSpecies())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchProfile(ctx, "pikachu")
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}

func TestNew_Defaults(t *testing.T) {
	client := New(Config{})
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", client.httpClient.Timeout)
	}
}
