package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/testutil"
)

func TestClient_SearchShows(t *testing.T) {
	api := testutil.NewFakeTVMaze(t)
	api.AddSearch("batman", testutil.GenerateSearchJSON([]testutil.ShowFixture{
		{ID: 1, Name: "Batman", Summary: testutil.Ptr("<p>Gotham.</p>"), Image: &testutil.ImageFixture{Medium: "http://x/a.png"}},
		{ID: 2, Name: "Batman Beyond"},
	}))

	c := NewClient(api.Config())
	result := c.SearchShows(context.Background(), "batman")

	if !result.OK() {
		t.Fatalf("SearchShows failed: %v", result.Err)
	}

	expected := []models.ShowSummary{
		{ID: 1, Name: "Batman", Summary: "<p>Gotham.</p>", Image: "http://x/a.png"},
		{ID: 2, Name: "Batman Beyond", Summary: "", Image: models.PlaceholderImageURL},
	}
	if len(result.Value) != len(expected) {
		t.Fatalf("Expected %d shows, got %d", len(expected), len(result.Value))
	}
	for i, want := range expected {
		if result.Value[i] != want {
			t.Errorf("Show %d: expected %+v, got %+v", i, want, result.Value[i])
		}
	}
	if api.Requests() != 1 {
		t.Errorf("Expected exactly 1 request, got %d", api.Requests())
	}
}

func TestClient_SearchShows_ResultCountMatchesWrappers(t *testing.T) {
	api := testutil.NewFakeTVMaze(t)

	var fixtures []testutil.ShowFixture
	for i := 1; i <= 10; i++ {
		fixture := testutil.ShowFixture{ID: i, Name: "Show"}
		if i%2 == 0 {
			fixture.Image = &testutil.ImageFixture{Medium: "http://x/img.png"}
		} else if i%3 == 0 {
			fixture.Image = &testutil.ImageFixture{Original: "http://x/original-only.png"}
		}
		fixtures = append(fixtures, fixture)
	}
	api.AddSearch("show", testutil.GenerateSearchJSON(fixtures))

	result := NewClient(api.Config()).SearchShows(context.Background(), "show")
	if !result.OK() {
		t.Fatalf("SearchShows failed: %v", result.Err)
	}
	if len(result.Value) != len(fixtures) {
		t.Fatalf("Expected %d shows, got %d", len(fixtures), len(result.Value))
	}
	for i, show := range result.Value {
		if show.Image == "" {
			t.Errorf("Show %d has an empty image", i)
		}
		if show.ID != fixtures[i].ID {
			t.Errorf("Show %d: expected ID %d, got %d", i, fixtures[i].ID, show.ID)
		}
	}
}

func TestClient_SearchShows_EscapesQuery(t *testing.T) {
	var gotQuery, gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	c := NewClient(&config.Config{
		SearchHost:    server.URL + "/",
		ClientTimeout: "10s",
		UserAgent:     "ShowFinder-Test",
	})

	query := "law & order: svu?"
	result := c.SearchShows(context.Background(), query)
	if !result.OK() {
		t.Fatalf("SearchShows failed: %v", result.Err)
	}
	if len(result.Value) != 0 {
		t.Errorf("Expected no shows, got %d", len(result.Value))
	}
	if gotQuery != query {
		t.Errorf("Expected query %q to reach the server, got %q", query, gotQuery)
	}
	if gotUserAgent != "ShowFinder-Test" {
		t.Errorf("Expected configured User-Agent, got %q", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Errorf("Expected Accept application/json, got %q", gotAccept)
	}
}

func TestClient_ListEpisodes(t *testing.T) {
	api := testutil.NewFakeTVMaze(t)
	api.AddEpisodes(1, testutil.GenerateEpisodesJSON([]testutil.EpisodeFixture{
		{ID: 101, Name: "On Leather Wings", Season: 1, Number: 1},
		{ID: 102, Name: "Christmas with the Joker", Season: 1, Number: 2},
		{ID: 201, Name: "Sideshow", Season: 2, Number: 1},
	}))

	result := NewClient(api.Config()).ListEpisodes(context.Background(), 1)
	if !result.OK() {
		t.Fatalf("ListEpisodes failed: %v", result.Err)
	}

	expected := []models.EpisodeSummary{
		{ID: 101, Name: "On Leather Wings", Season: 1, Number: 1},
		{ID: 102, Name: "Christmas with the Joker", Season: 1, Number: 2},
		{ID: 201, Name: "Sideshow", Season: 2, Number: 1},
	}
	if len(result.Value) != len(expected) {
		t.Fatalf("Expected %d episodes, got %d", len(expected), len(result.Value))
	}
	for i, want := range expected {
		if result.Value[i] != want {
			t.Errorf("Episode %d: expected %+v, got %+v", i, want, result.Value[i])
		}
	}
}

func TestClient_SeparateHosts(t *testing.T) {
	search := testutil.NewFakeTVMaze(t)
	episodes := testutil.NewFakeTVMaze(t)
	episodes.AddEpisodes(5, testutil.GenerateEpisodesJSON([]testutil.EpisodeFixture{{ID: 1, Name: "a", Season: 1, Number: 1}}))

	cfg := search.Config()
	cfg.EpisodesHost = episodes.Server.URL

	c := NewClient(cfg)
	_ = c.SearchShows(context.Background(), "x")
	result := c.ListEpisodes(context.Background(), 5)

	if !result.OK() || len(result.Value) != 1 {
		t.Fatalf("Expected one episode from the episodes host, got %+v", result)
	}
	if search.Requests() != 1 || episodes.Requests() != 1 {
		t.Errorf("Expected one request per host, got search=%d episodes=%d", search.Requests(), episodes.Requests())
	}
}

func TestHostOrDefault(t *testing.T) {
	if got := hostOrDefault(""); got != config.DefaultAPIHost {
		t.Errorf("Expected default host, got %q", got)
	}
	if got := hostOrDefault("http://example.com//"); got != "http://example.com" {
		t.Errorf("Expected trailing slashes to be trimmed, got %q", got)
	}
}
