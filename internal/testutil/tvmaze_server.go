package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Belphemur/ShowFinder/internal/config"
)

// FakeTVMaze is an httptest server answering the two TVmaze endpoints used by ShowFinder.
// Unknown queries and shows answer with an empty JSON array.
type FakeTVMaze struct {
	Server *httptest.Server

	mu       sync.Mutex
	searches map[string]string
	episodes map[int]string
	status   int
	block    chan struct{}

	requests atomic.Int64
}

// NewFakeTVMaze starts a fake API server that is closed when the test ends.
func NewFakeTVMaze(t testing.TB) *FakeTVMaze {
	t.Helper()
	f := &FakeTVMaze{
		searches: make(map[string]string),
		episodes: make(map[int]string),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// AddSearch registers the raw JSON returned for a query.
func (f *FakeTVMaze) AddSearch(query, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches[query] = body
}

// AddEpisodes registers the raw JSON returned for a show's episode list.
func (f *FakeTVMaze) AddEpisodes(showID int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.episodes[showID] = body
}

// FailWith makes every subsequent request answer with status.
func (f *FakeTVMaze) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Hold makes requests block until the returned release function is called.
func (f *FakeTVMaze) Hold() (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.block = ch
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			f.block = nil
			f.mu.Unlock()
			close(ch)
		})
	}
}

// Requests returns how many requests the server received.
func (f *FakeTVMaze) Requests() int64 {
	return f.requests.Load()
}

// Config returns a client configuration pointing both hosts at the fake server.
func (f *FakeTVMaze) Config() *config.Config {
	cfg := &config.Config{
		SearchHost:    f.Server.URL,
		EpisodesHost:  f.Server.URL,
		ClientTimeout: "10s",
		UserAgent:     "ShowFinder-Test",
	}
	return cfg
}

func (f *FakeTVMaze) serve(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)

	f.mu.Lock()
	block := f.block
	status := f.status
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-r.Context().Done():
			return
		}
	}

	if status != 0 {
		w.WriteHeader(status)
		return
	}

	body, ok := f.lookup(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (f *FakeTVMaze) lookup(r *http.Request) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path == "/search/shows" {
		if body, ok := f.searches[r.URL.Query().Get("q")]; ok {
			return body, true
		}
		return "[]", true
	}

	// /shows/{id}/episodes
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) == 3 && parts[0] == "shows" && parts[2] == "episodes" {
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", false
		}
		if body, ok := f.episodes[id]; ok {
			return body, true
		}
		return "[]", true
	}

	return "", false
}
