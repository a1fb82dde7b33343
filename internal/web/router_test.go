package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/services"
	"github.com/Belphemur/ShowFinder/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func batmanAPI(t *testing.T) *testutil.FakeTVMaze {
	t.Helper()
	api := testutil.NewFakeTVMaze(t)
	api.AddSearch("batman", testutil.GenerateSearchJSON([]testutil.ShowFixture{
		{ID: 1, Name: "Batman", Summary: testutil.Ptr("<p>The <b>caped</b> crusader</p>")},
		{ID: 2, Name: "Batman Beyond"},
	}))
	api.AddEpisodes(1, testutil.GenerateEpisodesJSON([]testutil.EpisodeFixture{
		{ID: 101, Name: "Pilot", Season: 1, Number: 1},
		{ID: 102, Name: "Second", Season: 1, Number: 2},
		{ID: 201, Name: "Return", Season: 2, Number: 1},
	}))
	return api
}

func newTestRouter(api *testutil.FakeTVMaze) *gin.Engine {
	c := client.NewClient(api.Config())
	return NewRouter(services.NewShowSearch(c), services.NewEpisodeList(c))
}

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func parsePage(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to parse page: %v", err)
	}
	return doc
}

func TestHealth(t *testing.T) {
	r := newTestRouter(testutil.NewFakeTVMaze(t))

	w := serve(r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestIndex_BlankPage(t *testing.T) {
	api := batmanAPI(t)
	r := newTestRouter(api)

	w := serve(r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML content type, got %q", ct)
	}

	doc := parsePage(t, w.Body.String())
	if doc.Find("#search-form").Length() != 1 {
		t.Error("Expected the search form")
	}
	if doc.Find("#shows-list").Children().Length() != 0 {
		t.Error("Expected an empty show list")
	}
	if _, hidden := doc.Find("#episodes-area").Attr("hidden"); !hidden {
		t.Error("Expected the episode area to be hidden")
	}
	if api.Requests() != 0 {
		t.Errorf("Expected no API request, got %d", api.Requests())
	}
}

func TestIndex_SearchAndEpisodes(t *testing.T) {
	r := newTestRouter(batmanAPI(t))

	w := serve(r, "/?q=batman&show=1")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	doc := parsePage(t, w.Body.String())
	cards := doc.Find("#shows-list > .Show")
	if cards.Length() != 2 {
		t.Fatalf("Expected 2 cards, got %d", cards.Length())
	}
	if cards.First().Find(".card-text b").Text() != "caped" {
		t.Error("Expected summary markup to be rendered")
	}
	if value, _ := doc.Find("#search-query").Attr("value"); value != "batman" {
		t.Errorf("Expected the query in the search field, got %q", value)
	}
	if _, hidden := doc.Find("#episodes-area").Attr("hidden"); hidden {
		t.Error("Expected the episode area to be visible")
	}
	if id, _ := doc.Find("#episodes-area").Attr("data-show-id"); id != "1" {
		t.Errorf("Expected the episode area to name show 1, got %q", id)
	}
	if n := doc.Find("#episodes-list > li").Length(); n != 3 {
		t.Errorf("Expected 3 episodes, got %d", n)
	}
}

func TestIndex_UnknownShowIsIgnored(t *testing.T) {
	r := newTestRouter(batmanAPI(t))

	doc := parsePage(t, serve(r, "/?q=batman&show=99").Body.String())
	if _, hidden := doc.Find("#episodes-area").Attr("hidden"); !hidden {
		t.Error("Expected the episode area to stay hidden")
	}
}

func TestAppScript(t *testing.T) {
	r := newTestRouter(testutil.NewFakeTVMaze(t))

	w := serve(r, "/static/app.js")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Errorf("Expected JavaScript content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "new WebSocket") {
		t.Error("Expected the page session script")
	}
}

func TestSearchShowsAPI(t *testing.T) {
	api := batmanAPI(t)
	r := newTestRouter(api)

	w := serve(r, "/api/shows?q=%20batman%20")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var shows []models.ShowSummary
	if err := json.Unmarshal(w.Body.Bytes(), &shows); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(shows) != 2 || shows[0].ID != 1 || shows[1].ID != 2 {
		t.Errorf("Expected shows 1 and 2 in order, got %+v", shows)
	}
	if shows[1].Image != models.PlaceholderImageURL {
		t.Errorf("Expected placeholder image, got %q", shows[1].Image)
	}
}

func TestSearchShowsAPI_EmptyQuery(t *testing.T) {
	api := batmanAPI(t)
	r := newTestRouter(api)

	for _, target := range []string{"/api/shows", "/api/shows?q=", "/api/shows?q=%20%20"} {
		if w := serve(r, target); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", target, w.Code)
		}
	}
	if api.Requests() != 0 {
		t.Errorf("Expected no API request, got %d", api.Requests())
	}
}

func TestSearchShowsAPI_UpstreamFailure(t *testing.T) {
	api := batmanAPI(t)
	api.FailWith(http.StatusServiceUnavailable)
	r := newTestRouter(api)

	w := serve(r, "/api/shows?q=batman")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Expected an empty JSON array, got %s", body)
	}
}

func TestListEpisodesAPI(t *testing.T) {
	r := newTestRouter(batmanAPI(t))

	w := serve(r, "/api/shows/1/episodes")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var episodes []models.EpisodeSummary
	if err := json.Unmarshal(w.Body.Bytes(), &episodes); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	want := []int{101, 102, 201}
	if len(episodes) != len(want) {
		t.Fatalf("Expected %d episodes, got %d", len(want), len(episodes))
	}
	for i, id := range want {
		if episodes[i].ID != id {
			t.Errorf("Episode %d: expected id %d, got %d", i, id, episodes[i].ID)
		}
	}
}

func TestListEpisodesAPI_BadID(t *testing.T) {
	api := batmanAPI(t)
	r := newTestRouter(api)

	for _, id := range []string{"abc", "0", "-3", "1.5"} {
		if w := serve(r, "/api/shows/"+id+"/episodes"); w.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected status 400, got %d", id, w.Code)
		}
	}
	if api.Requests() != 0 {
		t.Errorf("Expected no API request, got %d", api.Requests())
	}
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(testutil.NewFakeTVMaze(t))

	w := serve(r, "/health")
	if w.Header().Get(requestIDHeader) == "" {
		t.Error("Expected a generated request id")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("Expected the caller's request id, got %q", got)
	}
}

func TestSentryHubPerRequest(t *testing.T) {
	r := newTestRouter(testutil.NewFakeTVMaze(t))

	var hub *sentry.Hub
	r.GET("/hub", func(c *gin.Context) {
		hub = sentry.GetHubFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	serve(r, "/hub")
	if hub == nil {
		t.Fatal("Expected a hub on the request context")
	}
	if hub == sentry.CurrentHub() {
		t.Error("Expected a per-request hub, got the global one")
	}
}

func TestRecovery(t *testing.T) {
	r := newTestRouter(testutil.NewFakeTVMaze(t))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(r, "/panic")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(testutil.NewFakeTVMaze(t))

	if w := serve(r, "/nope"); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
