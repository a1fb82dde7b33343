// Package widget implements a page session: the server-side page document, the
// two display pipelines wired to it, and the events that trigger them.
package widget

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/dom"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/services"
)

//go:embed assets/index.html
var pageHTML string

// Page element selectors.
const (
	searchQuerySelector  = "#search-query"
	showsListSelector    = "#shows-list"
	episodesAreaSelector = "#episodes-area"
	episodesListSelector = "#episodes-list"
	showCardSelector     = ".Show"
	showIDAttr           = "data-show-id"
)

// State is the visible part of the page.
type State int

const (
	// SearchVisible: the episode area is hidden.
	SearchVisible State = iota
	// EpisodesVisible: the episode area is shown.
	EpisodesVisible
)

func (s State) String() string {
	switch s {
	case SearchVisible:
		return "SearchVisible"
	case EpisodesVisible:
		return "EpisodesVisible"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Widget is one page session. Its methods are safe for concurrent use; each
// pipeline run fetches without holding the page lock.
//
// Every run is stamped with a generation. When several runs for the same region
// overlap, only the most recently started one renders; the others are dropped
// when their fetch resolves. A new search also supersedes pending episode runs.
type Widget struct {
	search   services.ShowSearch
	episodes services.EpisodeList
	listener Listener
	logger   zerolog.Logger

	mu           sync.Mutex
	page         *dom.Page
	queryInput   *dom.Region
	showsList    *dom.Region
	episodesArea *dom.Region
	episodesList *dom.Region
	searchGen    uint64
	episodeGen   uint64
}

// Option configures a Widget.
type Option func(*Widget)

// WithListener registers the receiver of page updates.
func WithListener(l Listener) Option {
	return func(w *Widget) {
		w.listener = l
	}
}

// WithSessionID tags every log line of the widget with the session id.
func WithSessionID(id string) Option {
	return func(w *Widget) {
		w.logger = w.logger.With().Str("session", id).Logger()
	}
}

// New creates a page session on a fresh copy of the page.
func New(search services.ShowSearch, episodes services.EpisodeList, opts ...Option) (*Widget, error) {
	page, err := dom.NewPage(strings.NewReader(pageHTML))
	if err != nil {
		return nil, err
	}

	w := &Widget{
		search:   search,
		episodes: episodes,
		logger:   config.GetLogger(),
		page:     page,
	}
	for _, opt := range opts {
		opt(w)
	}

	regions := []struct {
		selector string
		dst      **dom.Region
	}{
		{searchQuerySelector, &w.queryInput},
		{showsListSelector, &w.showsList},
		{episodesAreaSelector, &w.episodesArea},
		{episodesListSelector, &w.episodesList},
	}
	for _, r := range regions {
		region, err := page.Region(r.selector)
		if err != nil {
			return nil, err
		}
		*r.dst = region
	}

	return w, nil
}

// Submit handles the search form. A query that is empty after trimming is
// ignored and false is returned. Otherwise the episode area is hidden and the
// matching shows replace the content of the show list.
func (w *Widget) Submit(ctx context.Context, query string) bool {
	query = NormalizeQuery(query)
	if query == "" {
		w.logger.Debug().Msg("Ignoring empty search")
		return false
	}

	w.mu.Lock()
	w.searchGen++
	gen := w.searchGen
	w.episodeGen++
	w.queryInput.SetAttr("value", query)
	w.episodesArea.Hide()
	w.publish(Update{Op: OpHide, Target: w.episodesArea.ID()})
	w.mu.Unlock()

	shows := w.search.Fetch(ctx, query)

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.searchGen {
		metrics.PipelineStaleResultsTotal.WithLabelValues(services.PipelineShowSearch).Inc()
		w.logger.Debug().Str("query", query).Uint64("generation", gen).Msg("Dropping superseded search result")
		return true
	}

	w.search.Render(w.showsList, shows)
	w.publishRegion(w.showsList)
	return true
}

// ActivateEpisodes handles a click on the episodes button of the card whose
// data-show-id equals showID. Without such a card nothing happens and false is
// returned. Otherwise the episode area is shown and the show's episodes replace
// the content of the episode list.
func (w *Widget) ActivateEpisodes(ctx context.Context, showID string) bool {
	w.mu.Lock()

	card := w.showsList.FindByAttr(showCardSelector, showIDAttr, showID)
	if card.Length() == 0 {
		w.mu.Unlock()
		w.logger.Debug().Str("showID", showID).Msg("No card for activated show")
		return false
	}

	raw, _ := card.Attr(showIDAttr)
	id, err := strconv.Atoi(raw)
	if err != nil {
		w.mu.Unlock()
		w.logger.Warn().Err(err).Str("showID", raw).Msg("Card carries an invalid show id")
		return false
	}

	// Marks the listed show so a reloaded page can restore it over a new session.
	w.episodesArea.SetAttr(showIDAttr, raw)
	w.episodesArea.Show()
	w.publish(Update{Op: OpShow, Target: w.episodesArea.ID()})
	w.episodeGen++
	gen := w.episodeGen
	w.mu.Unlock()

	episodes := w.episodes.Fetch(ctx, id)

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.episodeGen {
		metrics.PipelineStaleResultsTotal.WithLabelValues(services.PipelineEpisodeList).Inc()
		w.logger.Debug().Int("showID", id).Uint64("generation", gen).Msg("Dropping superseded episode result")
		return true
	}

	w.episodes.Render(w.episodesList, episodes)
	w.publishRegion(w.episodesList)
	return true
}

// State reports which part of the page is visible.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.episodesArea.Visible() {
		return EpisodesVisible
	}
	return SearchVisible
}

// HTML renders the current page document.
func (w *Widget) HTML() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.page.HTML()
}

// publishRegion sends the region's current content. Callers hold w.mu.
func (w *Widget) publishRegion(r *dom.Region) {
	if w.listener == nil {
		return
	}
	html, err := r.InnerHTML()
	if err != nil {
		w.logger.Error().Err(err).Str("target", r.ID()).Msg("Failed to serialize region")
		return
	}
	w.listener(Update{Op: OpReplace, Target: r.ID(), HTML: html})
}

// publish sends u to the listener. Callers hold w.mu.
func (w *Widget) publish(u Update) {
	if w.listener != nil {
		w.listener(u)
	}
}

// NormalizeQuery trims surrounding whitespace and composes the query to NFC.
// Visually identical input then issues identical requests.
func NormalizeQuery(query string) string {
	return norm.NFC.String(strings.TrimSpace(query))
}
