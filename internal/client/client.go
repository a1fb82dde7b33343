package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/parser"
)

// Client defines the interface for querying the TVmaze API.
//
// Both lookups return a tagged Result instead of (value, error) so that callers
// can tell a transport failure, an error status and a malformed body apart
// (see apperrors.Cause) before deciding how to degrade.
type Client interface {
	SearchShows(ctx context.Context, query string) models.Result[[]models.ShowSummary]
	ListEpisodes(ctx context.Context, showID int) models.Result[[]models.EpisodeSummary]
}

// client implements the Client interface
type client struct {
	httpClient    *http.Client
	searchHost    string
	episodesHost  string
	showParser    parser.Parser[models.ShowSummary]
	episodeParser parser.Parser[models.EpisodeSummary]
}

// NewClient creates a new client instance with proxy and rate limit configuration if provided
func NewClient(cfg *config.Config) Client {
	timeout := parseDuration(cfg.ClientTimeout, 30*time.Second, "client_timeout")

	return &client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg),
		},
		searchHost:    hostOrDefault(cfg.SearchHost),
		episodesHost:  hostOrDefault(cfg.EpisodesHost),
		showParser:    parser.NewShowSearchParser(),
		episodeParser: parser.NewEpisodeParser(),
	}
}

// SearchShows queries /search/shows and returns the matching shows in API order.
func (c *client) SearchShows(ctx context.Context, query string) models.Result[[]models.ShowSummary] {
	endpoint := fmt.Sprintf("%s/search/shows?q=%s", c.searchHost, url.QueryEscape(query))
	return fetch(ctx, c, "search", endpoint, c.showParser)
}

// ListEpisodes queries /shows/{id}/episodes and returns the episodes in API order.
func (c *client) ListEpisodes(ctx context.Context, showID int) models.Result[[]models.EpisodeSummary] {
	endpoint := fmt.Sprintf("%s/shows/%d/episodes", c.episodesHost, showID)
	return fetch(ctx, c, "episodes", endpoint, c.episodeParser)
}

// fetch performs a single GET against endpoint and decodes the body with p.
func fetch[T any](ctx context.Context, c *client, operation, endpoint string, p parser.Parser[T]) models.Result[[]T] {
	logger := config.GetLogger()
	start := time.Now()
	defer func() {
		metrics.RemoteRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Failure[[]T](&apperrors.ErrTransport{URL: endpoint, Err: fmt.Errorf("create request: %w", err)})
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug().Str("operation", operation).Str("url", endpoint).Msg("Querying TVmaze")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Failure[[]T](&apperrors.ErrTransport{URL: endpoint, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Failure[[]T](&apperrors.ErrUnexpectedStatus{URL: endpoint, StatusCode: resp.StatusCode})
	}

	body, err := parser.NewUTF8Reader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return models.Failure[[]T](&apperrors.ErrMalformedResponse{URL: endpoint, Err: err})
	}

	items, err := p.Parse(body)
	if err != nil {
		var malformed *apperrors.ErrMalformedResponse
		if errors.As(err, &malformed) {
			malformed.URL = endpoint
			return models.Failure[[]T](malformed)
		}
		return models.Failure[[]T](&apperrors.ErrMalformedResponse{URL: endpoint, Err: err})
	}

	logger.Debug().Str("operation", operation).Int("count", len(items)).Msg("TVmaze query succeeded")
	return models.Success(items)
}

func hostOrDefault(host string) string {
	host = strings.TrimRight(host, "/")
	if host == "" {
		return config.DefaultAPIHost
	}
	return host
}

func parseDuration(value string, fallback time.Duration, key string) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Str(key, value).Dur("default", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return parsed
}
