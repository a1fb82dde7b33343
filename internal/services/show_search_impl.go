package services

import (
	"context"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/dom"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/render"
)

// DefaultShowSearch implements ShowSearch on top of the TVmaze client
type DefaultShowSearch struct {
	client client.Client
}

// NewShowSearch creates a show search pipeline backed by c
func NewShowSearch(c client.Client) ShowSearch {
	return &DefaultShowSearch{client: c}
}

// Fetch returns the shows matching query, or an empty slice on failure.
func (s *DefaultShowSearch) Fetch(ctx context.Context, query string) []models.ShowSummary {
	logger := config.GetLogger()
	logger.Info().Str("query", query).Msg("Searching shows")

	shows := failSoft(ctx, PipelineShowSearch, s.client.SearchShows(ctx, query))

	logger.Info().Str("query", query).Int("shows", len(shows)).Msg("Show search completed")
	return shows
}

// Render empties mount then appends one card per show.
func (s *DefaultShowSearch) Render(mount dom.MountPoint, shows []models.ShowSummary) {
	logger := config.GetLogger()

	mount.Empty()
	for _, show := range shows {
		card, err := render.ShowCard(show)
		if err != nil {
			logger.Error().Err(err).Int("showID", show.ID).Msg("Failed to render show card")
			continue
		}
		mount.Append(card)
	}

	metrics.RendersTotal.WithLabelValues("shows").Inc()
	logger.Debug().Int("cards", len(shows)).Msg("Rendered show cards")
}
