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

// DefaultEpisodeList implements EpisodeList on top of the TVmaze client
type DefaultEpisodeList struct {
	client client.Client
}

// NewEpisodeList creates an episode list pipeline backed by c
func NewEpisodeList(c client.Client) EpisodeList {
	return &DefaultEpisodeList{client: c}
}

func (e *DefaultEpisodeList) Fetch(ctx context.Context, showID int) []models.EpisodeSummary {
	logger := config.GetLogger()
	logger.Info().Int("showID", showID).Msg("Fetching episodes")

	episodes := failSoft(ctx, PipelineEpisodeList, e.client.ListEpisodes(ctx, showID))

	logger.Info().Int("showID", showID).Int("episodes", len(episodes)).Msg("Episode fetch completed")
	return episodes
}

func (e *DefaultEpisodeList) Render(mount dom.MountPoint, episodes []models.EpisodeSummary) {
	logger := config.GetLogger()

	mount.Empty()
	for _, episode := range episodes {
		item, err := render.EpisodeItem(episode)
		if err != nil {
			logger.Error().Err(err).Int("episodeID", episode.ID).Msg("Failed to render episode")
			continue
		}
		mount.Append(item)
	}

	metrics.RendersTotal.WithLabelValues("episodes").Inc()
}
