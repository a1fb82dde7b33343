package parser

import (
	"fmt"
	"io"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
)

type episodeJSON struct {
	ID     *int    `json:"id"`
	Name   *string `json:"name"`
	Season *int    `json:"season"`
	Number *int    `json:"number"`
}

// EpisodeParser decodes /shows/{id}/episodes responses into EpisodeSummary records
type EpisodeParser struct{}

// NewEpisodeParser creates a new episode parser instance
func NewEpisodeParser() *EpisodeParser {
	return &EpisodeParser{}
}

// Parse decodes the episode list without reordering it; the API already
// returns episodes sorted by season and number.
func (p *EpisodeParser) Parse(body io.Reader) ([]models.EpisodeSummary, error) {
	logger := config.GetLogger()

	var raw []episodeJSON
	if err := decodeDocument(body, &raw); err != nil {
		return nil, &apperrors.ErrMalformedResponse{Err: fmt.Errorf("decode episodes: %w", err)}
	}

	episodes := make([]models.EpisodeSummary, 0, len(raw))
	for i, ep := range raw {
		episode, err := toEpisodeSummary(ep)
		if err != nil {
			return nil, &apperrors.ErrMalformedResponse{Err: fmt.Errorf("episode %d: %w", i, err)}
		}
		episodes = append(episodes, episode)
	}

	logger.Debug().Int("total_episodes", len(episodes)).Msg("Parsed episode list")
	return episodes, nil
}

func toEpisodeSummary(raw episodeJSON) (models.EpisodeSummary, error) {
	switch {
	case raw.ID == nil:
		return models.EpisodeSummary{}, fmt.Errorf("missing id")
	case raw.Name == nil:
		return models.EpisodeSummary{}, fmt.Errorf("episode %d missing name", *raw.ID)
	case raw.Season == nil || *raw.Season < 1:
		return models.EpisodeSummary{}, fmt.Errorf("episode %d has no valid season", *raw.ID)
	case raw.Number == nil || *raw.Number < 1:
		return models.EpisodeSummary{}, fmt.Errorf("episode %d has no valid number", *raw.ID)
	}

	return models.EpisodeSummary{
		ID:     *raw.ID,
		Name:   *raw.Name,
		Season: *raw.Season,
		Number: *raw.Number,
	}, nil
}
