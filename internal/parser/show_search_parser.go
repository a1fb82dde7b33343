package parser

import (
	"fmt"
	"io"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// searchResultJSON is one wrapper of the /search/shows response
type searchResultJSON struct {
	Score float64   `json:"score"`
	Show  *showJSON `json:"show"`
}

type showJSON struct {
	ID      *int       `json:"id"`
	Name    *string    `json:"name"`
	Summary *string    `json:"summary"`
	Image   *imageJSON `json:"image"`
}

type imageJSON struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// ShowSearchParser decodes show search responses into ShowSummary records
type ShowSearchParser struct{}

// NewShowSearchParser creates a new show search parser instance
func NewShowSearchParser() *ShowSearchParser {
	return &ShowSearchParser{}
}

// Parse decodes the search results and keeps the order returned by the API.
// A missing image or medium-resolution URL is replaced with models.PlaceholderImageURL.
func (p *ShowSearchParser) Parse(body io.Reader) ([]models.ShowSummary, error) {
	logger := config.GetLogger()

	var results []searchResultJSON
	if err := decodeDocument(body, &results); err != nil {
		return nil, &apperrors.ErrMalformedResponse{Err: fmt.Errorf("decode search results: %w", err)}
	}

	shows := make([]models.ShowSummary, 0, len(results))
	for i, result := range results {
		show, err := toShowSummary(result.Show)
		if err != nil {
			return nil, &apperrors.ErrMalformedResponse{Err: fmt.Errorf("result %d: %w", i, err)}
		}
		shows = append(shows, show)
	}

	logger.Debug().Int("total_shows", len(shows)).Msg("Parsed show search results")
	return shows, nil
}

func toShowSummary(raw *showJSON) (models.ShowSummary, error) {
	if raw == nil {
		return models.ShowSummary{}, fmt.Errorf("missing show")
	}
	if raw.ID == nil {
		return models.ShowSummary{}, fmt.Errorf("show missing id")
	}
	if raw.Name == nil {
		return models.ShowSummary{}, fmt.Errorf("show %d missing name", *raw.ID)
	}

	show := models.ShowSummary{
		ID:    *raw.ID,
		Name:  *raw.Name,
		Image: models.PlaceholderImageURL,
	}
	if raw.Summary != nil {
		show.Summary = *raw.Summary
	}
	if raw.Image != nil && raw.Image.Medium != "" {
		show.Image = raw.Image.Medium
	}
	return show, nil
}
