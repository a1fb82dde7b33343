package services

import (
	"context"

	"github.com/Belphemur/ShowFinder/internal/dom"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// ShowSearch is the show search pipeline: query -> shows -> show cards
type ShowSearch interface {
	// Fetch returns the shows matching a non-empty query in API order.
	// It never fails: any fetch or parse failure yields an empty slice.
	Fetch(ctx context.Context, query string) []models.ShowSummary

	// Render replaces the content of mount with one card per show, in order.
	Render(mount dom.MountPoint, shows []models.ShowSummary)
}
