package services

import (
	"context"

	"github.com/Belphemur/ShowFinder/internal/dom"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// EpisodeList is the episode pipeline: show ID -> episodes -> episode list entries
type EpisodeList interface {
	// Fetch returns the episodes of a show in API order (season, then number).
	// It never fails: any fetch or parse failure yields an empty slice.
	Fetch(ctx context.Context, showID int) []models.EpisodeSummary

	// Render replaces the content of mount with one list entry per episode, in order.
	Render(mount dom.MountPoint, episodes []models.EpisodeSummary)
}
