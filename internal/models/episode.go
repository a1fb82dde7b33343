package models

// EpisodeSummary is the display model of a single episode of a show
type EpisodeSummary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"` // Index within the season
}
