package testutil

import (
	"encoding/json"
)

// ShowFixture describes one show wrapper of a /search/shows response.
// A nil Image produces `"image": null`; an empty Medium produces an image object
// without a medium-resolution URL.
type ShowFixture struct {
	ID      int
	Name    string
	Summary *string
	Image   *ImageFixture
}

// ImageFixture is the image object of a show.
type ImageFixture struct {
	Medium   string
	Original string
}

// EpisodeFixture describes one entry of a /shows/{id}/episodes response.
type EpisodeFixture struct {
	ID     int
	Name   string
	Season int
	Number int
}

// Ptr returns a pointer to v, convenient for optional fixture fields.
func Ptr[T any](v T) *T {
	return &v
}

// GenerateSearchJSON renders show fixtures the way TVmaze's search endpoint does.
func GenerateSearchJSON(shows []ShowFixture) string {
	type image struct {
		Medium   string `json:"medium,omitempty"`
		Original string `json:"original,omitempty"`
	}
	type show struct {
		ID      int     `json:"id"`
		Name    string  `json:"name"`
		Summary *string `json:"summary"`
		Image   *image  `json:"image"`
	}
	type wrapper struct {
		Score float64 `json:"score"`
		Show  show    `json:"show"`
	}

	out := make([]wrapper, 0, len(shows))
	for i, s := range shows {
		w := wrapper{
			Score: 1 / float64(i+1),
			Show:  show{ID: s.ID, Name: s.Name, Summary: s.Summary},
		}
		if s.Image != nil {
			w.Show.Image = &image{Medium: s.Image.Medium, Original: s.Image.Original}
		}
		out = append(out, w)
	}
	return mustMarshal(out)
}

// GenerateEpisodesJSON renders episode fixtures the way TVmaze's episode endpoint does.
func GenerateEpisodesJSON(episodes []EpisodeFixture) string {
	type episode struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Season  int    `json:"season"`
		Number  int    `json:"number"`
		Type    string `json:"type"`
		Airdate string `json:"airdate"`
	}

	out := make([]episode, 0, len(episodes))
	for _, e := range episodes {
		out = append(out, episode{ID: e.ID, Name: e.Name, Season: e.Season, Number: e.Number, Type: "regular", Airdate: "1992-09-05"})
	}
	return mustMarshal(out)
}

func mustMarshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
