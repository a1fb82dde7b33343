// Package render turns display models into HTML fragments for a mount point.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Belphemur/ShowFinder/internal/models"
)

var showCardTemplate = template.Must(template.New("show").Parse(
	`<div class="col-md-6 col-lg-3 Show" data-show-id="{{.ID}}">
  <div class="card" data-show-id="{{.ID}}">
    <div class="card-body">
      <img class="card-img-top" src="{{.Image}}" alt="{{.Name}}">
      <h5 class="card-title">{{.Name}}</h5>
      <div class="card-text">{{.Summary}}</div>
      <button class="episodes-btn" type="submit" form="search-form" name="show" value="{{.ID}}">Episodes</button>
    </div>
  </div>
</div>`))

var episodeItemTemplate = template.Must(template.New("episode").Parse(
	`<li data-episode-id="{{.ID}}"><b>{{.Name}}</b> (Episode: {{.Number}} Season: {{.Season}})</li>`))

type showCardData struct {
	ID      int
	Name    string
	Image   string
	Summary template.HTML
}

// ShowCard renders one show card. The outer element and the card carry
// data-show-id, read back when the card's episodes button is activated.
// Without scripting the button resubmits the search form with show set.
func ShowCard(show models.ShowSummary) (string, error) {
	data := showCardData{
		ID:      show.ID,
		Name:    show.Name,
		Image:   show.Image,
		Summary: template.HTML(SanitizeSummary(show.Summary)),
	}

	var b strings.Builder
	if err := showCardTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render show %d: %w", show.ID, err)
	}
	return b.String(), nil
}

// EpisodeItem renders one episode list entry.
func EpisodeItem(episode models.EpisodeSummary) (string, error) {
	var b strings.Builder
	if err := episodeItemTemplate.Execute(&b, episode); err != nil {
		return "", fmt.Errorf("render episode %d: %w", episode.ID, err)
	}
	return b.String(), nil
}
