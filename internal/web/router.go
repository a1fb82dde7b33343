// Package web exposes ShowFinder over HTTP: the server-rendered page, the
// WebSocket page sessions mirroring it into the browser, and a small JSON API.
package web

import (
	"github.com/gin-gonic/gin"

	"github.com/Belphemur/ShowFinder/internal/services"
)

// NewRouter wires every route onto a new gin engine.
func NewRouter(search services.ShowSearch, episodes services.EpisodeList) *gin.Engine {
	h := &Handler{search: search, episodes: episodes}

	r := gin.New()
	r.Use(requestID(), sentryHub(), recovery(), requestLogger())

	r.GET("/", h.Index)
	r.GET("/ws", h.PageSession)
	r.GET("/static/app.js", h.AppScript)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/shows", h.SearchShows)
		api.GET("/shows/:id/episodes", h.ListEpisodes)
	}

	return r
}
