package web

import (
	_ "embed"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/services"
	"github.com/Belphemur/ShowFinder/internal/widget"
)

//go:embed assets/app.js
var appScript []byte

// Handler serves the HTTP routes on top of the two display pipelines.
type Handler struct {
	search   services.ShowSearch
	episodes services.EpisodeList
}

// Index renders the page. q runs a search and show activates the episode
// control of that card, so the page works without scripting.
func (h *Handler) Index(c *gin.Context) {
	logger := config.GetLogger()
	w, err := widget.New(h.search, h.episodes, widget.WithSessionID(c.GetString(requestIDKey)))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create page")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	ctx := c.Request.Context()
	if query := c.Query("q"); query != "" {
		w.Submit(ctx, query)
	}
	if show := c.Query("show"); show != "" {
		w.ActivateEpisodes(ctx, show)
	}

	html, err := w.HTML()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to render page")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// AppScript serves the browser side of the page session.
func (h *Handler) AppScript(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", appScript)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SearchShows returns the shows matching q. Upstream failures yield [].
func (h *Handler) SearchShows(c *gin.Context) {
	query := widget.NormalizeQuery(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	c.JSON(http.StatusOK, h.search.Fetch(c.Request.Context(), query))
}

// ListEpisodes returns the episodes of a show. Upstream failures yield [].
func (h *Handler) ListEpisodes(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "show id must be a positive integer"})
		return
	}
	c.JSON(http.StatusOK, h.episodes.Fetch(c.Request.Context(), id))
}
