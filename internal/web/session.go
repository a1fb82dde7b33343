package web

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/widget"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Inbound event types.
const (
	eventSearch   = "search"
	eventEpisodes = "episodes"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// event is a user action forwarded by the browser.
type event struct {
	Type   string `json:"type"`
	Query  string `json:"query,omitempty"`
	ShowID string `json:"showId,omitempty"`
}

// session binds one WebSocket connection to one page. Each event runs in its
// own goroutine; the widget orders their effects on the page.
type session struct {
	id     string
	conn   *websocket.Conn
	widget *widget.Widget
	send   chan widget.Update
	logger zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	events sync.WaitGroup
}

// PageSession upgrades the request and serves a page session until the
// browser disconnects.
func (h *Handler) PageSession(c *gin.Context) {
	logger := config.GetLogger()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the request.
		logger.Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	s := &session{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan widget.Update, sendBuffer),
		ctx:    ctx,
		cancel: cancel,
	}
	s.logger = logger.With().Str("session", s.id).Logger()

	s.widget, err = widget.New(h.search, h.episodes, widget.WithListener(s.enqueue), widget.WithSessionID(s.id))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create page session")
		cancel()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "page unavailable"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	s.run()
}

func (s *session) run() {
	metrics.ActiveSessions.Inc()
	defer metrics.ActiveSessions.Dec()
	s.logger.Debug().Msg("Page session started")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop()
	}()

	s.readLoop()

	s.cancel()
	s.events.Wait()
	<-writerDone
	s.logger.Debug().Msg("Page session ended")
}

// enqueue hands an update to the writer. It is the widget listener, so it
// runs under the page lock and blocks only until the writer catches up or the
// session ends.
func (s *session) enqueue(u widget.Update) {
	select {
	case s.send <- u:
	case <-s.ctx.Done():
	}
}

func (s *session) readLoop() {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn().Err(err).Msg("WebSocket read failed")
			}
			return
		}

		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Debug().Err(err).Msg("Ignoring malformed event")
			continue
		}
		s.dispatch(ev)
	}
}

func (s *session) dispatch(ev event) {
	switch ev.Type {
	case eventSearch:
		s.events.Add(1)
		go func() {
			defer s.events.Done()
			s.widget.Submit(s.ctx, ev.Query)
		}()
	case eventEpisodes:
		s.events.Add(1)
		go func() {
			defer s.events.Done()
			s.widget.ActivateEpisodes(s.ctx, ev.ShowID)
		}()
	default:
		s.logger.Debug().Str("type", ev.Type).Msg("Ignoring unknown event")
	}
}

func (s *session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case u := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(u); err != nil {
				s.logger.Debug().Err(err).Msg("WebSocket write failed")
				s.fail()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.Debug().Err(err).Msg("WebSocket ping failed")
				s.fail()
				return
			}
		case <-s.ctx.Done():
			// Also reached on server shutdown, where the reader is still blocked.
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))
			_ = s.conn.Close()
			return
		}
	}
}

// fail ends the session from the writer side; closing the connection unblocks
// the reader.
func (s *session) fail() {
	s.cancel()
	_ = s.conn.Close()
}
