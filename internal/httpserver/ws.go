// internal/httpserver/ws.go
//
// WebSocket action stream for one game.
//
// Protocol:
//   - client → server: one JSON action per text frame, same shape as
//     POST /game/{id}/actions, plus {"type":"UNDO"}.
//   - server → client: a JSON snapshot after every state change, starting
//     with the current one.
//
// One goroutine reads and dispatches; a second owns every write (snapshots
// and pings), since a websocket.Conn supports only one concurrent writer.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-core/internal/app"
	"github.com/robalobadob/wordle-core/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// actionUndo is only understood on the socket; it maps to Session.Undo.
	actionUndo app.ActionType = "UNDO"
)

// handleWS upgrades the connection and runs the read and write pumps until
// either side closes or the session ends.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	logger := hlog.FromRequest(r).With().Str("game", sess.ID()).Logger()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	logger.Debug().Msg("websocket connected")

	snaps, stop := sess.Watch()
	done := make(chan struct{})
	go writePump(conn, snaps, done, logger)

	readPump(conn, sess, logger)
	stop()
	<-done
	logger.Debug().Msg("websocket closed")
}

// readPump dispatches incoming actions until the connection fails.
func readPump(conn *websocket.Conn, sess *session.Session, logger zerolog.Logger) {
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("websocket read")
			}
			return
		}
		var a app.Action
		if err := json.Unmarshal(msg, &a); err != nil {
			logger.Warn().Err(err).Msg("dropping malformed websocket frame")
			continue
		}
		if a.Type == actionUndo {
			sess.Undo()
			continue
		}
		// The resulting snapshot reaches the client through the watcher.
		sess.Dispatch(a)
	}
}

// writePump forwards snapshots and keeps the connection alive with pings.
// It exits when snaps is closed or a write fails.
func writePump(conn *websocket.Conn, snaps <-chan app.Snapshot, done chan<- struct{}, logger zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		close(done)
	}()

	for {
		select {
		case snap, ok := <-snaps:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				logger.Debug().Err(err).Msg("websocket write")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
