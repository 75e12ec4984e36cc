// internal/httpserver/routes_game.go
//
// HTTP routes for playing a game.
//   - POST   /game/new          → create a session, return id + token + snapshot
//   - GET    /game/{id}         → current snapshot
//   - POST   /game/{id}/actions → dispatch one action, return the snapshot
//   - POST   /game/{id}/undo    → restore the previous state
//   - DELETE /game/{id}         → end the session
//
// Modes:
//   - random: answer drawn from the process source, or a seeded PCG when
//     "seed" is given so a round can be replayed.
//   - daily: answer chosen by the date + salt keyed hash; every player gets
//     the same word for the same UTC day.
//   - a fixed "answer" may be supplied in random mode (testing, bots).

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-core/internal/app"
	"github.com/robalobadob/wordle-core/internal/daily"
	"github.com/robalobadob/wordle-core/internal/session"
)

const (
	modeRandom = "random"
	modeDaily  = "daily"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.With(s.requireGameToken).Get("/game/{id}", s.handleGetGame)
	r.With(s.requireGameToken).Post("/game/{id}/actions", s.handleAction)
	r.With(s.requireGameToken).Post("/game/{id}/undo", s.handleUndo)
	r.With(s.requireGameToken).Delete("/game/{id}", s.handleEndGame)
}

// newGameReq is the optional body of POST /game/new.
type newGameReq struct {
	Mode   string  `json:"mode" validate:"omitempty,oneof=random daily"`
	Answer string  `json:"answer" validate:"omitempty,alpha,excluded_if=Mode daily"`
	Seed   *uint64 `json:"seed" validate:"excluded_if=Mode daily"`
}

// newGameRes is returned by POST /game/new.
type newGameRes struct {
	GameID    string       `json:"gameId"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Mode      string       `json:"mode"`
	Date      string       `json:"date,omitempty"`
	State     app.Snapshot `json:"state"`
}

// handleNewGame builds a session from the preloaded base state and starts
// its first round. A rejected fixed answer still creates the session; the
// rejection is reported in the snapshot errors like any other game rule.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request", "detail": err.Error()})
		return
	}
	if req.Mode == "" {
		req.Mode = modeRandom
	}

	res := newGameRes{GameID: genID(), Mode: req.Mode}
	st := s.base
	action := app.NewGameAction()
	switch {
	case req.Mode == modeDaily:
		src := daily.Today(s.opts.DailySalt)
		res.Date = src.Date()
		st = st.Using(src)
	case req.Answer != "":
		action = app.NewGameWithAction(strings.ToUpper(req.Answer))
	case req.Seed != nil:
		st = st.Using(rand.New(rand.NewPCG(*req.Seed, *req.Seed)))
	}

	sess := session.New(res.GameID, st, s.opts.Session, *hlog.FromRequest(r))
	res.State = sess.Dispatch(action)
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	tok, exp, err := s.signGameToken(res.GameID, req.Mode)
	if err != nil {
		_ = s.store.Delete(r.Context(), res.GameID)
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	res.Token, res.ExpiresAt = tok, exp

	hlog.FromRequest(r).Info().Str("game", res.GameID).Str("mode", req.Mode).Msg("game created")
	writeJSON(w, http.StatusCreated, res)
}

// handleGetGame returns the current snapshot.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Snapshot())
}

// handleAction decodes one action and dispatches it.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var a app.Action
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	writeJSON(w, http.StatusOK, sessionFrom(r).Dispatch(a))
}

// undoRes is returned by POST /game/{id}/undo.
type undoRes struct {
	Undone bool         `json:"undone"`
	State  app.Snapshot `json:"state"`
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	snap, ok := sessionFrom(r).Undo()
	writeJSON(w, http.StatusOK, undoRes{Undone: ok, State: snap})
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
