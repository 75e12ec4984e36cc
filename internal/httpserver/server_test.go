package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-core/internal/app"
	"github.com/robalobadob/wordle-core/internal/daily"
	"github.com/robalobadob/wordle-core/internal/game"
	"github.com/robalobadob/wordle-core/internal/session"
	"github.com/robalobadob/wordle-core/internal/store"
	"github.com/robalobadob/wordle-core/internal/words"
)

var testLists = words.Lists{
	Guesses: []string{"CRANE", "SNAKE", "SLATE", "BUMPY", "QUICK", "JUMPY", "WORDS", "THEME"},
	Answers: []string{"CRANE", "SNAKE"},
}

// misses never match either answer.
var misses = []string{"SLATE", "BUMPY", "QUICK", "JUMPY", "WORDS", "THEME"}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(store.NewMemoryStore(), testLists, Options{
		MaxGuesses:   6,
		WordLength:   5,
		DailySalt:    "salt",
		JWTSecret:    "test-secret-123",
		TokenTTL:     time.Hour,
		ClientOrigin: "http://localhost:5173",
		Session:      session.Options{HistoryLimit: 8},
	}, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func newGame(t *testing.T, s *Server, body any) newGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/new", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res newGameRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.GameID)
	require.NotEmpty(t, res.Token)
	return res
}

func act(t *testing.T, s *Server, g newGameRes, a app.Action) app.Snapshot {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/"+g.GameID+"/actions", g.Token, a)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var snap app.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

func guess(t *testing.T, s *Server, g newGameRes, word string) app.Snapshot {
	t.Helper()
	for _, c := range word {
		act(t, s, g, app.AddCharacterAction(string(c)))
	}
	return act(t, s, g, app.SubmitGuessAction())
}

// revealAnswer plays six misses and returns the revealed answer.
func revealAnswer(t *testing.T, s *Server, g newGameRes) string {
	t.Helper()
	var snap app.Snapshot
	for _, w := range misses {
		snap = guess(t, s, g, w)
	}
	require.True(t, snap.IsGameOver)
	require.NotNil(t, snap.Answer)
	return *snap.Answer
}

func TestDiagnostics(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ok":true`)

	rec = do(t, s, http.MethodGet, "/debug/words", "", nil)
	require.JSONEq(t, `{"answers":2,"allowed":8}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}

func TestNewRejectsBadVocabulary(t *testing.T) {
	_, err := New(store.NewMemoryStore(), words.Lists{Guesses: []string{"CRANE"}, Answers: []string{"SNAKE"}},
		Options{MaxGuesses: 6, WordLength: 5, JWTSecret: "test-secret-123"}, zerolog.Nop())
	require.Error(t, err)
}

func TestPlayFixedAnswer(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, map[string]any{"answer": "snake"})
	require.Equal(t, "random", g.Mode)
	require.Equal(t, "ready", g.State.Phase)
	require.Nil(t, g.State.Answer)

	snap := guess(t, s, g, "CRANE")
	require.Equal(t, []string{"CRANE"}, snap.Guesses)
	require.Equal(t, []string{"wrong", "wrong", "match", "close", "match"}, verdictNames(snap.Results[0]))

	snap = guess(t, s, g, "SNAKE")
	require.True(t, snap.IsGameOver)
	require.True(t, snap.IsWin)
	require.Equal(t, "SNAKE", *snap.Answer)

	rec := do(t, s, http.MethodGet, "/game/"+g.GameID, g.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"isWin":true`)
}

func TestRuleViolationsStayInSnapshot(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, nil)

	snap := act(t, s, g, app.SubmitGuessAction())
	require.Len(t, snap.Errors, 1)

	for _, c := range "ZZZZZ" {
		act(t, s, g, app.AddCharacterAction(string(c)))
	}
	snap = act(t, s, g, app.SubmitGuessAction())
	require.Len(t, snap.Errors, 2)
	require.Contains(t, snap.Errors[1].Message, "not in word list")

	snap = act(t, s, g, app.RemoveErrorAction(snap.Errors[0].ID))
	require.Len(t, snap.Errors, 1)

	// unknown types are ignored
	snap = act(t, s, g, app.Action{Type: "TELEPORT"})
	require.Len(t, snap.Errors, 1)

	rec := do(t, s, http.MethodPost, "/game/"+g.GameID+"/actions", g.Token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownFixedAnswerIsReported(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, map[string]any{"answer": "slate"})
	require.Len(t, g.State.Errors, 1)
	require.Empty(t, g.State.Guesses)
}

func TestTokenGate(t *testing.T) {
	s := newTestServer(t)
	a := newGame(t, s, nil)
	b := newGame(t, s, nil)

	require.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/game/"+a.GameID, "", nil).Code)
	require.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/game/"+a.GameID, b.Token, nil).Code)
	require.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/game/"+a.GameID, "garbage", nil).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/game/"+a.GameID+"?token="+a.Token, "", nil).Code)

	other := newTestServer(t)
	other.opts.JWTSecret = "another-secret"
	forged, _, err := other.signGameToken(a.GameID, modeRandom)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/game/"+a.GameID, forged, nil).Code)

	// valid token for a game that no longer exists
	require.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/game/"+a.GameID, a.Token, nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/game/"+a.GameID, a.Token, nil).Code)
}

func TestNewGameValidation(t *testing.T) {
	s := newTestServer(t)
	for name, body := range map[string]any{
		"bad mode":         map[string]any{"mode": "hard"},
		"daily and answer": map[string]any{"mode": "daily", "answer": "crane"},
		"daily and seed":   map[string]any{"mode": "daily", "seed": 4},
		"non-alpha answer": map[string]any{"answer": "cr4ne"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/game/new", "", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/game/new", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSeededGamesReplay(t *testing.T) {
	s := newTestServer(t)
	a := newGame(t, s, map[string]any{"seed": 42})
	b := newGame(t, s, map[string]any{"seed": 42})
	require.Equal(t, revealAnswer(t, s, a), revealAnswer(t, s, b))
}

func TestDailyMode(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, map[string]any{"mode": "daily"})
	require.Equal(t, "daily", g.Mode)

	src := daily.Today("salt")
	require.Equal(t, src.Date(), g.Date)

	want := []string{"CRANE", "SNAKE"}[src.IntN(2)]
	snap := guess(t, s, g, want)
	require.True(t, snap.IsWin)
}

func TestUndoEndpoint(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, nil)
	act(t, s, g, app.AddCharacterAction("S"))

	rec := do(t, s, http.MethodPost, "/game/"+g.GameID+"/undo", g.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res undoRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.True(t, res.Undone)
	require.Empty(t, res.State.ActiveGuess)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodOptions, "/game/new", "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebSocketRoundTrip(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, map[string]any{"answer": "crane"})

	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + g.GameID + "/ws?token=" + g.Token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var snap app.Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	require.Empty(t, snap.ActiveGuess)

	require.NoError(t, conn.WriteJSON(app.AddCharacterAction("C")))
	require.NoError(t, conn.ReadJSON(&snap))
	require.Equal(t, "C", snap.ActiveGuess)

	require.NoError(t, conn.WriteJSON(app.Action{Type: actionUndo}))
	require.NoError(t, conn.ReadJSON(&snap))
	require.Empty(t, snap.ActiveGuess)

	_, _, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/game/"+g.GameID+"/ws", nil)
	require.Error(t, err)
}

func verdictNames(r game.GuessResult) []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.String()
	}
	return out
}
