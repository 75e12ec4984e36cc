// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     structured access logs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, then token-gated /game/{id}/*.
//   - WebSocket action stream: GET /game/{id}/ws.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Every game gets its own signed token; there are no user accounts.
//   - Game-rule failures are not HTTP errors. They come back inside the
//     snapshot's errors list with status 200.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-core/internal/app"
	"github.com/robalobadob/wordle-core/internal/session"
	"github.com/robalobadob/wordle-core/internal/store"
	"github.com/robalobadob/wordle-core/internal/words"
)

// Options configures game creation and request handling.
type Options struct {
	MaxGuesses   int
	WordLength   int
	DailySalt    string
	JWTSecret    string
	TokenTTL     time.Duration
	ClientOrigin string
	Session      session.Options
}

// Server bundles router, session store, and the preloaded base state.
type Server struct {
	r        *chi.Mux
	store    store.Store
	opts     Options
	log      zerolog.Logger
	base     app.State // configured and loaded, no round yet
	stats    [2]int    // answers, allowed
	validate *validator.Validate
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
// The vocabulary is loaded once into a base state that every game copies.
func New(st store.Store, lists words.Lists, opts Options, logger zerolog.Logger) (*Server, error) {
	base, err := baseState(lists, opts)
	if err != nil {
		return nil, err
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}

	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		opts:     opts,
		log:      logger.With().Str("component", "http").Logger(),
		base:     base,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.stats[0], s.stats[1] = lists.Stats()
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)        // add X-Request-ID
	s.r.Use(chimw.RealIP)           // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(s.log)) // request-scoped logger
	s.r.Use(accessLog)              // one line per request
	s.r.Use(chimw.Recoverer)        // recover from panics
	s.r.Use(s.cors)                 // credentials-friendly CORS

	// WebSocket upgrades skip the JSON content type and the handler timeout.
	s.r.With(s.requireGameToken).Get("/game/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service": "wordle-core",
				"endpoints": []string{
					"/health", "POST /game/new", "GET /game/{id}",
					"POST /game/{id}/actions", "POST /game/{id}/undo", "GET /game/{id}/ws",
				},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]int{"answers": s.stats[0], "allowed": s.stats[1]})
		})

		s.mountGame(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s, nil
}

// baseState applies SET_PROPERTIES and LOAD_DATA once.
func baseState(lists words.Lists, opts Options) (app.State, error) {
	st, err := app.Apply(app.New(), app.SetPropertiesAction(opts.MaxGuesses, opts.WordLength))
	if err != nil {
		return app.State{}, fmt.Errorf("configure game: %w", err)
	}
	st, err = app.Apply(st, app.LoadDataAction(lists.Guesses, lists.Answers))
	if err != nil {
		return app.State{}, fmt.Errorf("load vocabulary: %w", err)
	}
	return st, nil
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per request through the hlog logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("req_id", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkOrigin accepts same-host requests and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.opts.ClientOrigin {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
