// internal/httpserver/auth.go
//
// Per-game bearer tokens.
//
// A token is an HS256 JWT whose subject is the game ID. Holding the token is
// the only way to read or drive that game, so IDs can be shared in logs
// without exposing the game.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-core/internal/session"
	"github.com/robalobadob/wordle-core/internal/store"
)

const tokenIssuer = "wordle-core"

// gameClaims are the JWT claims carried by a game token.
type gameClaims struct {
	Mode string `json:"mode"`
	jwt.RegisteredClaims
}

// signGameToken creates a token for game id that expires after TokenTTL.
func (s *Server) signGameToken(id, mode string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		Mode: mode,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseGameToken verifies signature, issuer and expiry.
func (s *Server) parseGameToken(tok string) (*gameClaims, error) {
	claims := &gameClaims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// bearerOrQuery extracts a token from the Authorization header or, for
// browser WebSocket clients that cannot set headers, the token query param.
func bearerOrQuery(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return r.URL.Query().Get("token")
}

// ctxSessionKey is the context key type for the authorized session.
type ctxSessionKey struct{}

// requireGameToken enforces a valid token for the {id} in the path and
// injects the matching session into the request context.
func (s *Server) requireGameToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tok := bearerOrQuery(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims, err := s.parseGameToken(tok)
		if err != nil || claims.Subject != id {
			hlog.FromRequest(r).Debug().Err(err).Str("game", id).Msg("rejected game token")
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		sess, err := s.store.Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store_failed")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session placed by requireGameToken.
func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*session.Session)
	return sess
}
