package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-core/internal/config"
	"github.com/robalobadob/wordle-core/internal/httpserver"
	"github.com/robalobadob/wordle-core/internal/session"
	"github.com/robalobadob/wordle-core/internal/store"
	"github.com/robalobadob/wordle-core/internal/words"
)

func newServeCmd(ac *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, ac)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :$PORT)")
	bindFlags(ac.v, cmd.Flags(), map[string]string{"addr": "addr"})
	return cmd
}

func runServe(ctx context.Context, ac *appContext) error {
	srv, st, err := buildServer(ctx, ac)
	if err != nil {
		return err
	}

	go store.Janitor(ctx, st, ac.cfg.SessionTTL, janitorInterval(ac.cfg.SessionTTL), ac.log)

	ac.log.Info().Str("addr", ac.cfg.Addr).Msg("starting wordle server")
	if err := srv.Start(ctx, ac.cfg.Addr); err != nil {
		return err
	}
	ac.log.Info().Msg("server stopped")
	return nil
}

// buildServer loads the vocabulary and wires the store and HTTP server.
func buildServer(ctx context.Context, ac *appContext) (*httpserver.Server, store.Store, error) {
	lists, err := words.Load(ctx, ac.cfg.Words())
	if err != nil {
		return nil, nil, err
	}
	answers, allowed := lists.Stats()
	ac.log.Info().Str("source", ac.cfg.Words().Source()).Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

	st := store.NewMemoryStore()
	srv, err := httpserver.New(st, lists, serverOptions(ac.cfg), ac.log)
	if err != nil {
		return nil, nil, err
	}
	return srv, st, nil
}

func serverOptions(c config.Config) httpserver.Options {
	return httpserver.Options{
		MaxGuesses:   c.MaxGuesses,
		WordLength:   c.WordLength,
		DailySalt:    c.DailySalt,
		JWTSecret:    c.JWTSecret,
		TokenTTL:     c.TokenTTL,
		ClientOrigin: c.ClientOrigin,
		Session: session.Options{
			ErrorTTL:     c.ErrorTTL,
			HistoryLimit: c.HistoryLimit,
		},
	}
}

// janitorInterval sweeps a few times per TTL, at most once a minute.
func janitorInterval(ttl time.Duration) time.Duration {
	iv := ttl / 4
	if iv > time.Minute {
		iv = time.Minute
	}
	return iv
}
