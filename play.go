package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-core/internal/app"
	"github.com/robalobadob/wordle-core/internal/daily"
	"github.com/robalobadob/wordle-core/internal/tui"
	"github.com/robalobadob/wordle-core/internal/words"
)

type playFlags struct {
	daily  bool
	seed   uint64
	answer string
}

func newPlayCmd(ac *appContext) *cobra.Command {
	flags := &playFlags{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.daily && (flags.answer != "" || cmd.Flags().Changed("seed")) {
				return fmt.Errorf("--daily cannot be combined with --answer or --seed")
			}
			m, err := buildPlayModel(cmd.Context(), ac, flags, cmd.Flags().Changed("seed"))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&flags.daily, "daily", false, "play today's shared word")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed the answer picker for a replayable game")
	cmd.Flags().StringVar(&flags.answer, "answer", "", "fixed answer (must be in the answers list)")
	return cmd
}

// buildPlayModel prepares a state with the first round started. A rejected
// fixed answer shows up as an on-screen error, the same as in the server.
func buildPlayModel(ctx context.Context, ac *appContext, flags *playFlags, seeded bool) (tui.Model, error) {
	lists, err := words.Load(ctx, ac.cfg.Words())
	if err != nil {
		return tui.Model{}, err
	}

	opts := []tui.Option{tui.WithErrorTTL(ac.cfg.ErrorTTL)}
	var src app.Option
	switch {
	case flags.daily:
		d := daily.Today(ac.cfg.DailySalt)
		src = app.WithSource(d)
		opts = append(opts, tui.WithTitle("WORDLE · daily "+d.Date()))
	case seeded:
		src = app.WithSource(rand.New(rand.NewPCG(flags.seed, flags.seed)))
		opts = append(opts, tui.WithTitle(fmt.Sprintf("WORDLE · seed %d", flags.seed)))
	default:
		src = app.WithSource(nil)
	}

	st, err := app.Apply(app.New(src), app.SetPropertiesAction(ac.cfg.MaxGuesses, ac.cfg.WordLength))
	if err != nil {
		return tui.Model{}, err
	}
	st, err = app.Apply(st, app.LoadDataAction(lists.Guesses, lists.Answers))
	if err != nil {
		return tui.Model{}, err
	}

	start := app.NewGameAction()
	if flags.answer != "" {
		start = app.NewGameWithAction(strings.ToUpper(flags.answer))
	}
	return tui.NewModel(app.Reduce(st, start), opts...), nil
}
