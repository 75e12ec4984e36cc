package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robalobadob/wordle-core/internal/config"
)

// appContext is shared by every subcommand. It is filled in by the root
// command's PersistentPreRunE before any RunE executes.
type appContext struct {
	v          *viper.Viper
	configFile string
	envFiles   []string

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	ac := &appContext{v: config.NewViper(), log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "wordle",
		Short:         "Wordle game engine, server and terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ac.load(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&ac.configFile, "config", "", "YAML config file")
	pf.StringSliceVar(&ac.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.String("log-format", "", "log format (auto, console, json)")
	pf.Int("max-guesses", 0, "guesses per round")
	pf.Int("word-length", 0, "letters per word")
	pf.String("answers-file", "", "newline-delimited answers list")
	pf.String("allowed-file", "", "newline-delimited allowed guesses list")
	pf.String("pack", "", "YAML word pack")
	pf.String("db", "", "SQLite word store")

	bindFlags(ac.v, pf, map[string]string{
		"log_level":    "log-level",
		"log_format":   "log-format",
		"max_guesses":  "max-guesses",
		"word_length":  "word-length",
		"answers_file": "answers-file",
		"allowed_file": "allowed-file",
		"pack_file":    "pack",
		"db_path":      "db",
	})

	cmd.AddCommand(newServeCmd(ac))
	cmd.AddCommand(newPlayCmd(ac))
	cmd.AddCommand(newWordsCmd(ac))

	return cmd
}

// load reads .env files and config, then installs the logger.
func (ac *appContext) load(cmd *cobra.Command) error {
	config.LoadDotenv(ac.envFiles...)
	cfg, err := config.Load(ac.v, ac.configFile)
	if err != nil {
		return err
	}
	ac.cfg = cfg
	ac.log, err = setupLogging(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	return err
}
