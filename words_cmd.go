package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-core/internal/words"
)

func newWordsCmd(ac *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Manage word lists",
	}
	cmd.AddCommand(newWordsImportCmd(ac))
	cmd.AddCommand(newWordsStatsCmd(ac))
	cmd.AddCommand(newWordsExportCmd(ac))
	return cmd
}

// newWordsImportCmd copies lists from files, a pack or the embedded
// defaults into a SQLite word store.
func newWordsImportCmd(ac *appContext) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "import --into FILE",
		Short: "Import word lists into a SQLite word store",
		RunE: func(cmd *cobra.Command, args []string) error {
			src := ac.cfg.Words()
			// the store being written is never the source
			src.DBPath = ""
			lists, err := words.Load(cmd.Context(), src)
			if err != nil {
				return err
			}

			db, err := words.OpenDB(target)
			if err != nil {
				return err
			}
			defer db.Close()

			added, err := db.Import(cmd.Context(), lists)
			if err != nil {
				return err
			}
			answers, allowed, err := db.Stats(cmd.Context())
			if err != nil {
				return err
			}
			ac.log.Info().Str("db", target).Str("source", src.Source()).Int("added", added).Msg("import finished")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows into %s (answers=%d allowed=%d)\n", added, target, answers, allowed)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "into", "", "SQLite word store to write")
	_ = cmd.MarkFlagRequired("into")
	return cmd
}

func newWordsStatsCmd(ac *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show word counts for the configured source",
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := words.Load(cmd.Context(), ac.cfg.Words())
			if err != nil {
				return err
			}
			answers, allowed := lists.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "source=%s answers=%d allowed=%d\n", ac.cfg.Words().Source(), answers, allowed)
			return nil
		},
	}
}

func newWordsExportCmd(ac *appContext) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured lists as a YAML word pack to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := words.Load(cmd.Context(), ac.cfg.Words())
			if err != nil {
				return err
			}
			return words.WritePack(cmd.OutOrStdout(), name, lists)
		},
	}
	cmd.Flags().StringVar(&name, "name", "custom", "pack name")
	return cmd
}
