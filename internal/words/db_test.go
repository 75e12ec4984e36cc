package words

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDBImportAndRead(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "words.db")

	db, err := OpenDB(path)
	require.NoError(t, err)

	added, err := db.Import(ctx, Lists{
		Guesses: []string{"slate", "bumpy"},
		Answers: []string{"snake", "crane"},
	})
	require.NoError(t, err)
	// two answers, plus four guess rows (answers are merged into guesses)
	require.Equal(t, 6, added)

	again, err := db.Import(ctx, Lists{Answers: []string{"crane"}})
	require.NoError(t, err)
	require.Zero(t, again)

	l, err := db.Lists(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"CRANE", "SNAKE"}, l.Answers)
	require.Equal(t, []string{"BUMPY", "CRANE", "SLATE", "SNAKE"}, l.Guesses)

	answers, allowed, err := db.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, answers)
	require.Equal(t, 4, allowed)
	require.NoError(t, db.Close())

	t.Run("reopen skips applied migrations", func(t *testing.T) {
		db, err := OpenDB(path)
		require.NoError(t, err)
		defer db.Close()

		var n int
		require.NoError(t, db.SQL.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
		require.Equal(t, 1, n)
	})

	t.Run("load from db", func(t *testing.T) {
		l, err := Load(ctx, Options{DBPath: path})
		require.NoError(t, err)
		require.Equal(t, []string{"CRANE", "SNAKE"}, l.Answers)
	})
}

func TestLoadEmptyDB(t *testing.T) {
	_, err := Load(context.Background(), Options{DBPath: filepath.Join(t.TempDir(), "empty.db")})
	require.Error(t, err)
}
