// internal/words/db.go
//
// SQLite-backed word store.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout).
//   - Applying migrations embedded under assets/sql (idempotent, recorded in _migrations).
//   - Importing word lists and reading them back for the engine.
//
// Note: the store holds vocabulary only. Games are never persisted.

package words

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-core/assets"
)

// Word kinds stored in the words.kind column.
const (
	KindAnswer = "answer"
	KindGuess  = "guess"
)

// DB wraps the word store connection.
type DB struct {
	SQL *sql.DB
}

/**
 * OpenDB opens (and creates if missing) a SQLite word store and migrates it.
 *
 * - Ensures parent directory exists for relative paths (e.g. ./data/words.db).
 * - Configures busy timeout and WAL journaling mode.
 */
func OpenDB(dsn string) (*DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{SQL: db}, nil
}

// Close releases the connection pool.
func (d *DB) Close() error { return d.SQL.Close() }

/**
 * migrate applies *.sql files from files in lexical order.
 *
 * - Uses a _migrations table to track applied files.
 * - Each file runs inside its own transaction.
 */
func migrate(db *sql.DB, files fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(files, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

/**
 * Import inserts both lists, ignoring words already present.
 * Answers are also stored as guesses. Returns the number of new rows.
 */
func (d *DB) Import(ctx context.Context, l Lists) (int, error) {
	l = Merge(l)

	tx, err := d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word, kind) VALUES (?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	added := 0
	insert := func(kind string, list []string) error {
		for _, w := range list {
			res, err := stmt.ExecContext(ctx, w, kind)
			if err != nil {
				return fmt.Errorf("insert %s %q: %w", kind, w, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected %s %q: %w", kind, w, err)
			}
			added += int(n)
		}
		return nil
	}
	if err := insert(KindAnswer, l.Answers); err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := insert(KindGuess, l.Guesses); err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// Lists reads both vocabularies back in alphabetical order.
func (d *DB) Lists(ctx context.Context) (Lists, error) {
	answers, err := d.list(ctx, KindAnswer)
	if err != nil {
		return Lists{}, err
	}
	guesses, err := d.list(ctx, KindGuess)
	if err != nil {
		return Lists{}, err
	}
	return Lists{Guesses: guesses, Answers: answers}, nil
}

func (d *DB) list(ctx context.Context, kind string) ([]string, error) {
	rows, err := d.SQL.QueryContext(ctx, `SELECT word FROM words WHERE kind=? ORDER BY word`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Stats returns (answers, allowed guesses) row counts.
func (d *DB) Stats(ctx context.Context) (answers int, allowed int, err error) {
	row := d.SQL.QueryRowContext(ctx, `
        SELECT
            COALESCE(SUM(kind='answer'), 0),
            COALESCE(SUM(kind='guess'), 0)
        FROM words`)
	err = row.Scan(&answers, &allowed)
	return answers, allowed, err
}
