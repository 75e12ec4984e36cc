// internal/words/words.go
//
// Provides word list loading for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from a SQLite word store, a YAML
//     word pack, plain newline files, or the embedded defaults.
//   - Normalize every list: trim, uppercase, drop blanks and # comments,
//     drop duplicates.
//   - Merge answers into the allowed guesses so answers ⊆ guesses holds
//     before the lists reach the engine.
//
// Source selection (Load), first match wins:
//   1. Options.DBPath set      → read both lists from the SQLite store.
//   2. Options.PackFile set    → read a YAML word pack.
//   3. Options.AllowedFile set → read it, plus Options.AnswersFile if set;
//      with no answers file the allowed list doubles as the answers.
//   4. otherwise               → embedded defaults from the assets package.
//
// Word shape (length, A–Z) is not checked here; the engine validates it.

package words

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-core/assets"
)

// Lists is a normalized vocabulary ready for the LOAD_DATA action.
type Lists struct {
	Guesses []string
	Answers []string
}

// Stats returns counts of loaded words: (answers, allowed).
func (l Lists) Stats() (answersCount int, allowedCount int) {
	return len(l.Answers), len(l.Guesses)
}

// Options selects where word lists come from.
type Options struct {
	DBPath      string
	PackFile    string
	AnswersFile string
	AllowedFile string
}

// Source names the list source Load would pick for these options.
func (o Options) Source() string {
	switch {
	case o.DBPath != "":
		return "sqlite"
	case o.PackFile != "":
		return "pack"
	case o.AllowedFile != "":
		return "files"
	default:
		return "embedded"
	}
}

// Load reads the vocabulary from the configured source.
// Returns an error if the answers list ends up empty.
func Load(ctx context.Context, opts Options) (Lists, error) {
	var (
		l   Lists
		err error
	)
	switch opts.Source() {
	case "sqlite":
		l, err = loadDB(ctx, opts.DBPath)
	case "pack":
		var p Pack
		p, err = ReadPack(opts.PackFile)
		l = p.Lists()
	case "files":
		l, err = loadFiles(opts.AnswersFile, opts.AllowedFile)
	default:
		l, err = Embedded()
	}
	if err != nil {
		return Lists{}, err
	}

	l = Merge(l)
	if len(l.Answers) == 0 {
		return Lists{}, fmt.Errorf("words: answers list is empty (source %s)", opts.Source())
	}
	log.Debug().Str("source", opts.Source()).Int("answers", len(l.Answers)).Int("allowed", len(l.Guesses)).Msg("word lists loaded")
	return l, nil
}

// Embedded returns the default lists compiled into the binary.
func Embedded() (Lists, error) {
	ans, err := assets.AnswersList()
	if err != nil {
		return Lists{}, fmt.Errorf("embedded answers: %w", err)
	}
	all, err := assets.AllowedList()
	if err != nil {
		return Lists{}, fmt.Errorf("embedded allowed: %w", err)
	}
	return Lists{Guesses: Normalize(all), Answers: Normalize(ans)}, nil
}

func loadFiles(answersPath, allowedPath string) (Lists, error) {
	allowed, err := ReadFile(allowedPath)
	if err != nil {
		return Lists{}, err
	}
	if answersPath == "" {
		return Lists{Guesses: allowed, Answers: allowed}, nil
	}
	answers, err := ReadFile(answersPath)
	if err != nil {
		return Lists{}, err
	}
	return Lists{Guesses: allowed, Answers: answers}, nil
}

func loadDB(ctx context.Context, path string) (Lists, error) {
	db, err := OpenDB(path)
	if err != nil {
		return Lists{}, err
	}
	defer db.Close()
	return db.Lists(ctx)
}

// ReadFile loads one word per line from a file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// Parse reads newline-delimited words, trimmed and uppercased.
// Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return Normalize(out), nil
}

// Normalize trims and uppercases words, dropping blanks, comments and
// repeats while keeping first-seen order.
func Normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Merge normalizes both lists and ensures every answer is also a guess.
func Merge(l Lists) Lists {
	answers := Normalize(l.Answers)
	guesses := Normalize(append(append([]string{}, l.Guesses...), answers...))
	return Lists{Guesses: guesses, Answers: answers}
}
