// assets/embed.go
//
// Embedded default word lists and SQL migrations.
// The lists are small enough to ship in the binary so the game runs
// without any configured word files. Lines come back raw (comments and
// case included); internal/words normalizes them.

package assets

import (
	"bufio"
	"embed"
	"io/fs"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

//go:embed sql/*.sql
var migrations embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// AnswersList returns the raw lines of the embedded answer list.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// AllowedList returns the raw lines of the embedded extra guess list.
// It does not include the answers.
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}

// Migrations exposes the SQL migration files rooted at the sql directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
