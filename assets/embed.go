// Package assets embeds the default word lists and the SQLite migrations so
// the binaries run without any files next to them.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed words/answers.txt words/allowed.txt
var wordsFS embed.FS

//go:embed sql/*.sql
var migrationsFS embed.FS

// readLines returns the non-empty, non-comment lines of an embedded word file,
// lowercased and trimmed.
func readLines(name string) ([]string, error) {
	f, err := wordsFS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// AnswersList returns the embedded answer dictionary in file order.
func AnswersList() ([]string, error) {
	return readLines("words/answers.txt")
}

// AllowedList returns the embedded extra legal guesses in file order.
func AllowedList() ([]string, error) {
	return readLines("words/allowed.txt")
}

// Migration is one embedded SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded SQL scripts in lexical order.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "sql")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, n := range names {
		b, err := migrationsFS.ReadFile("sql/" + n)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: n, SQL: string(b)})
	}
	return out, nil
}
