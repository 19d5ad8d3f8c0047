// internal/words/words.go
//
// Word list management for the solver.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the
//     embedded defaults in package assets.
//   - Keep only valid words of the configured length, lowercased.
//   - Expose the answer dictionary (file order) and the legal guesses
//     (answers ∪ allowed, sorted so rankings are reproducible).
//
// Loading rules (Load):
//   1. AnswersFile and AllowedFile both set → answers from the first, extra
//      guesses from the second.
//   2. Only AllowedFile set → that file serves as both lists.
//   3. Only AnswersFile set → answers are the only legal guesses.
//   4. Neither set → embedded defaults.
//
// Constraints:
//   • Words must be Length alphabetic letters (a–z).
//   • Answers are always legal guesses.
package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/fxh90/WordleSolver/assets"
	"github.com/fxh90/WordleSolver/internal/feedback"
)

// ErrEmptyAnswers is returned when no valid answer survives loading.
var ErrEmptyAnswers = errors.New("words: answers list is empty")

// Source says where to read the lists from.
type Source struct {
	AnswersFile string
	AllowedFile string
	Length      int // 0 selects feedback.DefaultLength
}

// Lists holds the loaded dictionaries.
type Lists struct {
	Answers []string // answer dictionary in file order, deduplicated
	Guesses []string // legal guesses, sorted

	length     int
	answersSet map[string]struct{}
	allowedSet map[string]struct{}
}

// Load reads the dictionaries described by src.
func Load(src Source) (*Lists, error) {
	length := src.Length
	if length == 0 {
		length = feedback.DefaultLength
	}
	if !feedback.ValidLength(length) {
		return nil, fmt.Errorf("words: %w: %d", feedback.ErrInvalidLength, length)
	}

	var ansList, allowList []string
	var err error
	switch {
	case src.AnswersFile != "" && src.AllowedFile != "":
		if ansList, err = readWordFile(src.AnswersFile, length); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(src.AllowedFile, length); err != nil {
			return nil, err
		}

	case src.AllowedFile != "":
		if allowList, err = readWordFile(src.AllowedFile, length); err != nil {
			return nil, err
		}
		ansList = allowList

	case src.AnswersFile != "":
		if ansList, err = readWordFile(src.AnswersFile, length); err != nil {
			return nil, err
		}

	default:
		raw, err := assets.AnswersList()
		if err != nil {
			return nil, err
		}
		ansList = normalize(raw, length)
		raw, err = assets.AllowedList()
		if err != nil {
			return nil, err
		}
		allowList = normalize(raw, length)
	}

	return New(ansList, allowList, length)
}

// New builds Lists from in-memory word slices. Invalid words are dropped.
func New(answers, allowed []string, length int) (*Lists, error) {
	l := &Lists{
		length:     length,
		answersSet: make(map[string]struct{}, len(answers)),
		allowedSet: make(map[string]struct{}, len(answers)+len(allowed)),
	}
	for _, w := range normalize(answers, length) {
		if _, dup := l.answersSet[w]; dup {
			continue
		}
		l.answersSet[w] = struct{}{}
		l.allowedSet[w] = struct{}{}
		l.Answers = append(l.Answers, w)
	}
	if len(l.Answers) == 0 {
		return nil, ErrEmptyAnswers
	}
	for _, w := range normalize(allowed, length) {
		l.allowedSet[w] = struct{}{}
	}

	l.Guesses = make([]string, 0, len(l.allowedSet))
	for w := range l.allowedSet {
		l.Guesses = append(l.Guesses, w)
	}
	sort.Strings(l.Guesses)
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string, length int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return normalize(out, length), nil
}

// normalize lowercases and trims, keeping only valid words.
func normalize(lines []string, length int) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) == length && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Normalize lowercases and trims w, reporting whether it is a well-formed
// word of the lists' length.
func (l *Lists) Normalize(w string) (string, bool) {
	w = strings.TrimSpace(strings.ToLower(w))
	return w, len(w) == l.length && isAlpha(w)
}

// Length is the word length of both lists.
func (l *Lists) Length() int { return l.length }

// IsAllowed reports whether w is a legal guess.
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is in the answer dictionary.
func (l *Lists) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// RandomAnswer returns a cryptographically random answer.
func (l *Lists) RandomAnswer() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(l.Answers))))
	return l.Answers[n.Int64()]
}

// Stats returns counts of loaded words: (answers, guesses).
func (l *Lists) Stats() (answersCount int, guessesCount int) {
	return len(l.Answers), len(l.Guesses)
}
