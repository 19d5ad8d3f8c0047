// internal/solver/engine.go
//
// Engine holds the read-only dictionaries shared by every session: the
// ordered legal guesses, the answer dictionary and the precomputed
// guess×answer feedback table. It computes entropy, probability and score
// vectors against an AnswerSet and refines sets on observed feedback.
//
// An Engine is safe for concurrent use by independent sessions.
package solver

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"runtime"
	"slices"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/fxh90/WordleSolver/internal/feedback"
)

// VectorCache stores entropy vectors by key. Implementations must be safe
// for concurrent use; the engine never mutates a vector after Put.
type VectorCache interface {
	Get(key string) ([]float64, bool)
	Put(key string, v []float64)
}

// Observer receives timing for entropy computations.
type Observer interface {
	ObserveEntropy(d time.Duration, cached bool)
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the goroutines used per entropy computation.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithCache injects a vector cache shared by the caller.
func WithCache(c VectorCache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithObserver attaches an entropy timing observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// Engine is the shared, read-only solving context.
type Engine struct {
	guesses     []string
	answers     []string
	length      int
	guessIndex  map[string]int
	answerIndex map[string]int
	answerOf    []int // guess index -> answer index, or -1
	table       *feedback.Table
	workers     int
	cache       VectorCache
	observer    Observer
	fingerprint string

	entropyRuns atomic.Int64
}

// NewEngine validates the dictionaries and precomputes the feedback table.
// Guess order is kept as given and decides ties when ranking.
func NewEngine(guesses, answers []string, opts ...Option) (*Engine, error) {
	if len(answers) == 0 {
		return nil, ErrEmptyAnswerSet
	}
	if len(guesses) == 0 {
		return nil, fmt.Errorf("%w: no legal guesses", ErrUnknownGuess)
	}

	e := &Engine{
		guesses:     slices.Clone(guesses),
		answers:     slices.Clone(answers),
		length:      len(answers[0]),
		guessIndex:  make(map[string]int, len(guesses)),
		answerIndex: make(map[string]int, len(answers)),
		workers:     runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(e)
	}

	table, err := feedback.NewTable(e.guesses, e.answers, e.workers)
	if err != nil {
		return nil, err
	}
	e.table = table

	for i, a := range e.answers {
		if _, ok := e.answerIndex[a]; !ok {
			e.answerIndex[a] = i
		}
	}
	e.answerOf = make([]int, len(e.guesses))
	for i, g := range e.guesses {
		if _, ok := e.guessIndex[g]; !ok {
			e.guessIndex[g] = i
		}
		if ai, ok := e.answerIndex[g]; ok {
			e.answerOf[i] = ai
		} else {
			e.answerOf[i] = -1
		}
	}
	e.fingerprint = dictionaryFingerprint(e.guesses, e.answers)
	return e, nil
}

func dictionaryFingerprint(guesses, answers []string) string {
	h, _ := blake2b.New256(nil)
	var n [8]byte
	for _, list := range [][]string{guesses, answers} {
		binary.LittleEndian.PutUint64(n[:], uint64(len(list)))
		h.Write(n[:])
		for _, w := range list {
			h.Write([]byte(w))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// Guesses returns the legal guesses in ranking order. Callers must not modify it.
func (e *Engine) Guesses() []string { return e.guesses }

// Answers returns the answer dictionary. Callers must not modify it.
func (e *Engine) Answers() []string { return e.answers }

// Length is the word length shared by both dictionaries.
func (e *Engine) Length() int { return e.length }

// Fingerprint identifies the dictionaries (contents and order).
func (e *Engine) Fingerprint() string { return e.fingerprint }

// EntropyRuns counts entropy vectors computed (cache hits excluded).
func (e *Engine) EntropyRuns() int64 { return e.entropyRuns.Load() }

// FullSet returns a set holding every answer.
func (e *Engine) FullSet() *AnswerSet { return fullSet(len(e.answers)) }

// IsLegal reports whether w can be played: a legal guess or an answer.
func (e *Engine) IsLegal(w string) bool {
	if _, ok := e.guessIndex[w]; ok {
		return true
	}
	_, ok := e.answerIndex[w]
	return ok
}

// IsAnswer reports whether w is in the answer dictionary.
func (e *Engine) IsAnswer(w string) bool {
	_, ok := e.answerIndex[w]
	return ok
}

// Words lists the members of s in dictionary order.
func (e *Engine) Words(s *AnswerSet) []string {
	idx := s.Indices()
	out := make([]string, len(idx))
	for i, a := range idx {
		out[i] = e.answers[a]
	}
	return out
}

// SetOf builds the set of the given answer words; unknown words are ignored.
func (e *Engine) SetOf(words []string) *AnswerSet {
	s := emptySet(len(e.answers))
	for _, w := range words {
		if i, ok := e.answerIndex[w]; ok {
			s.bits.Set(uint(i))
		}
	}
	return s
}

func (e *Engine) entropyKey(s *AnswerSet) string {
	return e.fingerprint + ":entropy:" + s.Fingerprint()
}

// OpeningKey is the cache key of the entropy vector over the full answer
// dictionary, the one vector every new session asks for.
func (e *Engine) OpeningKey() string { return e.entropyKey(e.FullSet()) }

// Entropies returns the entropy in bits of every legal guess against s.
func (e *Engine) Entropies(s *AnswerSet) ([]float64, error) {
	n := s.Len()
	if n == 0 {
		return nil, ErrEmptyAnswerSet
	}
	start := time.Now()

	key := ""
	if e.cache != nil {
		key = e.entropyKey(s)
		if v, ok := e.cache.Get(key); ok && len(v) == len(e.guesses) {
			e.observe(start, true)
			return slices.Clone(v), nil
		}
	}

	idx := s.Indices()
	space := feedback.Space(e.length)
	out := make([]float64, len(e.guesses))

	chunk := (len(e.guesses) + e.workers - 1) / e.workers
	var g errgroup.Group
	for lo := 0; lo < len(e.guesses); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(e.guesses))
		g.Go(func() error {
			hist := make([]int, space)
			for gi := lo; gi < hi; gi++ {
				row := e.table.Row(gi)
				for _, a := range idx {
					hist[row[a]]++
				}
				out[gi] = entropyOf(hist, n)
				for _, a := range idx {
					hist[row[a]] = 0
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.entropyRuns.Add(1)

	if e.cache != nil {
		e.cache.Put(key, slices.Clone(out))
	}
	e.observe(start, false)
	return out, nil
}

func (e *Engine) observe(start time.Time, cached bool) {
	if e.observer != nil {
		e.observer.ObserveEntropy(time.Since(start), cached)
	}
}

// entropyOf returns -Σ p log2 p over the nonzero buckets of hist.
func entropyOf(hist []int, total int) float64 {
	t := float64(total)
	h := 0.0
	for _, c := range hist {
		if c == 0 {
			continue
		}
		p := float64(c) / t
		h -= p * math.Log2(p)
	}
	return h
}

// Probabilities returns, per legal guess, the chance it is the answer under
// a uniform prior over s: 1/|s| for members, 0 otherwise.
func (e *Engine) Probabilities(s *AnswerSet) ([]float64, error) {
	n := s.Len()
	if n == 0 {
		return nil, ErrEmptyAnswerSet
	}
	p := 1 / float64(n)
	out := make([]float64, len(e.guesses))
	for gi, ai := range e.answerOf {
		if s.Contains(ai) {
			out[gi] = p
		}
	}
	return out, nil
}

// Vectors bundles the per-guess vectors for one answer set.
type Vectors struct {
	Entropies     []float64
	Probabilities []float64
	Scores        []float64
}

// Vectors computes entropies, probabilities and strategy scores against s.
func (e *Engine) Vectors(s *AnswerSet, score ScoreFunc) (Vectors, error) {
	ent, err := e.Entropies(s)
	if err != nil {
		return Vectors{}, err
	}
	prob, err := e.Probabilities(s)
	if err != nil {
		return Vectors{}, err
	}
	scores, err := ComputeScore(ent, prob, score)
	if err != nil {
		return Vectors{}, err
	}
	return Vectors{Entropies: ent, Probabilities: prob, Scores: scores}, nil
}

// Best returns the index of the highest scoring guess against s; the first
// maximal guess in dictionary order wins ties.
func (e *Engine) Best(s *AnswerSet, score ScoreFunc) (int, error) {
	v, err := e.Vectors(s, score)
	if err != nil {
		return -1, err
	}
	return Argmax(v.Scores), nil
}

// Argmax returns the first index holding the maximum value, or -1 when empty.
func Argmax(v []float64) int {
	best := -1
	for i, x := range v {
		if best < 0 || x > v[best] {
			best = i
		}
	}
	return best
}

// Candidate is one ranked guess.
type Candidate struct {
	Word        string  `json:"word"`
	Entropy     float64 `json:"entropy"`
	Probability float64 `json:"probability"`
	Score       float64 `json:"score"`
}

// Rank returns the top n guesses against s by descending score, ties in
// dictionary order. n <= 0 returns every guess.
func (e *Engine) Rank(s *AnswerSet, score ScoreFunc, n int) ([]Candidate, error) {
	v, err := e.Vectors(s, score)
	if err != nil {
		return nil, err
	}
	return RankVectors(e.guesses, v, n), nil
}

// RankVectors orders guesses by descending score, ties in dictionary order.
func RankVectors(guesses []string, v Vectors, n int) []Candidate {
	order := make([]int, len(guesses))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return v.Scores[order[a]] > v.Scores[order[b]] })
	if n <= 0 || n > len(order) {
		n = len(order)
	}
	out := make([]Candidate, n)
	for i := 0; i < n; i++ {
		gi := order[i]
		out[i] = Candidate{
			Word:        guesses[gi],
			Entropy:     v.Entropies[gi],
			Probability: v.Probabilities[gi],
			Score:       v.Scores[gi],
		}
	}
	return out
}

// Refine returns the members of s whose feedback against guess equals code.
// The result is a subset of s; s is not modified. When nothing matches the
// empty set is returned with ErrEmptyAnswerSet.
func (e *Engine) Refine(guess string, s *AnswerSet, code feedback.Code) (*AnswerSet, error) {
	if !code.Valid(e.length) {
		return nil, fmt.Errorf("%w: %d", feedback.ErrInvalidCode, code)
	}
	next := emptySet(len(e.answers))

	if gi, ok := e.guessIndex[guess]; ok {
		row := e.table.Row(gi)
		for _, a := range s.Indices() {
			if row[a] == code {
				next.bits.Set(uint(a))
			}
		}
	} else {
		if _, ok := e.answerIndex[guess]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGuess, guess)
		}
		for _, a := range s.Indices() {
			c, err := feedback.Encode(guess, e.answers[a])
			if err != nil {
				return nil, err
			}
			if c == code {
				next.bits.Set(uint(a))
			}
		}
	}

	if next.Len() == 0 {
		return next, ErrEmptyAnswerSet
	}
	return next, nil
}
