package solver

import (
	"fmt"

	"github.com/fxh90/WordleSolver/internal/feedback"
)

// ComputeEntropy returns the entropy in bits of each guess against answers,
// assuming every answer is equally likely.
func ComputeEntropy(guesses, answers []string) ([]float64, error) {
	e, err := NewEngine(guesses, answers)
	if err != nil {
		return nil, err
	}
	return e.Entropies(e.FullSet())
}

// ComputeProbabilities returns 1/len(answers) for each guess that is itself
// an answer and 0 otherwise.
func ComputeProbabilities(guesses, answers []string) ([]float64, error) {
	if len(answers) == 0 {
		return nil, ErrEmptyAnswerSet
	}
	set := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		set[a] = struct{}{}
	}
	p := 1 / float64(len(answers))
	out := make([]float64, len(guesses))
	for i, g := range guesses {
		if _, ok := set[g]; ok {
			out[i] = p
		}
	}
	return out, nil
}

// ComputeScore combines entropy and probability vectors with score.
func ComputeScore(entropies, probabilities []float64, score ScoreFunc) ([]float64, error) {
	if len(entropies) != len(probabilities) {
		return nil, fmt.Errorf("%w: %d entropies, %d probabilities", ErrVectorMismatch, len(entropies), len(probabilities))
	}
	out := make([]float64, len(entropies))
	for i := range entropies {
		out[i] = score(entropies[i], probabilities[i])
	}
	return out, nil
}

// Refine keeps the answers whose feedback against guess equals code.
func Refine(guess string, answers []string, code feedback.Code) ([]string, error) {
	if !code.Valid(len(guess)) {
		return nil, fmt.Errorf("%w: %d", feedback.ErrInvalidCode, code)
	}
	var out []string
	for _, a := range answers {
		c, err := feedback.Encode(guess, a)
		if err != nil {
			return nil, err
		}
		if c == code {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return out, ErrEmptyAnswerSet
	}
	return out, nil
}
