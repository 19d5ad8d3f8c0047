package solver

import (
	"fmt"
	"sort"
)

// ScoreFunc ranks a guess from its entropy (bits) and its probability of
// being the answer. Implementations must be pure.
type ScoreFunc func(entropy, probability float64) float64

// Strategy names accepted by LookupStrategy.
const (
	StrategyEntropy            = "entropy"
	StrategyEntropyProbability = "entropy+probability"
)

// DefaultK is the combined strategy's weight.
const DefaultK = 1.1

var strategies = map[string]func(k float64) ScoreFunc{
	StrategyEntropy: func(float64) ScoreFunc {
		return func(entropy, _ float64) float64 { return entropy }
	},
	// Rewards a guess that may win now: the denominator shrinks towards
	// k²-1 as the probability approaches 1.
	StrategyEntropyProbability: func(k float64) ScoreFunc {
		k2 := k * k
		return func(entropy, p float64) float64 { return (entropy + p) / (k2 - p*p) }
	},
}

// LookupStrategy returns the named scoring strategy. k is only used by the
// combined strategy and must be greater than 1; zero selects DefaultK.
func LookupStrategy(name string, k float64) (ScoreFunc, error) {
	build, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	if k == 0 {
		k = DefaultK
	}
	if k <= 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeight, k)
	}
	return build(k), nil
}

// Strategies lists the registered strategy names.
func Strategies() []string {
	out := make([]string, 0, len(strategies))
	for name := range strategies {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
