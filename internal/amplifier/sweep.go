package amplifier

import (
	"context"
	"fmt"
	"sort"
)

// Result is the best signal found by a sweep and the phase settings that
// produced it.
type Result struct {
	Phases []int64
	Signal int64
}

// Sweep tries every permutation of the phase settings and returns the one
// producing the highest signal.
func (c *Chain) Sweep(ctx context.Context, phases []int64, feedback bool) (Result, error) {
	run := c.Series
	if feedback {
		run = c.Feedback
	}

	var best Result
	found := false

	for _, permutation := range Permutations(phases) {
		signal, err := run(ctx, permutation)
		if err != nil {
			return Result{}, fmt.Errorf("phases %v: %w", permutation, err)
		}
		if !found || signal > best.Signal {
			best = Result{Phases: permutation, Signal: signal}
			found = true
		}
	}

	if !found {
		return Result{}, ErrNoSignal
	}
	return best, nil
}

// Permutations returns all orderings of the values in lexicographic order of
// the sorted input.
func Permutations(values []int64) [][]int64 {
	current := make([]int64, len(values))
	copy(current, values)
	sort.Slice(current, func(i, j int) bool { return current[i] < current[j] })

	var result [][]int64
	for {
		permutation := make([]int64, len(current))
		copy(permutation, current)
		result = append(result, permutation)

		if !nextPermutation(current) {
			return result
		}
	}
}

// nextPermutation rearranges the values into the next lexicographically
// greater ordering and returns false if the values were the last ordering.
func nextPermutation(values []int64) bool {
	i := len(values) - 2
	for i >= 0 && values[i] >= values[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(values) - 1
	for values[j] <= values[i] {
		j--
	}
	values[i], values[j] = values[j], values[i]

	for l, r := i+1, len(values)-1; l < r; l, r = l+1, r-1 {
		values[l], values[r] = values[r], values[l]
	}
	return true
}
