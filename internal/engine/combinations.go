package engine

import (
	"iter"

	"github.com/roach88/sigprobe/internal/catalog"
)

// Combinations yields every ordered tuple over types for arity 0 through
// maxArity, ascending by length. Within one arity, tuples follow the
// cartesian product in the order of types (the last position varies
// fastest). Each yielded slice is fresh and may be kept by the caller.
// The sequence is restartable: ranging over it again starts from the empty
// tuple.
func Combinations(types []catalog.Type, maxArity int) iter.Seq[[]catalog.Type] {
	return func(yield func([]catalog.Type) bool) {
		for n := 0; n <= maxArity; n++ {
			for tuple := range Arity(types, n) {
				if !yield(tuple) {
					return
				}
			}
		}
	}
}

// Arity yields every ordered tuple of exactly n types: len(types)^n tuples,
// or the single empty tuple when n is 0.
func Arity(types []catalog.Type, n int) iter.Seq[[]catalog.Type] {
	return func(yield func([]catalog.Type) bool) {
		if n < 0 || (n > 0 && len(types) == 0) {
			return
		}

		idx := make([]int, n)
		for {
			tuple := make([]catalog.Type, n)
			for i, j := range idx {
				tuple[i] = types[j]
			}
			if !yield(tuple) {
				return
			}

			// Odometer increment, last position fastest.
			pos := n - 1
			for pos >= 0 {
				idx[pos]++
				if idx[pos] < len(types) {
					break
				}
				idx[pos] = 0
				pos--
			}
			if pos < 0 {
				return
			}
		}
	}
}

// Count returns the number of tuples Combinations yields.
func Count(numTypes, maxArity int) int {
	total, level := 0, 1
	for n := 0; n <= maxArity; n++ {
		total += level
		level *= numTypes
	}
	return total
}
