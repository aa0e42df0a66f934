// Package itertools holds the small set of [iter.Seq] helpers gochroma's
// vertex/candidate iteration actually needs.
package itertools

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Range yields [start,end).
func Range[Int constraints.Integer](start, end Int) iter.Seq[Int] {
	return func(yield func(Int) bool) {
		for i := start; i < end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Filter yields only the values of seq for which pred returns true.
func Filter[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}
