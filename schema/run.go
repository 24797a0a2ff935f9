package schema

import "iter"

// Run holds a variable-length sequence of T that has already been decoded.
// All returns an iter.Seq[T] over the held values and Slice returns them
// directly; neither decodes anything. TrivialCopy reports the flag given to
// NewRun, which records whether the element codec is trivially copyable.
type Run[T any] struct {
	values       []T
	trivialCopy  bool
}

// NewRun wraps an already-decoded slice of values as a Run.
func NewRun[T any](values []T, trivialCopy bool) Run[T] {
	return Run[T]{values: values, trivialCopy: trivialCopy}
}

// Len returns the number of elements in the run.
func (r Run[T]) Len() int { return len(r.values) }

// TrivialCopy reports the trivial-copy flag the Run was created with.
func (r Run[T]) TrivialCopy() bool { return r.trivialCopy }

// All returns an iterator over the run's values in order.
func (r Run[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range r.values {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns the run's values as a slice. Safe to call regardless of
// TrivialCopy, but callers on a hot path should prefer All() when
// TrivialCopy is false to avoid implying random-access is free.
func (r Run[T]) Slice() []T { return r.values }
