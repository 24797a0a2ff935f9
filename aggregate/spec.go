package aggregate

import "github.com/arloliu/aggcore/errs"

// Spec declares one aggregate over state type S: how to fold a new input
// into the state, how to produce the final output, and optionally how to
// combine two partial states, and serialize/deserialize a state for
// storage or shipping between parallel workers.
type Spec[S any] struct {
	// Name identifies the aggregate for diagnostics and the Declaration's
	// Signature.
	Name string

	// Transition folds one input row's arguments into state, returning the
	// updated state.
	Transition func(state S, args ...any) (S, error)

	// Final produces the aggregate's output value from a finished state.
	Final func(state S) (any, error)

	// Combine merges two partial states computed over disjoint input sets.
	// Required for parallel aggregation; optional otherwise.
	Combine func(a, b S) (S, error)

	// Serialize encodes state for storage between transition calls across
	// a parallel worker boundary.
	Serialize func(state S) ([]byte, error)

	// Deserialize is Serialize's inverse.
	Deserialize func(data []byte) (S, error)

	// ParallelSafe declares that workers may run Transition independently
	// and merge results with Combine. Requires Combine, Serialize and
	// Deserialize all to be present.
	ParallelSafe bool
}

// Validate checks the same dependency rules aggregate_builder's macro
// enforces at compile time: Transition and Final are always required;
// Serialize, Deserialize and Combine must be all present or all absent;
// ParallelSafe requires all three of those.
func (s Spec[S]) Validate() error {
	if s.Transition == nil {
		return errs.ErrMissingTransition
	}

	if s.Final == nil {
		return errs.ErrMissingFinal
	}

	rollupCount := boolCount(s.Serialize != nil, s.Deserialize != nil, s.Combine != nil)
	if rollupCount != 0 && rollupCount != 3 {
		return errs.ErrIncompleteRollupGroup
	}

	if s.ParallelSafe && rollupCount != 3 {
		return errs.ErrParallelSafeRequires
	}

	return nil
}

func boolCount(bs ...bool) int {
	n := 0

	for _, b := range bs {
		if b {
			n++
		}
	}

	return n
}

// Declaration is the built, host-callable form of a Spec.
type Declaration[S any] struct {
	Signature    string
	ParallelSafe bool

	Transition  func(state S, args ...any) (S, error)
	Final       func(state S) (any, error)
	Combine     func(a, b S) (S, error)
	Serialize   func(state S) ([]byte, error)
	Deserialize func(data []byte) (S, error)
}

// Build validates spec and wraps it into a Declaration.
func Build[S any](spec Spec[S]) (*Declaration[S], error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	sig := spec.Name + "(state"
	if spec.Combine != nil {
		sig += ", combine"
	}

	if spec.Serialize != nil {
		sig += ", serialize, deserialize"
	}

	sig += ")"

	return &Declaration[S]{
		Signature:    sig,
		ParallelSafe: spec.ParallelSafe,
		Transition:   spec.Transition,
		Final:        spec.Final,
		Combine:      spec.Combine,
		Serialize:    spec.Serialize,
		Deserialize:  spec.Deserialize,
	}, nil
}
