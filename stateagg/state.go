package stateagg

import "math"

// intStateSentinel marks a StateEntry as carrying an integer state directly
// in B rather than a [A,B) byte range into a states blob.
const intStateSentinel = math.MaxInt64

// StateEntry references a single interned state: either an integer value
// (A == intStateSentinel, value in B) or a [A,B) byte range into a
// Summary's states blob.
type StateEntry struct {
	A int64
	B int64
}

// Value is a state observed on the wire, before interning.
type Value struct {
	IsInt bool
	Str   string
	Int   int64
}

// StringValue builds a string-valued state.
func StringValue(s string) Value { return Value{Str: s} }

// IntValue builds an integer-valued state.
func IntValue(i int64) Value { return Value{IsInt: true, Int: i} }

// Equal reports whether two values represent the same state.
func (v Value) Equal(other Value) bool {
	if v.IsInt != other.IsInt {
		return false
	}

	if v.IsInt {
		return v.Int == other.Int
	}

	return v.Str == other.Str
}
