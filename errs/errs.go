// Package errs collects the sentinel errors raised by aggcore's packages.
//
// Every exported sentinel is meant to be wrapped with additional detail at
// the call site using fmt.Errorf("%w: ...", errs.ErrX, detail) and compared
// with errors.Is by callers.
package errs

import "errors"

// Flat codec errors (flatcodec, schema).
var (
	// ErrNotEnoughBytes is returned by try-ref style decoding when the input
	// slice is shorter than the minimum length required.
	ErrNotEnoughBytes = errors.New("not enough bytes")
	// ErrInvalidTag is returned when a tagged sum's discriminant byte does
	// not match any declared variant.
	ErrInvalidTag = errors.New("invalid tag")
	// ErrMisalignedField is returned by the schema compiler when a field's
	// required alignment is not satisfied by the running offset.
	ErrMisalignedField = errors.New("misaligned field")
	// ErrAlignmentExceeded is returned when a field's required alignment
	// exceeds the alignment currently guaranteed by the schema.
	ErrAlignmentExceeded = errors.New("field alignment exceeds guaranteed alignment")
	// ErrDuplicateTag is returned when a tagged sum declares two variants
	// sharing the same tag value.
	ErrDuplicateTag = errors.New("duplicate tag value")
	// ErrVarlenOfVarlen is returned when a variable-length run is declared to
	// contain a lifetime-bearing nested record.
	ErrVarlenOfVarlen = errors.New("variable-length run of variable-length elements is not allowed")
	// ErrInvalidFieldName is returned when a schema field or length
	// expression references an undeclared field.
	ErrInvalidFieldName = errors.New("invalid field name")
	// ErrMissingPredicate is returned when a conditional field declares no
	// presence predicate.
	ErrMissingPredicate = errors.New("conditional field has no predicate")
)

// Time-weighted average errors (timeweight).
var (
	ErrOrderError               = errors.New("timestamps out of order")
	ErrMethodMismatch           = errors.New("interpolation method mismatch")
	ErrInterpolateMissingPoint  = errors.New("linear interpolation requires a next point")
	ErrZeroDuration             = errors.New("window has zero duration")
	ErrEmptyIterator            = errors.New("no input points provided")
)

// State-duration errors (stateagg).
var (
	ErrAmbiguousState = errors.New("state cannot be both values at the same time")
)

// Heartbeat errors (heartbeat).
var (
	ErrOutOfWindow        = errors.New("heartbeat outside the declared window")
	ErrWindowTooNarrow    = errors.New("window is not wider than the liveness interval")
	ErrIntervalMismatch   = errors.New("liveness interval mismatch")
	ErrBeyondAggregate    = errors.New("query range is beyond the original aggregate bounds")
)

// Aggregate scaffold errors (aggregate).
var (
	ErrMissingState          = errors.New("aggregate spec missing state type")
	ErrMissingTransition     = errors.New("aggregate spec missing transition function")
	ErrMissingFinal          = errors.New("aggregate spec missing final function")
	ErrIncompleteRollupGroup = errors.New("serialize, deserialize and combine must all be present or all be absent")
	ErrParallelSafeRequires  = errors.New("parallel_safe requires serialize, deserialize and combine")
	ErrInvalidArgument       = errors.New("transition argument missing a SQL type annotation")
)

// T-digest errors (digest).
var (
	ErrInvalidBucketCap = errors.New("t-digest bucket cap must be positive")
)

// Candlestick errors (candlestick).
var (
	ErrVolumeMismatch = errors.New("volume variant mismatch")
)
