package timeweight

import "github.com/arloliu/aggcore/errs"

// Method selects how the value between two points is interpolated when
// computing the weighted sum.
type Method uint8

const (
	// LOCF carries the earlier point's value forward across the whole gap.
	LOCF Method = iota
	// Linear interpolates linearly between the two points.
	Linear
)

// Point is a single (timestamp, value) sample. Timestamps are in whatever
// monotonically increasing integer unit the caller works in (typically
// microseconds since an epoch).
type Point struct {
	TS  int64
	Val float64
}

// interpolateLinear returns the value at ts on the line through a and b.
func interpolateLinear(a, b Point, ts int64) float64 {
	frac := float64(ts-a.TS) / float64(b.TS-a.TS)
	return a.Val + (b.Val-a.Val)*frac
}

// interpolate computes the point at target under m, given the point before
// it (first) and optionally the point after it (second). Linear requires
// second; LOCF ignores it.
func (m Method) interpolate(first Point, second *Point, target int64) (Point, error) {
	if second != nil && second.TS <= first.TS {
		return Point{}, errs.ErrOrderError
	}

	switch m {
	case LOCF:
		return Point{TS: target, Val: first.Val}, nil
	case Linear:
		if second == nil {
			return Point{}, errs.ErrInterpolateMissingPoint
		}

		return Point{TS: target, Val: interpolateLinear(first, *second, target)}, nil
	default:
		return Point{}, errs.ErrMethodMismatch
	}
}

// weightedSum returns the area under the curve between first and second,
// assuming second.TS > first.TS.
func (m Method) weightedSum(first, second Point) float64 {
	duration := float64(second.TS - first.TS)

	switch m {
	case Linear:
		return (first.Val + second.Val) / 2.0 * duration
	default: // LOCF
		return first.Val * duration
	}
}

// Summary accumulates a time-weighted average over a stream of points.
type Summary struct {
	Method Method
	First  Point
	Last   Point
	WSum   float64
}

// New starts a summary at a single point.
func New(pt Point, method Method) *Summary {
	return &Summary{Method: method, First: pt, Last: pt}
}

// Accum folds pt into the summary. Points with the same timestamp as the
// last-seen point are silently ignored (only the first value at a given
// instant is used); points strictly earlier than the last-seen point are
// rejected with ErrOrderError.
func (s *Summary) Accum(pt Point) error {
	if pt.TS < s.Last.TS {
		return errs.ErrOrderError
	}

	if pt.TS == s.Last.TS {
		return nil
	}

	s.WSum += s.Method.weightedSum(s.Last, pt)
	s.Last = pt

	return nil
}

// FromSortedPoints builds a summary from a non-empty, timestamp-sorted
// slice of points.
func FromSortedPoints(points []Point, method Method) (*Summary, error) {
	if len(points) == 0 {
		return nil, errs.ErrEmptyIterator
	}

	s := New(points[0], method)
	for _, p := range points[1:] {
		if err := s.Accum(p); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Combine merges s with next, which must cover a disjoint, strictly later
// time range (next.First.TS must be greater than s.Last.TS). This is why
// the aggregate is not parallel-safe in the general case: callers must
// guarantee disjoint, ordered partitions, as a GROUP BY over a monotonic
// time bucket does.
func (s *Summary) Combine(next *Summary) (*Summary, error) {
	if s.Method != next.Method {
		return nil, errs.ErrMethodMismatch
	}

	if s.Last.TS >= next.First.TS {
		return nil, errs.ErrOrderError
	}

	return &Summary{
		Method: s.Method,
		First:  s.First,
		Last:   next.Last,
		WSum:   s.WSum + next.WSum + s.Method.weightedSum(s.Last, next.First),
	}, nil
}

// CombineSorted folds a non-empty, time-ordered slice of disjoint summaries
// into one via repeated Combine.
func CombineSorted(summaries []*Summary) (*Summary, error) {
	if len(summaries) == 0 {
		return nil, errs.ErrEmptyIterator
	}

	s := summaries[0]
	for _, next := range summaries[1:] {
		var err error

		s, err = s.Combine(next)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// WithPrev extrapolates the summary's start back to targetStart using prev,
// a point observed before the summary's current first point.
func (s *Summary) WithPrev(targetStart int64, prev Point) (*Summary, error) {
	if prev.TS >= s.First.TS || targetStart > s.First.TS || prev.TS > targetStart {
		return nil, errs.ErrOrderError
	}

	if targetStart == s.First.TS {
		clone := *s
		return &clone, nil
	}

	newFirst, err := s.Method.interpolate(prev, &s.First, targetStart)
	if err != nil {
		return nil, err
	}

	clone := *s
	clone.WSum = s.WSum + s.Method.weightedSum(newFirst, s.First)
	clone.First = newFirst

	return &clone, nil
}

// WithNext extrapolates the summary's end out to targetEnd, optionally
// using next (required under Linear, ignored under LOCF).
func (s *Summary) WithNext(targetEnd int64, next *Point) (*Summary, error) {
	if targetEnd < s.Last.TS {
		return nil, errs.ErrOrderError
	}

	if targetEnd == s.Last.TS {
		clone := *s
		return &clone, nil
	}

	if next != nil && next.TS < targetEnd {
		return nil, errs.ErrOrderError
	}

	newLast, err := s.Method.interpolate(s.Last, next, targetEnd)
	if err != nil {
		return nil, err
	}

	clone := *s
	clone.WSum = s.WSum + s.Method.weightedSum(s.Last, newLast)
	clone.Last = newLast

	return &clone, nil
}

// WithBounds applies WithPrev and/or WithNext when the corresponding
// argument is non-nil.
func (s *Summary) WithBounds(prevBound *PrevBound, nextBound *NextBound) (*Summary, error) {
	calc := s

	if prevBound != nil {
		var err error

		calc, err = calc.WithPrev(prevBound.Start, prevBound.Point)
		if err != nil {
			return nil, err
		}
	}

	if nextBound != nil {
		var err error

		calc, err = calc.WithNext(nextBound.End, nextBound.Point)
		if err != nil {
			return nil, err
		}
	}

	return calc, nil
}

// PrevBound names the extrapolation target and observed point for WithPrev.
type PrevBound struct {
	Start int64
	Point Point
}

// NextBound names the extrapolation target and optional observed point for
// WithNext.
type NextBound struct {
	End   int64
	Point *Point
}

// Average evaluates the time-weighted average over the summary's span.
func (s *Summary) Average() (float64, error) {
	if s.Last.TS == s.First.TS {
		return 0, errs.ErrZeroDuration
	}

	duration := float64(s.Last.TS - s.First.TS)

	return s.WSum / duration, nil
}

// Integral evaluates the integral (area under the curve) over the summary's
// span. A zero-width summary has an integral of zero.
func (s *Summary) Integral() float64 {
	if s.Last.TS == s.First.TS {
		return 0
	}

	return s.WSum
}
