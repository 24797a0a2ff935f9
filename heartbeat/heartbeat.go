package heartbeat

import (
	"fmt"
	"sort"

	"github.com/arloliu/aggcore/errs"
)

// bufferSize is the number of raw heartbeat timestamps buffered before a
// flush compresses them into liveness intervals.
const bufferSize = 1000

// Interval is a closed, inclusive [Start, End] span during which
// heartbeats arrived no further apart than the declared interval length.
type Interval struct {
	Start int64
	End   int64
}

// Summary tracks liveness over a declared [Start, End] observation window.
type Summary struct {
	start       int64
	end         int64
	last        int64
	intervalLen int64
	buffer      []int64
	liveness    []Interval
}

// New declares a new summary over [start, end] with the given expected
// heartbeat interval. The window must be strictly wider than the interval.
func New(start, end, intervalLen int64) (*Summary, error) {
	if end-start <= intervalLen {
		return nil, fmt.Errorf("%w: window [%d,%d] is not wider than interval %d", errs.ErrWindowTooNarrow, start, end, intervalLen)
	}

	return &Summary{start: start, end: end, last: start, intervalLen: intervalLen}, nil
}

// Start returns the declared window start.
func (s *Summary) Start() int64 { return s.start }

// End returns the declared window end.
func (s *Summary) End() int64 { return s.end }

// LastSeen returns the most recent heartbeat timestamp folded in so far
// (including buffered, unflushed ones).
func (s *Summary) LastSeen() int64 { return s.last }

// IntervalLen returns the declared heartbeat interval.
func (s *Summary) IntervalLen() int64 { return s.intervalLen }

// Insert records a heartbeat at the given time, which must fall within
// [Start, End]. The buffer is flushed automatically once it reaches
// bufferSize entries.
func (s *Summary) Insert(t int64) error {
	if t < s.start || t > s.end {
		return fmt.Errorf("%w: %d outside [%d,%d]", errs.ErrOutOfWindow, t, s.start, s.end)
	}

	s.buffer = append(s.buffer, t)
	if t > s.last {
		s.last = t
	}

	if len(s.buffer) >= bufferSize {
		s.flush()
	}

	return nil
}

// flush sorts the pending buffer, turns it into liveness intervals, and
// merges them into s.liveness.
func (s *Summary) flush() {
	if len(s.buffer) == 0 {
		return
	}

	sort.Slice(s.buffer, func(i, j int) bool { return s.buffer[i] < s.buffer[j] })

	var newIntervals []Interval

	runStart := s.buffer[0]
	bound := runStart + s.intervalLen

	for _, t := range s.buffer[1:] {
		if t <= bound {
			bound = t + s.intervalLen
			continue
		}

		newIntervals = append(newIntervals, Interval{Start: runStart, End: bound})
		runStart = t
		bound = t + s.intervalLen
	}

	newIntervals = append(newIntervals, Interval{Start: runStart, End: bound})

	// A run's bound can overshoot the declared window end (it's computed
	// as last-heartbeat + intervalLen, not clamped against s.end), so trim
	// every interval back down to the window before merging it in.
	for i := range newIntervals {
		if newIntervals[i].End > s.end {
			newIntervals[i].End = s.end
		}
	}

	if len(s.liveness) == 0 {
		s.liveness = newIntervals
	} else {
		s.liveness = mergeIntervals(s.liveness, newIntervals, s.intervalLen)
	}

	s.buffer = s.buffer[:0]
}

// Flush forces any buffered heartbeats to be compressed into liveness
// intervals. Queries call this implicitly; exposed for callers that want
// to force it ahead of a read-heavy phase.
func (s *Summary) Flush() { s.flush() }

// mergeIntervals merges two sorted, non-overlapping interval slices into
// one sorted, non-overlapping slice, joining intervals that overlap or
// touch. Intervals separated by a gap stay separate, exactly as flush keeps
// separate runs within a single batch.
func mergeIntervals(a, b []Interval, intervalLen int64) []Interval {
	merged := make([]Interval, 0, len(a)+len(b))
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		if a[i].Start <= b[j].Start {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}

	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)

	return collapseAdjacent(merged, intervalLen)
}

func collapseAdjacent(sorted []Interval, intervalLen int64) []Interval {
	if len(sorted) == 0 {
		return sorted
	}

	out := make([]Interval, 0, len(sorted))
	curr := sorted[0]

	for _, next := range sorted[1:] {
		if next.Start <= curr.End {
			if next.End > curr.End {
				curr.End = next.End
			}

			continue
		}

		out = append(out, curr)
		curr = next
	}

	out = append(out, curr)

	return out
}

// Combine merges other into s. Both summaries must share the same
// heartbeat interval. The resulting window is the union of both windows,
// and the two liveness sets are merged with mergeIntervals, which joins
// intervals that overlap or touch.
func (s *Summary) Combine(other *Summary) error {
	if s.intervalLen != other.intervalLen {
		return errs.ErrIntervalMismatch
	}

	s.flush()
	other.flush()

	if other.start < s.start {
		s.start = other.start
	}

	if other.end > s.end {
		s.end = other.end
	}

	if other.last > s.last {
		s.last = other.last
	}

	if len(s.liveness) == 0 {
		s.liveness = other.liveness
	} else if len(other.liveness) > 0 {
		s.liveness = mergeIntervals(s.liveness, other.liveness, s.intervalLen)
	}

	return nil
}

// Liveness returns the summary's materialized, sorted, non-overlapping
// liveness intervals, flushing any buffered heartbeats first.
func (s *Summary) Liveness() []Interval {
	s.flush()
	return s.liveness
}

// TrimTo clips the summary's declared window and liveness intervals down
// to [start, end], which must be contained within [s.Start(), s.End()].
func (s *Summary) TrimTo(start, end int64) {
	s.flush()

	clipped := make([]Interval, 0, len(s.liveness))

	for _, iv := range s.liveness {
		if iv.End < start || iv.Start > end {
			continue
		}

		if iv.Start < start {
			iv.Start = start
		}

		if iv.End > end {
			iv.End = end
		}

		clipped = append(clipped, iv)
	}

	s.start = start
	s.end = end
	s.liveness = clipped

	if s.last > end {
		s.last = end
	}
}

// InterpolateStart extends the summary's liveness back to its own window
// start using the predecessor summary's last-seen heartbeat, when the gap
// between pred's last heartbeat and this summary's window start is no
// wider than the heartbeat interval. pred must end no later than s starts.
//
// The inserted/extended interval runs [s.start, pred.last+intervalLen): a
// heartbeat could have arrived anywhere in that span without breaking the
// expected cadence, so the whole span counts as live, not just the single
// instant pred.last.
func (s *Summary) InterpolateStart(pred *Summary) error {
	if pred.end > s.start {
		return errs.ErrOrderError
	}

	s.flush()
	pred.flush()

	gap := s.start - pred.last
	if gap > s.intervalLen {
		return nil
	}

	bound := pred.last + s.intervalLen
	if bound > s.end {
		bound = s.end
	}

	if len(s.liveness) == 0 {
		s.liveness = []Interval{{Start: s.start, End: bound}}

		return nil
	}

	if s.liveness[0].Start == s.start {
		if bound > s.liveness[0].End {
			s.liveness[0].End = bound
		}
	} else {
		s.liveness = append([]Interval{{Start: s.start, End: bound}}, s.liveness...)
	}

	return nil
}

// NumLiveRanges returns the number of disjoint liveness intervals.
func (s *Summary) NumLiveRanges() int {
	return len(s.Liveness())
}

// NumGaps returns the number of gaps between liveness intervals, including
// the leading and trailing gaps against the declared window bounds.
func (s *Summary) NumGaps() int {
	liveness := s.Liveness()

	gaps := 0
	cursor := s.start

	for _, iv := range liveness {
		if iv.Start > cursor {
			gaps++
		}

		cursor = iv.End
	}

	if cursor < s.end {
		gaps++
	}

	return gaps
}

// Uptime returns the total duration covered by liveness intervals.
func (s *Summary) Uptime() int64 {
	var total int64
	for _, iv := range s.Liveness() {
		total += iv.End - iv.Start
	}

	return total
}

// Downtime returns the total duration of the window not covered by
// liveness intervals.
func (s *Summary) Downtime() int64 {
	return (s.end - s.start) - s.Uptime()
}

// LiveAt reports whether t falls within a liveness interval.
func (s *Summary) LiveAt(t int64) bool {
	liveness := s.Liveness()

	idx := sort.Search(len(liveness), func(i int) bool { return liveness[i].End >= t })
	if idx == len(liveness) {
		return false
	}

	return liveness[idx].Start <= t && t <= liveness[idx].End
}
