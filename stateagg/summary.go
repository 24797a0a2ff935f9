package stateagg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arloliu/aggcore/errs"
)

// Record is one materialized point in a Summary's transition timeline.
type Record struct {
	TS    int64
	State StateEntry
}

// Summary accumulates per-state durations and the full transition timeline
// over a stream of (timestamp, state) observations.
type Summary struct {
	states    string
	durations map[StateEntry]int64
	first     Record
	last      Record
	// lastEnd is the end boundary of the still-open final state period.
	// It equals last.TS until Interpolate extends it to a target window's
	// end; kept separate from last.TS so last.TS can keep rejecting
	// out-of-order AddState calls against the real last observation.
	lastEnd  int64
	timeline []Record
	hasData  bool
}

// New returns an empty Summary.
func New() *Summary {
	return &Summary{durations: make(map[StateEntry]int64)}
}

func (s *Summary) internValue(v Value) StateEntry {
	if v.IsInt {
		return StateEntry{A: intStateSentinel, B: v.Int}
	}

	if idx := strings.Index(s.states, v.Str); idx >= 0 {
		return StateEntry{A: int64(idx), B: int64(idx + len(v.Str))}
	}

	a := int64(len(s.states))
	s.states += v.Str

	return StateEntry{A: a, B: a + int64(len(v.Str))}
}

func (s *Summary) findValue(v Value) (StateEntry, bool) {
	if v.IsInt {
		return StateEntry{A: intStateSentinel, B: v.Int}, true
	}

	idx := strings.Index(s.states, v.Str)
	if idx < 0 {
		return StateEntry{}, false
	}

	return StateEntry{A: int64(idx), B: int64(idx + len(v.Str))}, true
}

// Materialize resolves an interned entry back to its Value.
func (s *Summary) Materialize(e StateEntry) Value {
	if e.A == intStateSentinel {
		return IntValue(e.B)
	}

	return StringValue(s.states[e.A:e.B])
}

// AddState folds one (timestamp, state) observation into the summary.
// A repeated timestamp with the same state as the last one seen is a
// no-op; a repeated timestamp with a different state is rejected, since a
// single instant cannot be in two states at once. Timestamps earlier than
// the last one seen are rejected as out of order.
func (s *Summary) AddState(ts int64, v Value) error {
	entry := s.internValue(v)

	if !s.hasData {
		rec := Record{TS: ts, State: entry}
		s.first = rec
		s.last = rec
		s.lastEnd = ts
		s.timeline = append(s.timeline, rec)
		s.hasData = true

		return nil
	}

	if ts < s.last.TS {
		return errs.ErrOrderError
	}

	if ts == s.last.TS {
		if entry != s.last.State {
			return fmt.Errorf("%w: at time %d", errs.ErrAmbiguousState, ts)
		}

		return nil
	}

	s.durations[s.last.State] += ts - s.last.TS
	s.last = Record{TS: ts, State: entry}
	s.lastEnd = ts
	s.timeline = append(s.timeline, s.last)

	return nil
}

// HasData reports whether any state has been observed.
func (s *Summary) HasData() bool { return s.hasData }

// First returns the first observed (timestamp, state) point.
func (s *Summary) First() (int64, Value) { return s.first.TS, s.Materialize(s.first.State) }

// Last returns the last observed (timestamp, state) point.
func (s *Summary) Last() (int64, Value) { return s.last.TS, s.Materialize(s.last.State) }

// DurationIn returns the total time spent in state v so far. Time spent in
// the current (most recent, still open) state is not counted until another
// transition closes it out, Interpolate extends it to a window end, or
// Combine attributes the gap before the next summary to it.
func (s *Summary) DurationIn(v Value) int64 {
	entry, ok := s.findValue(v)
	if !ok {
		return 0
	}

	return s.durations[entry]
}

// Period is a maximal span during which a Summary was continuously in one
// state, as produced by StateTimeline and StatePeriods.
type Period struct {
	Start int64
	End   int64
	State Value
}

// StateTimeline returns the summary's materialized timeline as a sequence
// of periods, collapsing consecutive transitions that carry the same
// state. The final period's end is lastEnd, which equals the last observed
// timestamp until Interpolate extends it to a target window's end.
func (s *Summary) StateTimeline() []Period {
	if !s.hasData {
		return nil
	}

	var out []Period

	for i, rec := range s.timeline {
		end := s.lastEnd
		if i+1 < len(s.timeline) {
			end = s.timeline[i+1].TS
		}

		state := s.Materialize(rec.State)

		if n := len(out); n > 0 && out[n-1].State.Equal(state) {
			out[n-1].End = end

			continue
		}

		out = append(out, Period{Start: rec.TS, End: end, State: state})
	}

	return out
}

// StatePeriods returns the periods from StateTimeline during which the
// summary was in state v.
func (s *Summary) StatePeriods(v Value) []Period {
	var out []Period

	for _, p := range s.StateTimeline() {
		if p.State.Equal(v) {
			out = append(out, p)
		}
	}

	return out
}

// IntoValues returns each state the summary has ever observed paired with
// its accumulated duration, in no particular order.
func (s *Summary) IntoValues() []struct {
	State    Value
	Duration int64
} {
	out := make([]struct {
		State    Value
		Duration int64
	}, 0, len(s.durations))

	for entry, dur := range s.durations {
		out = append(out, struct {
			State    Value
			Duration int64
		}{State: s.Materialize(entry), Duration: dur})
	}

	return out
}

// LiveAt returns the state active at time t and true, if t falls within
// the summary's observed span [First, lastEnd]; otherwise it returns false.
func (s *Summary) LiveAt(t int64) (Value, bool) {
	if !s.hasData || t < s.first.TS || t > s.lastEnd {
		return Value{}, false
	}

	idx := sort.Search(len(s.timeline), func(i int) bool { return s.timeline[i].TS > t }) - 1
	if idx < 0 {
		return Value{}, false
	}

	return s.Materialize(s.timeline[idx].State), true
}

// Interpolate extends the summary to cover a target window [start,
// start+delta). If the window starts before the summary's first
// observation, and prev's last-seen state would still be live at start
// (its last-seen timestamp plus delta reaches past this summary's first
// observation), the gap is backfilled with prev's last state. If the
// window ends after the summary's last observation, the last state is
// assumed to persist through to the window's end.
func (s *Summary) Interpolate(start, delta int64, prev *Summary) error {
	if !s.hasData {
		return nil
	}

	if start < s.first.TS && prev != nil && prev.hasData {
		if prev.last.TS+delta > s.first.TS {
			gap := s.first.TS - start
			pState := prev.Materialize(prev.last.State)
			pEntry := s.internValue(pState)

			s.durations[pEntry] += gap

			if len(s.timeline) > 0 && s.timeline[0].State == pEntry {
				s.timeline[0].TS = start
			} else {
				s.timeline = append([]Record{{TS: start, State: pEntry}}, s.timeline...)
			}

			s.first.TS = start
			s.first.State = pEntry
		}
	}

	end := start + delta
	if end > s.lastEnd {
		s.durations[s.last.State] += end - s.lastEnd
		s.lastEnd = end
	}

	return nil
}

// DurationInRange returns the time spent in state v within [start, end],
// including a pro-rated share of whichever state was open when start or
// end falls mid-interval.
func (s *Summary) DurationInRange(v Value, start, end int64) int64 {
	if !s.hasData || end <= start {
		return 0
	}

	target, ok := s.findValue(v)
	if !ok {
		return 0
	}

	var total int64

	for i, rec := range s.timeline {
		segStart := rec.TS

		segEnd := end
		if i+1 < len(s.timeline) {
			segEnd = s.timeline[i+1].TS
		}

		if rec.State != target {
			continue
		}

		lo := max64(segStart, start)
		hi := min64(segEnd, end)

		if hi > lo {
			total += hi - lo
		}
	}

	return total
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}

	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}

	return b
}

// Combine merges other, which must cover a disjoint, strictly later time
// range, into s. The gap between s's last transition and other's first is
// attributed to s's last state, since no transition was observed in it.
func (s *Summary) Combine(other *Summary) error {
	if !other.hasData {
		return nil
	}

	if !s.hasData {
		s.states = other.states
		s.durations = cloneDurations(other.durations)
		s.first = other.first
		s.last = other.last
		s.lastEnd = other.lastEnd
		s.timeline = append([]Record(nil), other.timeline...)
		s.hasData = true

		return nil
	}

	if s.lastEnd >= other.first.TS {
		return errs.ErrOrderError
	}

	s.durations[s.last.State] += other.first.TS - s.lastEnd

	remap := make(map[StateEntry]StateEntry, len(other.durations))
	remapEntry := func(e StateEntry) StateEntry {
		if ne, ok := remap[e]; ok {
			return ne
		}

		ne := s.internValue(other.Materialize(e))
		remap[e] = ne

		return ne
	}

	for e, dur := range other.durations {
		s.durations[remapEntry(e)] += dur
	}

	for _, rec := range other.timeline {
		s.timeline = append(s.timeline, Record{TS: rec.TS, State: remapEntry(rec.State)})
	}

	s.last = Record{TS: other.last.TS, State: remapEntry(other.last.State)}
	s.lastEnd = other.lastEnd

	return nil
}

func cloneDurations(m map[StateEntry]int64) map[StateEntry]int64 {
	out := make(map[StateEntry]int64, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
