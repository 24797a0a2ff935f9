// Package stateagg implements the state-duration summary: given a stream of
// (timestamp, state) transitions, it accumulates how long the tracked
// entity spent in each distinct state.
//
// States are either arbitrary strings or integers. String states are
// interned into a single growing buffer per summary (the same
// offset-pair-into-a-blob trick the original implementation uses), so
// repeated states cost one int64 pair rather than a fresh string each time;
// integer states are tagged with a sentinel offset so the two kinds can
// share one StateEntry representation without a variant tag byte.
//
// The summary always keeps its full transition timeline internally (not
// only the per-state totals), since durations within an arbitrary
// sub-range and the materialized timeline itself are both things a caller
// can ask for. The timeline queries (StateTimeline, StatePeriods,
// DurationInRange) are always available; New takes no options.
package stateagg
