// Package timeweight implements the time-weighted average summary: an
// accumulator over (timestamp, value) points that computes the area under
// the curve joining them, using either last-observation-carried-forward
// (LOCF) or linear interpolation between points.
//
// Accum folds one point at a time; Combine merges two summaries covering
// disjoint, ordered time ranges (it is not commutative with overlapping
// ranges and is not parallel-safe in general, matching the original
// implementation's combine contract). WithBounds extrapolates a summary to
// a wider window using points observed outside it, which is how continuous
// aggregates extend a windowed summary to the edges of a larger bucket.
package timeweight
