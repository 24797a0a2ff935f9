// Package heartbeat implements a liveness-interval summary: given a declared
// observation window and an expected heartbeat interval, it tracks which
// sub-ranges of the window saw heartbeats arriving no further apart than
// the interval, and which did not (gaps).
//
// Heartbeats are buffered and only turned into sorted, non-overlapping
// liveness intervals when the buffer fills or the summary is read, which
// keeps Insert cheap for high-frequency heartbeat streams. Combine merges
// two summaries sharing the same interval length, joining liveness
// intervals from either side that overlap or touch.
package heartbeat
