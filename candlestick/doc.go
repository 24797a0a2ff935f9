// Package candlestick implements an OHLC(V) summary: the open, high, low
// and close price observed over a window, plus an optional running volume
// and volume-weighted average price (VWAP).
//
// A Summary starts from a single tick (FromTick) and is folded
// incrementally with AddTick; Combine merges two summaries covering any two
// (possibly overlapping) windows, unlike timeweight's disjoint-only
// contract, since open/high/low/close are all order-independent extrema or
// boundary picks.
package candlestick
