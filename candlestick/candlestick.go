package candlestick

// Tick is a single (timestamp, price) observation.
type Tick struct {
	TS  int64
	Val float64
}

// volume holds the running transaction volume and volume-weighted price
// sum. A Summary started without volume carries the zero value (present is
// false). Once present is false it stays false for the rest of the
// summary's life, matching the Rust VolKind sum type where mixing a
// volume-less tick into a volume-bearing summary demotes it back to Missing
// rather than silently dropping the volume contribution.
type volume struct {
	present bool
	vol     float64
	vwapSum float64
}

// Summary accumulates OHLC(V) state over a window of ticks.
type Summary struct {
	Open  Tick
	High  Tick
	Low   Tick
	Close Tick
	vol   volume
}

// FromTick starts a summary from a single price observation, optionally
// carrying a starting volume (nil means no volume data for this tick).
func FromTick(ts int64, price float64, vol *float64) *Summary {
	s := &Summary{
		Open:  Tick{TS: ts, Val: price},
		High:  Tick{TS: ts, Val: price},
		Low:   Tick{TS: ts, Val: price},
		Close: Tick{TS: ts, Val: price},
	}

	if vol != nil {
		s.vol = volume{present: true, vol: *vol, vwapSum: *vol * price}
	}

	return s
}

// AddTick folds one more (ts, price, volume) observation into the summary.
// volume is nil when no volume is known for this tick; once any tick in the
// summary's life lacks volume, the summary's VWAP becomes permanently
// unavailable (vol.present flips back to false and stays false).
func (s *Summary) AddTick(ts int64, price float64, vol *float64) {
	if ts < s.Open.TS {
		s.Open = Tick{TS: ts, Val: price}
	}

	if price > s.High.Val {
		s.High = Tick{TS: ts, Val: price}
	}

	if price < s.Low.Val {
		s.Low = Tick{TS: ts, Val: price}
	}

	if ts > s.Close.TS {
		s.Close = Tick{TS: ts, Val: price}
	}

	if s.vol.present && vol != nil {
		s.vol.vol += *vol
		s.vol.vwapSum += *vol * price
	} else {
		s.vol = volume{}
	}
}

// Combine merges other into s, keeping the earlier open, the higher high,
// the lower low, the later close, and summing volume/VWAP when both
// summaries carry volume data.
func (s *Summary) Combine(other *Summary) {
	if other.Open.TS < s.Open.TS {
		s.Open = other.Open
	}

	if other.High.Val > s.High.Val {
		s.High = other.High
	}

	if other.Low.Val < s.Low.Val {
		s.Low = other.Low
	}

	if other.Close.TS > s.Close.TS {
		s.Close = other.Close
	}

	if s.vol.present && other.vol.present {
		s.vol.vol += other.vol.vol
		s.vol.vwapSum += other.vol.vwapSum
	} else {
		s.vol = volume{}
	}
}

// Volume returns the summed volume and whether it is available.
func (s *Summary) Volume() (float64, bool) {
	return s.vol.vol, s.vol.present
}

// VWAP returns the volume-weighted average price and whether it is
// available (it requires volume data and a non-zero total volume).
func (s *Summary) VWAP() (float64, bool) {
	if !s.vol.present || s.vol.vol == 0 {
		return 0, false
	}

	return s.vol.vwapSum / s.vol.vol, true
}
