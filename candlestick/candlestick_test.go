package candlestick_test

import (
	"testing"

	"github.com/arloliu/aggcore/candlestick"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestFromTickAndAddTick(t *testing.T) {
	s := candlestick.FromTick(0, 10.0, f(100))
	s.AddTick(10, 12.0, f(50))
	s.AddTick(20, 8.0, f(25))
	s.AddTick(5, 11.0, f(10))

	require.Equal(t, 10.0, s.Open.Val)
	require.Equal(t, int64(0), s.Open.TS)
	require.Equal(t, 12.0, s.High.Val)
	require.Equal(t, 8.0, s.Low.Val)
	require.Equal(t, 8.0, s.Close.Val)
	require.Equal(t, int64(20), s.Close.TS)

	vol, ok := s.Volume()
	require.True(t, ok)
	require.Equal(t, 185.0, vol)
}

func TestAddTickWithoutVolumeDemotes(t *testing.T) {
	s := candlestick.FromTick(0, 10.0, f(100))
	s.AddTick(10, 11.0, nil)

	_, ok := s.Volume()
	require.False(t, ok)
	_, ok = s.VWAP()
	require.False(t, ok)
}

func TestVWAPUsesTickPriceNotRunningAverage(t *testing.T) {
	s := candlestick.FromTick(0, 0.0, f(1))
	s.AddTick(6*3600, 1.0, f(1))
	s.AddTick(12*3600, 2.0, f(1))
	s.AddTick(18*3600, 3.0, f(1))
	s.AddTick(23*3600+59*60+59, 4.0, f(1))

	require.Equal(t, 0.0, s.Open.Val)
	require.Equal(t, 4.0, s.High.Val)
	require.Equal(t, 0.0, s.Low.Val)
	require.Equal(t, 4.0, s.Close.Val)

	vol, ok := s.Volume()
	require.True(t, ok)
	require.Equal(t, 5.0, vol)

	vwap, ok := s.VWAP()
	require.True(t, ok)
	require.Equal(t, 2.0, vwap)
}

func TestCombine(t *testing.T) {
	a := candlestick.FromTick(0, 10.0, f(5))
	a.AddTick(10, 15.0, f(5))

	b := candlestick.FromTick(20, 5.0, f(5))
	b.AddTick(30, 8.0, f(5))

	a.Combine(b)

	require.Equal(t, 10.0, a.Open.Val)
	require.Equal(t, 15.0, a.High.Val)
	require.Equal(t, 5.0, a.Low.Val)
	require.Equal(t, 8.0, a.Close.Val)

	vol, ok := a.Volume()
	require.True(t, ok)
	require.Equal(t, 20.0, vol)
}

func TestCombineVolumeMismatchDemotes(t *testing.T) {
	a := candlestick.FromTick(0, 10.0, f(5))
	b := candlestick.FromTick(10, 12.0, nil)

	a.Combine(b)

	_, ok := a.Volume()
	require.False(t, ok)
}
