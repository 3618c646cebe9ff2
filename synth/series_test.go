package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Keluni100/orderflow/market"
)

func TestGenerateBarInvariants(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for _, sym := range market.Symbols() {
		sym := sym
		t.Run(sym, func(t *testing.T) {
			t.Parallel()

			profile := market.Profiles[sym]
			bars := NewSeriesGenerator(7).GenerateFrom(profile, 500, start)
			assert.Len(t, bars, 500)

			for i, b := range bars {
				assert.LessOrEqual(t, b.Low, b.Open, "bar %d", i)
				assert.LessOrEqual(t, b.Open, b.High, "bar %d", i)
				assert.LessOrEqual(t, b.Low, b.Close, "bar %d", i)
				assert.LessOrEqual(t, b.Close, b.High, "bar %d", i)
				assert.Equal(t, b.Volume, b.BidVolume+b.AskVolume, "bar %d", i)
				assert.GreaterOrEqual(t, b.BidVolume, int64(0), "bar %d", i)
				assert.GreaterOrEqual(t, b.AskVolume, int64(0), "bar %d", i)

				want := start.Add(time.Duration(i) * market.BarInterval)
				assert.True(t, b.Time.Equal(want), "bar %d timestamp", i)
			}
		})
	}
}

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	t.Parallel()

	profile := market.Profiles["EURUSD"]
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	a := NewSeriesGenerator(42).GenerateFrom(profile, 100, start)
	b := NewSeriesGenerator(42).GenerateFrom(profile, 100, start)
	assert.Equal(t, a, b)

	c := NewSeriesGenerator(43).GenerateFrom(profile, 100, start)
	assert.NotEqual(t, a, c)
}

func TestGenerateStaysNearBasePrice(t *testing.T) {
	t.Parallel()

	// Mean reversion keeps a low-volatility series in a sane band.
	profile := market.Profiles["EURUSD"]
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	bars := NewSeriesGenerator(11).GenerateFrom(profile, 500, start)

	for i, b := range bars {
		assert.Greater(t, b.Close, profile.BasePrice*0.9, "bar %d", i)
		assert.Less(t, b.Close, profile.BasePrice*1.1, "bar %d", i)
	}
}

func TestGenerateRoundsToProfilePrecision(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	// BTCUSD has tickSize >= 1, so every price is a whole number.
	bars := NewSeriesGenerator(3).GenerateFrom(market.Profiles["BTCUSD"], 50, start)
	for i, b := range bars {
		for _, px := range []float64{b.Open, b.High, b.Low, b.Close} {
			assert.Equal(t, market.RoundPrice(px, 1), px, "bar %d", i)
		}
	}
}
