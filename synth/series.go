// Package synth fabricates plausible market history: OHLCV bar series
// from a mean-reverting random walk, and intra-bar footprint levels.
// Both generators draw from an injected seeded PRNG so a run is fully
// reproducible from its seed.
package synth

import (
	"math"
	"math/rand"
	"time"

	"github.com/Keluni100/orderflow/market"
)

// meanReversionRate pulls price back toward the profile base each bar.
const meanReversionRate = 0.0001

// SeriesGenerator produces ordered Bar sequences for an instrument.
type SeriesGenerator struct {
	rng *rand.Rand
}

func NewSeriesGenerator(seed int64) *SeriesGenerator {
	return &SeriesGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns barCount bars ending now, spaced at market.BarInterval.
func (g *SeriesGenerator) Generate(p market.Profile, barCount int) []market.Bar {
	start := time.Now().Add(-time.Duration(barCount) * market.BarInterval)
	return g.GenerateFrom(p, barCount, start)
}

// GenerateFrom returns barCount bars starting at start.
//
// Each step applies drift toward the base price plus a uniform shock
// scaled by the instrument volatility. Volume clusters with the size of
// the move, and the bid/ask split leans 60/40 toward the shock side.
func (g *SeriesGenerator) GenerateFrom(p market.Profile, barCount int, start time.Time) []market.Bar {
	bars := make([]market.Bar, 0, barCount)

	price := p.BasePrice
	ts := start

	for i := 0; i < barCount; i++ {
		drift := (p.BasePrice - price) * meanReversionRate
		shock := (g.rng.Float64() - 0.5) * p.Volatility
		price *= 1 + drift + shock

		baseVolume := 5000 + g.rng.Float64()*10000
		multiplier := 1 + math.Abs(shock)*50
		totalVolume := int64(baseVolume * multiplier)

		// Bid takes the larger share when the shock is positive.
		imbalance := 0.4
		if shock > 0 {
			imbalance = 0.6
		}
		bidVolume := int64(float64(totalVolume) * imbalance)
		askVolume := totalVolume - bidVolume

		high := price + p.Spread + g.rng.Float64()*p.Volatility*price
		low := price - p.Spread - g.rng.Float64()*p.Volatility*price
		open := low + g.rng.Float64()*(high-low)
		close := low + g.rng.Float64()*(high-low)

		high = market.RoundPrice(high, p.TickSize)
		low = market.RoundPrice(low, p.TickSize)
		open = clamp(market.RoundPrice(open, p.TickSize), low, high)
		close = clamp(market.RoundPrice(close, p.TickSize), low, high)

		bars = append(bars, market.Bar{
			Time:      ts,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    totalVolume,
			BidVolume: bidVolume,
			AskVolume: askVolume,
			Profile:   p,
		})

		ts = ts.Add(market.BarInterval)
	}

	return bars
}

// clamp keeps independently rounded open/close inside [low, high] so the
// bar invariant survives integer-precision rounding.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
