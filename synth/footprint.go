package synth

import (
	"math"
	"math/rand"

	"github.com/Keluni100/orderflow/market"
)

// Footprint fabricates the per-price bid/ask volume decomposition of a
// bar, highest price first. The distribution concentrates near the
// bar's close with an exponential decay, and each level gets its own
// random scale, so volumes are illustrative: they need not sum back to
// the bar total.
type Footprint struct {
	rng *rand.Rand
}

func NewFootprint(seed int64) *Footprint {
	return &Footprint{rng: rand.New(rand.NewSource(seed))}
}

// Levels returns at least five levels covering [bar.Low, bar.High],
// ordered from the highest price down.
func (f *Footprint) Levels(bar market.Bar) []market.PriceLevel {
	tick := bar.Profile.TickSize

	span := bar.Range()
	numLevels := int(math.Max(5, math.Round(span/tick)))

	// Zero-range bars would put NaN in the decay exponent.
	if span <= 0 {
		span = tick
	}

	levels := make([]market.PriceLevel, 0, numLevels)
	for i := 0; i < numLevels; i++ {
		price := bar.Low + float64(i)/float64(numLevels)*bar.Range()
		weight := math.Exp(-math.Abs(price-bar.Close) / (span * 0.3))

		bidVol := int64(float64(bar.BidVolume) / float64(numLevels) * weight * (0.3 + f.rng.Float64()*1.4))
		askVol := int64(float64(bar.AskVolume) / float64(numLevels) * weight * (0.3 + f.rng.Float64()*1.4))

		levels = append(levels, market.PriceLevel{
			Price:       market.RoundPrice(price, tick),
			BidVolume:   bidVol,
			AskVolume:   askVol,
			Delta:       askVol - bidVol,
			TotalVolume: bidVol + askVol,
		})
	}

	// Highest price first, top of the stack.
	for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
		levels[i], levels[j] = levels[j], levels[i]
	}
	return levels
}
