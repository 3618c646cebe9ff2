package synth

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Keluni100/orderflow/market"
)

func testBar(t *testing.T) market.Bar {
	t.Helper()

	profile := market.Profiles["EURUSD"]
	return market.Bar{
		Time:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Open:      1.0850,
		High:      1.0862,
		Low:       1.0845,
		Close:     1.0858,
		Volume:    12000,
		BidVolume: 7000,
		AskVolume: 5000,
		Profile:   profile,
	}
}

func TestLevelsIdentities(t *testing.T) {
	t.Parallel()

	levels := NewFootprint(1).Levels(testBar(t))
	assert.GreaterOrEqual(t, len(levels), 5)

	for i, lvl := range levels {
		assert.Equal(t, lvl.AskVolume-lvl.BidVolume, lvl.Delta, "level %d", i)
		assert.Equal(t, lvl.BidVolume+lvl.AskVolume, lvl.TotalVolume, "level %d", i)
		assert.GreaterOrEqual(t, lvl.BidVolume, int64(0), "level %d", i)
		assert.GreaterOrEqual(t, lvl.AskVolume, int64(0), "level %d", i)
	}
}

func TestLevelsHighestFirst(t *testing.T) {
	t.Parallel()

	levels := NewFootprint(2).Levels(testBar(t))
	for i := 1; i < len(levels); i++ {
		assert.GreaterOrEqual(t, levels[i-1].Price, levels[i].Price, "level %d", i)
	}
}

func TestLevelsMinimumCount(t *testing.T) {
	t.Parallel()

	// A narrow bar still gets five levels.
	bar := testBar(t)
	bar.High = 1.0851
	bar.Low = 1.0850
	bar.Close = 1.0850

	levels := NewFootprint(3).Levels(bar)
	assert.GreaterOrEqual(t, len(levels), 5)
}

func TestLevelsZeroRangeBar(t *testing.T) {
	t.Parallel()

	// high == low must not poison the decay weight with NaN.
	bar := testBar(t)
	bar.Open = 1.0850
	bar.High = 1.0850
	bar.Low = 1.0850
	bar.Close = 1.0850

	levels := NewFootprint(4).Levels(bar)
	assert.GreaterOrEqual(t, len(levels), 5)

	for i, lvl := range levels {
		assert.False(t, math.IsNaN(lvl.Price), "level %d price", i)
		assert.InDelta(t, 1.0850, lvl.Price, 1e-9, "level %d", i)
		assert.GreaterOrEqual(t, lvl.TotalVolume, int64(0), "level %d", i)
	}
}

func TestLevelsConcentrateNearClose(t *testing.T) {
	t.Parallel()

	// Averaged over many draws, volume near the close dominates the
	// far end of the range.
	bar := testBar(t)
	foot := NewFootprint(5)

	var nearClose, farFromClose int64
	for i := 0; i < 200; i++ {
		levels := foot.Levels(bar)
		for _, lvl := range levels {
			if math.Abs(lvl.Price-bar.Close) < bar.Range()*0.2 {
				nearClose += lvl.TotalVolume
			}
			if math.Abs(lvl.Price-bar.Close) > bar.Range()*0.6 {
				farFromClose += lvl.TotalVolume
			}
		}
	}

	assert.Greater(t, nearClose, farFromClose)
}
