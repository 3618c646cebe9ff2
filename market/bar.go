package market

import "time"

// BarInterval is the fixed bar period of every generated series.
const BarInterval = 5 * time.Minute

// Bar is one OHLCV snapshot with its synthesized bid/ask volume split.
// Invariants: Low <= Open <= High, Low <= Close <= High, and
// Volume == BidVolume + AskVolume. Bars are created once per session
// and never mutated.
type Bar struct {
	Time      time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
	BidVolume int64
	AskVolume int64
	Profile   Profile
}

// Range returns High - Low.
func (b Bar) Range() float64 { return b.High - b.Low }
