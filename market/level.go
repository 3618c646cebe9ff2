package market

// PriceLevel is one footprint row: the bid/ask volume synthesized at a
// discrete price inside a bar. Delta = AskVolume - BidVolume and
// TotalVolume = BidVolume + AskVolume always hold.
//
// Levels are derived on demand and never persisted; resynthesizing the
// same bar with a fresh random draw yields a statistically similar but
// different distribution.
type PriceLevel struct {
	Price       float64
	BidVolume   int64
	AskVolume   int64
	Delta       int64
	TotalVolume int64
}
