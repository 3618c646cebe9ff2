package market

import (
	"math"
	"strconv"
)

// PriceDecimals is the display and rounding precision implied by a tick
// size: whole numbers at tick >= 1, otherwise 4 decimal places. This is
// a profile-derived policy, not a presentation detail; generated prices
// are rounded with it.
func PriceDecimals(tickSize float64) int {
	if tickSize >= 1 {
		return 0
	}
	return 4
}

// RoundPrice rounds p to the precision implied by tickSize.
func RoundPrice(p, tickSize float64) float64 {
	pow := math.Pow(10, float64(PriceDecimals(tickSize)))
	return math.Round(p*pow) / pow
}

// FormatPrice renders p at the instrument's precision.
func FormatPrice(p, tickSize float64) string {
	return strconv.FormatFloat(p, 'f', PriceDecimals(tickSize), 64)
}
