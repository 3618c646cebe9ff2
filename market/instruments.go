// market/instruments.go
package market

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownInstrument is returned when a symbol is not in the catalog.
// Callers must leave session state untouched when they see it.
var ErrUnknownInstrument = errors.New("unknown instrument")

// Profile holds the per-instrument market constants used by the series
// generator and the execution engine. Profiles are immutable.
type Profile struct {
	Symbol     string  `json:"symbol" yaml:"symbol"`
	BasePrice  float64 `json:"base_price" yaml:"base_price"`
	Volatility float64 `json:"volatility" yaml:"volatility"`
	Spread     float64 `json:"spread" yaml:"spread"`
	TickSize   float64 `json:"tick_size" yaml:"tick_size"`
	LotSize    float64 `json:"lot_size" yaml:"lot_size"`
}

var Profiles = map[string]Profile{
	"EURUSD": {Symbol: "EURUSD", BasePrice: 1.0850, Volatility: 0.0003, Spread: 0.00015, TickSize: 0.0001, LotSize: 100000},
	"GBPUSD": {Symbol: "GBPUSD", BasePrice: 1.2650, Volatility: 0.0004, Spread: 0.0002, TickSize: 0.0001, LotSize: 100000},
	"BTCUSD": {Symbol: "BTCUSD", BasePrice: 45000, Volatility: 0.015, Spread: 5, TickSize: 1, LotSize: 1},
	"XAUUSD": {Symbol: "XAUUSD", BasePrice: 2050, Volatility: 0.008, Spread: 0.5, TickSize: 0.1, LotSize: 100},
	"NQ":     {Symbol: "NQ", BasePrice: 16500, Volatility: 0.005, Spread: 0.25, TickSize: 0.25, LotSize: 20},
}

// Lookup returns the profile for symbol or ErrUnknownInstrument.
func Lookup(symbol string) (Profile, error) {
	p, ok := Profiles[symbol]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownInstrument, symbol)
	}
	return p, nil
}

// Symbols returns the catalog symbols in sorted order.
func Symbols() []string {
	out := make([]string, 0, len(Profiles))
	for s := range Profiles {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
