// market/rates.go
package market

import "strings"

// CurrencyPair keys a conversion rate in a RateTable.
type CurrencyPair struct {
	From string
	To   string
}

// RateTable maps (from, to) currency pairs to a fixed conversion rate.
// Pairs not present convert at 1.0. The table is injected into the
// execution engine so the FX model stays swappable.
type RateTable map[CurrencyPair]float64

// DefaultRates carries the single fixed rule the simulator ships with:
// USD-quoted profits land in a sterling account at 0.79.
func DefaultRates() RateTable {
	return RateTable{
		{From: "USD", To: "£"}: 0.79,
	}
}

// Convert translates amount from one currency to another. Unknown pairs
// and same-currency conversions pass through unchanged.
func (r RateTable) Convert(amount float64, from, to string) float64 {
	if from == to || from == "" {
		return amount
	}
	if rate, ok := r[CurrencyPair{From: from, To: to}]; ok {
		return amount * rate
	}
	return amount
}

// QuoteCurrency reports the currency an instrument's P&L is quoted in.
// Every USD-suffixed symbol in the catalog quotes in USD; index futures
// like NQ settle in the account currency directly.
func QuoteCurrency(symbol string) string {
	if strings.Contains(symbol, "USD") {
		return "USD"
	}
	return ""
}
