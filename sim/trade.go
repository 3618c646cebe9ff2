package sim

import "time"

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

type OrderType string

const (
	// Market fills at the requested price immediately.
	Market OrderType = "market"
	// Limit fills only if the next bar's range reaches the limit price.
	Limit OrderType = "limit"
	// StopEntry fills only if the next bar trades through the stop price.
	// The wire name keeps the legacy "stop-loss" spelling.
	StopEntry OrderType = "stop-loss"
)

// Trade is one executed round trip. Entry resolves against the current
// bar, exit is always the next bar's close. Immutable once recorded.
type Trade struct {
	ID             string
	Side           Side
	OrderType      OrderType
	RequestedPrice float64
	EntryPrice     float64
	EntryTime      time.Time
	EntryBar       int
	ExitPrice      float64
	ExitTime       time.Time
	Lots           float64
	ContractSize   float64
	Profit         float64 // account currency
	Win            bool
	Instrument     string
}

// OrderRequest describes a user decision against the current bar.
// Price is the targeted level (a footprint level or the current close);
// for limit and stop orders it doubles as the trigger price.
type OrderRequest struct {
	Side  Side
	Type  OrderType
	Price float64
	Lots  float64
}
