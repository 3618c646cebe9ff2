package sim

import (
	"math"
	"time"

	"github.com/Keluni100/orderflow/journal"
)

// Account holds the trader's configuration. It is read for currency
// conversion and the starting balance, never mutated by trading.
type Account struct {
	Balance  float64
	Currency string
	Leverage int
}

// DefaultAccount mirrors the simulator's stock settings: a £10k account
// at 1:100.
func DefaultAccount() Account {
	return Account{Balance: 10000, Currency: "£", Leverage: 100}
}

// Strategy is descriptive metadata attached to a session. Only
// OrderType and the tick offsets influence execution (they shape quick
// orders); the rest is bookkeeping for the session record.
type Strategy struct {
	Name             string
	Description      string
	Trigger          string
	Sensitivity      string
	ZoneFilter       string
	StopLogic        string
	OrderType        OrderType
	LimitOffsetTicks float64
	StopOffsetTicks  float64
}

func DefaultStrategy() Strategy {
	return Strategy{
		Name:        "My Strategy",
		Trigger:     "diagonal-imbalance",
		Sensitivity: "300",
		ZoneFilter:  "poc",
		StopLogic:   "low-of-bar",
		OrderType:   Market,
	}
}

// Session owns the running trade list and the aggregate stats derived
// from it. Trades are append-only for the session's lifetime.
type Session struct {
	ID         string
	StartTime  time.Time
	Instrument string
	Strategy   Strategy
	Trades     []Trade
	Balance    float64
	WinRate    float64
	TotalPnL   float64
	Grade      string
}

// Wins counts winning trades.
func (s *Session) Wins() int {
	n := 0
	for _, t := range s.Trades {
		if t.Win {
			n++
		}
	}
	return n
}

// recompute refreshes the aggregates after a trade is appended.
// Win rate is kept at one decimal place.
func (s *Session) recompute(acct Account) {
	total := len(s.Trades)
	if total == 0 {
		s.WinRate = 0
		s.TotalPnL = 0
		s.Balance = acct.Balance
		s.Grade = GradeNA
		return
	}

	s.WinRate = math.Round(float64(s.Wins())/float64(total)*1000) / 10

	sum := 0.0
	for _, t := range s.Trades {
		sum += t.Profit
	}
	s.TotalPnL = sum
	s.Balance = acct.Balance + sum
	s.Grade = Grade(s.WinRate, total)
}

// record converts the live session into its persisted shape.
func (s *Session) record() journal.SessionRecord {
	trades := make([]journal.TradeRecord, 0, len(s.Trades))
	for _, t := range s.Trades {
		trades = append(trades, journal.TradeRecord{
			ID:             t.ID,
			Side:           string(t.Side),
			OrderType:      string(t.OrderType),
			RequestedPrice: t.RequestedPrice,
			EntryPrice:     t.EntryPrice,
			EntryTime:      t.EntryTime,
			EntryBar:       t.EntryBar,
			ExitPrice:      t.ExitPrice,
			ExitTime:       t.ExitTime,
			Lots:           t.Lots,
			ContractSize:   t.ContractSize,
			Profit:         t.Profit,
			Win:            t.Win,
			Instrument:     t.Instrument,
		})
	}

	return journal.SessionRecord{
		ID:         s.ID,
		StartTime:  s.StartTime,
		Instrument: s.Instrument,
		Strategy: journal.StrategyRecord{
			Name:             s.Strategy.Name,
			Description:      s.Strategy.Description,
			Trigger:          s.Strategy.Trigger,
			Sensitivity:      s.Strategy.Sensitivity,
			ZoneFilter:       s.Strategy.ZoneFilter,
			StopLogic:        s.Strategy.StopLogic,
			OrderType:        string(s.Strategy.OrderType),
			LimitOffsetTicks: s.Strategy.LimitOffsetTicks,
			StopOffsetTicks:  s.Strategy.StopOffsetTicks,
		},
		Trades:   trades,
		Balance:  s.Balance,
		WinRate:  s.WinRate,
		TotalPnL: s.TotalPnL,
		Grade:    s.Grade,
	}
}
