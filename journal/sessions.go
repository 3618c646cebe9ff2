// journal/sessions.go
package journal

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// SessionKeyPrefix namespaces session records inside the Store.
const SessionKeyPrefix = "session:"

// TradeRecord is the persisted shape of a single executed trade.
type TradeRecord struct {
	ID             string    `json:"id"`
	Side           string    `json:"side"`
	OrderType      string    `json:"order_type"`
	RequestedPrice float64   `json:"requested_price"`
	EntryPrice     float64   `json:"entry_price"`
	EntryTime      time.Time `json:"entry_time"`
	EntryBar       int       `json:"entry_bar"`
	ExitPrice      float64   `json:"exit_price"`
	ExitTime       time.Time `json:"exit_time"`
	Lots           float64   `json:"lots"`
	ContractSize   float64   `json:"contract_size"`
	Profit         float64   `json:"profit"`
	Win            bool      `json:"win"`
	Instrument     string    `json:"instrument"`
}

// StrategyRecord is the descriptive strategy metadata attached to a
// session. It carries no signal logic.
type StrategyRecord struct {
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Trigger          string  `json:"trigger"`
	Sensitivity      string  `json:"sensitivity"`
	ZoneFilter       string  `json:"zone_filter"`
	StopLogic        string  `json:"stop_logic"`
	OrderType        string  `json:"order_type"`
	LimitOffsetTicks float64 `json:"limit_offset_ticks,omitempty"`
	StopOffsetTicks  float64 `json:"stop_offset_ticks,omitempty"`
}

// SessionRecord is the persisted shape of a trading session, nested
// trades included. It round-trips exactly through JSON.
type SessionRecord struct {
	ID         string         `json:"id"`
	StartTime  time.Time      `json:"start_time"`
	Instrument string         `json:"instrument"`
	Strategy   StrategyRecord `json:"strategy"`
	Trades     []TradeRecord  `json:"trades"`
	Balance    float64        `json:"balance"`
	WinRate    float64        `json:"win_rate"`
	TotalPnL   float64        `json:"total_pnl"`
	Grade      string         `json:"grade"`
}

// Book reads and writes session records through a Store.
type Book struct {
	store Store
}

func NewBook(store Store) *Book {
	return &Book{store: store}
}

// Save upserts a session under its namespaced key.
func (b *Book) Save(rec SessionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", rec.ID, err)
	}
	if err := b.store.Set(SessionKeyPrefix+rec.ID, string(data)); err != nil {
		return fmt.Errorf("store session %s: %w", rec.ID, err)
	}
	return nil
}

// Load returns a single session by ID.
func (b *Book) Load(id string) (SessionRecord, bool, error) {
	value, ok, err := b.store.Get(SessionKeyPrefix + id)
	if err != nil || !ok {
		return SessionRecord{}, false, err
	}
	var rec SessionRecord
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return SessionRecord{}, false, fmt.Errorf("decode session %s: %w", id, err)
	}
	return rec, true, nil
}

// LoadAll returns every stored session, most recent start time first.
// Malformed entries are dropped silently.
func (b *Book) LoadAll() ([]SessionRecord, error) {
	keys, err := b.store.List(SessionKeyPrefix)
	if err != nil {
		return nil, err
	}

	out := make([]SessionRecord, 0, len(keys))
	for _, k := range keys {
		value, ok, err := b.store.Get(k)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var rec SessionRecord
		if err := json.Unmarshal([]byte(value), &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

func (b *Book) Close() error {
	return b.store.Close()
}
