package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleSession(t *testing.T, id string, start time.Time, trades int) SessionRecord {
	t.Helper()

	rec := SessionRecord{
		ID:         id,
		StartTime:  start,
		Instrument: "EURUSD",
		Strategy: StrategyRecord{
			Name:        "Imbalance Reversal",
			Trigger:     "diagonal-imbalance",
			Sensitivity: "300",
			ZoneFilter:  "poc",
			StopLogic:   "low-of-bar",
			OrderType:   "market",
		},
		Trades:   []TradeRecord{},
		Balance:  10395,
		WinRate:  100,
		TotalPnL: 395,
		Grade:    "N/A",
	}

	for i := 0; i < trades; i++ {
		rec.Trades = append(rec.Trades, TradeRecord{
			ID:             id + "-t" + string(rune('a'+i)),
			Side:           "BUY",
			OrderType:      "market",
			RequestedPrice: 1.0850,
			EntryPrice:     1.0850,
			EntryTime:      start.Add(time.Duration(i) * 5 * time.Minute),
			EntryBar:       50 + i,
			ExitPrice:      1.0900,
			ExitTime:       start.Add(time.Duration(i+1) * 5 * time.Minute),
			Lots:           0.1,
			ContractSize:   10000,
			Profit:         39.5,
			Win:            true,
			Instrument:     "EURUSD",
		})
	}
	return rec
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for _, n := range []int{0, 1, 5} {
		book := NewBook(NewMemory())
		want := sampleSession(t, "S1", start, n)

		assert.NoError(t, book.Save(want))

		got, ok, err := book.Load("S1")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got, "with %d trades", n)
	}
}

func TestLoadAbsentSession(t *testing.T) {
	t.Parallel()

	book := NewBook(NewMemory())
	_, ok, err := book.Load("missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadAllSortedMostRecentFirst(t *testing.T) {
	t.Parallel()

	book := NewBook(NewMemory())
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, book.Save(sampleSession(t, "S1", start, 1)))
	assert.NoError(t, book.Save(sampleSession(t, "S2", start.Add(time.Hour), 2)))
	assert.NoError(t, book.Save(sampleSession(t, "S3", start.Add(30*time.Minute), 0)))

	all, err := book.LoadAll()
	assert.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "S2", all[0].ID)
	assert.Equal(t, "S3", all[1].ID)
	assert.Equal(t, "S1", all[2].ID)
}

func TestLoadAllDropsMalformedEntries(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	book := NewBook(store)
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, book.Save(sampleSession(t, "S1", start, 1)))
	assert.NoError(t, store.Set(SessionKeyPrefix+"corrupt", "{not json"))

	all, err := book.LoadAll()
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "S1", all[0].ID)
}

func TestSaveThroughSQLiteStore(t *testing.T) {
	t.Parallel()

	book := NewBook(newTestSQLite(t))
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	want := sampleSession(t, "S1", start, 3)

	assert.NoError(t, book.Save(want))

	got, ok, err := book.Load("S1")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
