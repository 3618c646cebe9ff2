package replay

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Keluni100/orderflow/market"
	"github.com/Keluni100/orderflow/sim"
)

func scriptEngine(t *testing.T) *sim.Engine {
	t.Helper()

	profile := market.Profiles["EURUSD"]
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	closes := []float64{1.0850, 1.0850, 1.0900, 1.0880, 1.0910, 1.0905, 1.0920}
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Time:      start.Add(time.Duration(i) * market.BarInterval),
			Open:      c,
			High:      c + 0.0050,
			Low:       c - 0.0050,
			Close:     c,
			Volume:    10000,
			BidVolume: 6000,
			AskVolume: 4000,
			Profile:   profile,
		}
	}

	e := sim.NewEngine(sim.Options{
		Account:    sim.Account{Balance: 10000, Currency: "$", Leverage: 100},
		Seed:       1,
		StartIndex: 1,
	})
	assert.NoError(t, e.StartSessionFrom(bars))
	return e
}

func TestRunScript(t *testing.T) {
	t.Parallel()

	e := scriptEngine(t)

	script := strings.Join([]string{
		"action,arg1,arg2,arg3",
		"BUY,market,1.0850,1",
		"ADVANCE,1",
		"SELL,market,1.0900,1",
		"ADVANCE,2",
		"BUY,,,", // quick order at the close
	}, "\n")

	res, err := run(strings.NewReader(script), e)
	assert.NoError(t, err)
	assert.Equal(t, 5, res.Steps)
	assert.Equal(t, 3, res.Trades)
	assert.Equal(t, 0, res.Missed)

	sess, _ := e.Session()
	assert.Len(t, sess.Trades, 3)
	assert.Equal(t, sim.Buy, sess.Trades[0].Side)
	assert.InDelta(t, 500.0, sess.Trades[0].Profit, 1e-6)
	assert.Equal(t, sim.Sell, sess.Trades[1].Side)
}

func TestRunCountsMissedOrders(t *testing.T) {
	t.Parallel()

	e := scriptEngine(t)

	// A buy limit far below the next bar's low expires unfilled.
	script := "BUY,limit,1.0500,1\n"

	res, err := run(strings.NewReader(script), e)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Missed)
	assert.Equal(t, 0, res.Trades)

	sess, _ := e.Session()
	assert.Empty(t, sess.Trades)
}

func TestRunRejectsUnknownAction(t *testing.T) {
	t.Parallel()

	e := scriptEngine(t)

	_, err := run(strings.NewReader("HOLD,1\n"), e)
	assert.Error(t, err)
}

func TestRunSessionAction(t *testing.T) {
	t.Parallel()

	e := scriptEngine(t)

	_, err := run(strings.NewReader("SESSION,GBPUSD\n"), e)
	assert.NoError(t, err)

	sess, ok := e.Session()
	assert.True(t, ok)
	assert.Equal(t, "GBPUSD", sess.Instrument)

	_, err = run(strings.NewReader("SESSION,UNLISTED\n"), e)
	assert.ErrorIs(t, err, market.ErrUnknownInstrument)
}
