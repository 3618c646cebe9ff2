package sim

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Keluni100/orderflow/internal/id"
	"github.com/Keluni100/orderflow/journal"
	"github.com/Keluni100/orderflow/market"
	"github.com/Keluni100/orderflow/synth"
)

const (
	defaultBarCount   = 500
	defaultStartIndex = 50
	defaultLots       = 0.1
)

// Options configures an Engine. Zero values fall back to the stock
// simulator settings.
type Options struct {
	Account    Account
	Strategy   Strategy
	Rates      market.RateTable
	Seed       int64
	BarCount   int
	StartIndex int
	Book       *journal.Book
	Log        *logrus.Logger
}

// Engine owns the active session: its bar sequence, the playback
// cursor, and the trade list. Trading is gated to the bar under the
// cursor; older bars are history. All mutation happens under one lock
// so a playback ticker and direct calls interleave safely.
type Engine struct {
	mu sync.Mutex

	acct     Account
	strategy Strategy
	rates    market.RateTable
	gen      *synth.SeriesGenerator
	foot     *synth.Footprint
	book     *journal.Book
	log      *logrus.Logger

	barCount   int
	startIndex int

	profile market.Profile
	bars    []market.Bar
	cursor  int
	session *Session
	history []journal.SessionRecord
}

func NewEngine(opts Options) *Engine {
	if opts.Account == (Account{}) {
		opts.Account = DefaultAccount()
	}
	if opts.Strategy == (Strategy{}) {
		opts.Strategy = DefaultStrategy()
	}
	if opts.Strategy.OrderType == "" {
		opts.Strategy.OrderType = Market
	}
	if opts.Rates == nil {
		opts.Rates = market.DefaultRates()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.BarCount <= 0 {
		opts.BarCount = defaultBarCount
	}
	if opts.StartIndex <= 0 {
		opts.StartIndex = defaultStartIndex
	}
	if opts.Log == nil {
		opts.Log = logrus.New()
		opts.Log.SetOutput(io.Discard)
	}

	e := &Engine{
		acct:       opts.Account,
		strategy:   opts.Strategy,
		rates:      opts.Rates,
		gen:        synth.NewSeriesGenerator(opts.Seed),
		foot:       synth.NewFootprint(opts.Seed + 1),
		book:       opts.Book,
		log:        opts.Log,
		barCount:   opts.BarCount,
		startIndex: opts.StartIndex,
	}

	if e.book != nil {
		history, err := e.book.LoadAll()
		if err != nil {
			e.log.WithError(err).Warn("load session history")
		} else {
			e.history = history
		}
	}

	return e
}

// StartSession archives the active session (if it recorded any trades),
// generates a fresh bar sequence for symbol, and resets the cursor and
// aggregates. An unknown symbol fails up front and leaves every piece
// of existing state untouched.
func (e *Engine) StartSession(symbol string) error {
	profile, err := market.Lookup(symbol)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.archiveLocked()
	e.beginLocked(profile, e.gen.Generate(profile, e.barCount))
	return nil
}

// StartSessionFrom begins a session over a caller-supplied bar
// sequence. Scripted replays and tests use it to pin exact prices.
func (e *Engine) StartSessionFrom(bars []market.Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("empty bar sequence")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.archiveLocked()
	e.beginLocked(bars[0].Profile, bars)
	return nil
}

func (e *Engine) beginLocked(profile market.Profile, bars []market.Bar) {
	e.profile = profile
	e.bars = bars

	e.cursor = e.startIndex
	if e.cursor > len(bars)-1 {
		e.cursor = len(bars) - 1
	}

	e.session = &Session{
		ID:         id.New(),
		StartTime:  time.Now().UTC(),
		Instrument: profile.Symbol,
		Strategy:   e.strategy,
		Balance:    e.acct.Balance,
		Grade:      GradeNA,
	}
}

// archiveLocked persists the active session and prepends it to the
// in-memory history. Sessions with no trades are discarded.
func (e *Engine) archiveLocked() {
	if e.session == nil || len(e.session.Trades) == 0 {
		return
	}
	e.persistLocked()
	e.history = append([]journal.SessionRecord{e.session.record()}, e.history...)
}

// persistLocked writes the session through the book. Store failures are
// logged and swallowed; persistence never blocks or fails trading.
func (e *Engine) persistLocked() {
	if e.book == nil || e.session == nil {
		return
	}
	if err := e.book.Save(e.session.record()); err != nil {
		e.log.WithError(err).WithField("session", e.session.ID).Warn("session persist failed")
	}
}

// ExecuteOrder resolves an order against the current bar and settles it
// at the next bar's close. It reports ok=false, with nothing recorded,
// when no session is live, when fewer than two bars remain past the
// cursor, or when a limit/stop trigger is not reached by the next bar.
func (e *Engine) ExecuteOrder(req OrderRequest) (Trade, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.executeLocked(req)
}

func (e *Engine) executeLocked(req OrderRequest) (Trade, bool) {
	if e.session == nil || e.cursor >= len(e.bars)-2 {
		return Trade{}, false
	}
	if req.Lots <= 0 {
		req.Lots = defaultLots
	}

	entryBar := e.bars[e.cursor]
	next := e.bars[e.cursor+1]

	entry := req.Price
	switch req.Type {
	case Market:
		// Always fills at the requested price.
	case Limit:
		if req.Side == Buy && next.Low > req.Price {
			return Trade{}, false
		}
		if req.Side == Sell && next.High < req.Price {
			return Trade{}, false
		}
	case StopEntry:
		if req.Side == Buy && next.High < req.Price {
			return Trade{}, false
		}
		if req.Side == Sell && next.Low > req.Price {
			return Trade{}, false
		}
	default:
		return Trade{}, false
	}

	exit := next.Close

	diff := exit - entry
	if req.Side == Sell {
		diff = entry - exit
	}

	contract := e.profile.LotSize * req.Lots
	raw := diff * contract
	profit := e.rates.Convert(raw, market.QuoteCurrency(e.profile.Symbol), e.acct.Currency)

	trade := Trade{
		ID:             id.New(),
		Side:           req.Side,
		OrderType:      req.Type,
		RequestedPrice: req.Price,
		EntryPrice:     entry,
		EntryTime:      entryBar.Time,
		EntryBar:       e.cursor,
		ExitPrice:      exit,
		ExitTime:       next.Time,
		Lots:           req.Lots,
		ContractSize:   contract,
		Profit:         profit,
		Win:            raw > 0, // flat is a loss
		Instrument:     e.profile.Symbol,
	}

	e.session.Trades = append(e.session.Trades, trade)
	e.session.recompute(e.acct)
	e.persistLocked()

	return trade, true
}

// QuickOrder places an order at the current close using the session
// strategy's order type, offsetting limit and stop prices by the
// configured number of ticks.
func (e *Engine) QuickOrder(side Side, lots float64) (Trade, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.cursor >= len(e.bars) {
		return Trade{}, false
	}

	px := e.bars[e.cursor].Close
	tick := e.profile.TickSize
	typ := e.strategy.OrderType

	switch typ {
	case Limit:
		// Limit entries wait for a pullback through the offset.
		if side == Buy {
			px -= e.strategy.LimitOffsetTicks * tick
		} else {
			px += e.strategy.LimitOffsetTicks * tick
		}
	case StopEntry:
		// Stop entries chase a breakout through the offset.
		if side == Buy {
			px += e.strategy.StopOffsetTicks * tick
		} else {
			px -= e.strategy.StopOffsetTicks * tick
		}
	default:
		typ = Market
	}

	return e.executeLocked(OrderRequest{Side: side, Type: typ, Price: px, Lots: lots})
}

// Advance moves the cursor one bar forward. It reports false when the
// cursor is already on the final bar.
func (e *Engine) Advance() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.advanceLocked()
}

func (e *Engine) advanceLocked() bool {
	if e.session == nil || e.cursor >= len(e.bars)-1 {
		return false
	}
	e.cursor++
	return true
}

// Rewind resets the cursor to the session start index without touching
// trades or aggregates.
func (e *Engine) Rewind() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return
	}
	e.cursor = e.startIndex
	if e.cursor > len(e.bars)-1 {
		e.cursor = len(e.bars) - 1
	}
}

// Cursor returns the current bar index.
func (e *Engine) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// BarCount returns the length of the active bar sequence.
func (e *Engine) BarCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.bars)
}

// CurrentBar returns the bar under the cursor.
func (e *Engine) CurrentBar() (market.Bar, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.cursor >= len(e.bars) {
		return market.Bar{}, false
	}
	return e.bars[e.cursor], true
}

// Levels synthesizes the footprint of the current bar: the tradable
// price targets, highest first.
func (e *Engine) Levels() []market.PriceLevel {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.cursor >= len(e.bars) {
		return nil
	}
	return e.foot.Levels(e.bars[e.cursor])
}

// Window returns up to n bars ending at the cursor, oldest first.
func (e *Engine) Window(n int) []market.Bar {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || n <= 0 {
		return nil
	}
	lo := e.cursor + 1 - n
	if lo < 0 {
		lo = 0
	}
	out := make([]market.Bar, e.cursor+1-lo)
	copy(out, e.bars[lo:e.cursor+1])
	return out
}

// Session returns a snapshot of the active session.
func (e *Engine) Session() (Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return Session{}, false
	}
	snap := *e.session
	snap.Trades = make([]Trade, len(e.session.Trades))
	copy(snap.Trades, e.session.Trades)
	return snap, true
}

// RecentTrades returns up to n trades, newest first.
func (e *Engine) RecentTrades(n int) []Trade {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil
	}
	trades := e.session.Trades
	if n > len(trades) {
		n = len(trades)
	}
	out := make([]Trade, 0, n)
	for i := len(trades) - 1; i >= len(trades)-n; i-- {
		out = append(out, trades[i])
	}
	return out
}

// Account returns the engine's account configuration.
func (e *Engine) Account() Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.acct
}

// History returns archived sessions, most recent first.
func (e *Engine) History() []journal.SessionRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]journal.SessionRecord, len(e.history))
	copy(out, e.history)
	return out
}
