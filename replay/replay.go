// Package replay drives an engine from a scripted CSV file, so a
// session can be reproduced without interactive input.
package replay

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Keluni100/orderflow/sim"
)

// Result summarizes a finished script run.
type Result struct {
	Steps  int
	Trades int
	Missed int // orders that resolved as no-ops
}

// Run applies a script to the engine, one event row at a time.
//
// CSV format, one event per row (a leading "action" header row is
// skipped):
//
//	SESSION,<symbol>             start a fresh session
//	ADVANCE,<n>                  advance the cursor n bars (default 1)
//	BUY,<type>,<price>,<lots>    place an order; type is market, limit
//	SELL,<type>,<price>,<lots>   or stop-loss; empty price and lots use
//	                             the strategy's quick-order defaults
//	REWIND                       reset the cursor to the start index
//
// Unfilled limit/stop orders and orders past the tradable window count
// as Missed, not errors.
func Run(path string, engine *sim.Engine) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	return run(f, engine)
}

func run(r io.Reader, engine *sim.Engine) (Result, error) {
	var res Result

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		if len(row) == 0 {
			continue
		}

		action := strings.ToUpper(strings.TrimSpace(row[0]))
		if action == "" || action == "ACTION" {
			continue
		}

		args := row[1:]
		for i := range args {
			args[i] = strings.TrimSpace(args[i])
		}

		if err := apply(engine, action, args, &res); err != nil {
			return res, fmt.Errorf("row %d (%s): %w", res.Steps+1, action, err)
		}
		res.Steps++
	}
}

func apply(engine *sim.Engine, action string, args []string, res *Result) error {
	switch action {
	case "SESSION":
		if len(args) < 1 || args[0] == "" {
			return fmt.Errorf("need a symbol")
		}
		return engine.StartSession(args[0])

	case "ADVANCE":
		n := 1
		if len(args) >= 1 && args[0] != "" {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad count %q: %w", args[0], err)
			}
			n = v
		}
		for i := 0; i < n; i++ {
			if !engine.Advance() {
				break
			}
		}
		return nil

	case "BUY", "SELL":
		side := sim.Buy
		if action == "SELL" {
			side = sim.Sell
		}
		return placeOrder(engine, side, args, res)

	case "REWIND":
		engine.Rewind()
		return nil

	default:
		return fmt.Errorf("unknown action")
	}
}

func placeOrder(engine *sim.Engine, side sim.Side, args []string, res *Result) error {
	typ := sim.Market
	if len(args) >= 1 && args[0] != "" {
		switch sim.OrderType(args[0]) {
		case sim.Market, sim.Limit, sim.StopEntry:
			typ = sim.OrderType(args[0])
		default:
			return fmt.Errorf("bad order type %q", args[0])
		}
	}

	lots := 0.0
	if len(args) >= 3 && args[2] != "" {
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("bad lots %q: %w", args[2], err)
		}
		lots = v
	}

	// No explicit price: let the strategy's quick-order rules pick one.
	if len(args) < 2 || args[1] == "" {
		if _, ok := engine.QuickOrder(side, lots); !ok {
			res.Missed++
		} else {
			res.Trades++
		}
		return nil
	}

	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("bad price %q: %w", args[1], err)
	}

	if _, ok := engine.ExecuteOrder(sim.OrderRequest{Side: side, Type: typ, Price: price, Lots: lots}); !ok {
		res.Missed++
	} else {
		res.Trades++
	}
	return nil
}
