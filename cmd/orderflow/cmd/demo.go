package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Keluni100/orderflow/journal"
	"github.com/Keluni100/orderflow/market"
	"github.com/Keluni100/orderflow/sim"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a self-driving sample session",
	Long: `Run a short sample session against a synthesized series.

Shows the basic workflow:
  1. Generating a bar series for an instrument
  2. Synthesizing the current bar's footprint levels
  3. Placing quick market orders while advancing bar-by-bar
  4. Reading the session stats and grade

Example:
  orderflow demo --instrument BTCUSD --seed 42`,
	RunE: runDemo,
}

var (
	demoInstrument string
	demoSeed       int64
	demoTrades     int
)

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVar(&demoInstrument, "instrument", "EURUSD", "instrument symbol")
	demoCmd.Flags().Int64Var(&demoSeed, "seed", 1, "random seed (same seed, same series)")
	demoCmd.Flags().IntVar(&demoTrades, "trades", 12, "number of quick trades to place")
}

func runDemo(cmd *cobra.Command, args []string) error {
	engine := sim.NewEngine(sim.Options{
		Seed: demoSeed,
		Book: journal.NewBook(journal.NewMemory()),
		Log:  log,
	})

	if err := engine.StartSession(demoInstrument); err != nil {
		return err
	}

	bar, _ := engine.CurrentBar()
	tick := bar.Profile.TickSize

	fmt.Printf("=== Demo Session: %s ===\n\n", demoInstrument)
	fmt.Printf("Bar %d / %d  O %s  H %s  L %s  C %s  Vol %d\n\n",
		engine.Cursor()+1, engine.BarCount(),
		market.FormatPrice(bar.Open, tick), market.FormatPrice(bar.High, tick),
		market.FormatPrice(bar.Low, tick), market.FormatPrice(bar.Close, tick),
		bar.Volume)

	fmt.Println("Footprint (bid x ask, delta):")
	for _, lvl := range engine.Levels() {
		fmt.Printf("  %10s  %6d x %-6d  %+d\n",
			market.FormatPrice(lvl.Price, tick), lvl.BidVolume, lvl.AskVolume, lvl.Delta)
	}
	fmt.Println()

	// Alternate buys and sells at the close, one trade per bar.
	for i := 0; i < demoTrades; i++ {
		side := sim.Buy
		if i%2 == 1 {
			side = sim.Sell
		}
		if trade, ok := engine.QuickOrder(side, 0.1); ok {
			outcome := "LOSS"
			if trade.Win {
				outcome = "WIN"
			}
			fmt.Printf("%-4s %s @ %s -> %s  %+.2f  %s\n",
				trade.Side, trade.OrderType,
				market.FormatPrice(trade.EntryPrice, tick),
				market.FormatPrice(trade.ExitPrice, tick),
				trade.Profit, outcome)
		}
		engine.Advance()
	}

	sess, _ := engine.Session()
	acct := engine.Account()

	fmt.Printf("\nSession Stats:\n")
	fmt.Printf("  Trades: %d\n", len(sess.Trades))
	fmt.Printf("  Win Rate: %.1f%%\n", sess.WinRate)
	fmt.Printf("  Total P&L: %s%.2f\n", acct.Currency, sess.TotalPnL)
	fmt.Printf("  Balance: %s%.2f\n", acct.Currency, sess.Balance)
	fmt.Printf("  Grade: %s\n", sess.Grade)

	return nil
}
