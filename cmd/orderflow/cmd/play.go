package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Keluni100/orderflow/config"
	"github.com/Keluni100/orderflow/market"
	"github.com/Keluni100/orderflow/sim"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Auto-play a session to the final bar",
	Long: `Start a session and let the playback ticker advance it bar-by-bar
until the series runs out, printing the closing stats.

The advance interval comes from simulation.speed_ms in the config file.

Example:
  orderflow play -f config.yaml`,
	RunE: runPlay,
}

var playConfigPath string

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVarP(&playConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	playCmd.MarkFlagRequired("config")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(playConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	book, err := openBook(cfg.Store)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer book.Close()

	engine := sim.NewEngine(sim.Options{
		Account:    cfg.AccountSpec(),
		Strategy:   cfg.StrategySpec(),
		Seed:       cfg.Simulation.Seed,
		BarCount:   cfg.Simulation.Bars,
		StartIndex: cfg.Simulation.StartIndex,
		Book:       book,
		Log:        log,
	})

	if err := engine.StartSession(cfg.Simulation.Instrument); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	interval := time.Duration(cfg.Simulation.SpeedMS) * time.Millisecond
	player := sim.NewPlayer(engine, interval, log)

	fmt.Printf("Playing %s from bar %d of %d at %s per bar\n",
		cfg.Simulation.Instrument, engine.Cursor()+1, engine.BarCount(), interval)

	player.Play()
	for player.Playing() {
		time.Sleep(interval / 2)
	}

	bar, _ := engine.CurrentBar()
	sess, _ := engine.Session()
	acct := engine.Account()

	fmt.Printf("Finished at bar %d, close %s\n",
		engine.Cursor()+1, market.FormatPrice(bar.Close, bar.Profile.TickSize))
	fmt.Printf("  Trades: %d\n", len(sess.Trades))
	fmt.Printf("  Win Rate: %.1f%%\n", sess.WinRate)
	fmt.Printf("  Total P&L: %s%.2f\n", acct.Currency, sess.TotalPnL)
	fmt.Printf("  Balance: %s%.2f\n", acct.Currency, sess.Balance)
	fmt.Printf("  Grade: %s\n", sess.Grade)

	return nil
}
