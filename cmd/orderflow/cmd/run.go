package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Keluni100/orderflow/config"
	"github.com/Keluni100/orderflow/journal"
	"github.com/Keluni100/orderflow/replay"
	"github.com/Keluni100/orderflow/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted session from a config file",
	Long: `Run a backtest session using settings from a configuration file and a
CSV event script.

The config file selects the instrument, account, strategy and session
store. The script file drives the session: advancing the playback
cursor and placing orders.

Example:
  orderflow run -f config.yaml --script session.csv`,
	RunE: runRun,
}

var (
	runConfigPath string
	runScriptPath string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().StringVar(&runScriptPath, "script", "", "path to CSV event script (required)")
	runCmd.MarkFlagRequired("config")
	runCmd.MarkFlagRequired("script")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
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

	started := time.Now()
	res, err := replay.Run(runScriptPath, engine)
	if err != nil {
		return fmt.Errorf("replay script: %w", err)
	}

	sess, _ := engine.Session()
	acct := engine.Account()

	fmt.Printf("Script: %s (%d steps in %s)\n", runScriptPath, res.Steps, time.Since(started).Round(time.Millisecond))
	fmt.Printf("Session %s on %s\n", sess.ID, sess.Instrument)
	fmt.Printf("  Strategy: %s (%s / %s%% / %s)\n",
		sess.Strategy.Name, sess.Strategy.Trigger, sess.Strategy.Sensitivity, sess.Strategy.OrderType)
	fmt.Printf("  Trades: %d filled, %d missed\n", res.Trades, res.Missed)
	fmt.Printf("  Win Rate: %.1f%% (%dW / %dL)\n", sess.WinRate, sess.Wins(), len(sess.Trades)-sess.Wins())
	fmt.Printf("  Total P&L: %s%.2f\n", acct.Currency, sess.TotalPnL)
	fmt.Printf("  Balance: %s%.2f\n", acct.Currency, sess.Balance)
	fmt.Printf("  Grade: %s\n", sess.Grade)

	return nil
}

func openBook(cfg config.StoreConfig) (*journal.Book, error) {
	if cfg.Type == "memory" {
		return journal.NewBook(journal.NewMemory()), nil
	}
	store, err := journal.NewSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return journal.NewBook(store), nil
}
