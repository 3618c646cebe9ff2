package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orderflow",
	Short: "An order-flow backtesting sandbox",
	Long: `Orderflow is an interactive backtesting sandbox for discretionary
order-flow trading.

It synthesizes plausible price and volume history for an instrument,
fabricates intra-bar footprint levels, executes scripted or quick
trades bar-by-bar, and grades the resulting performance.

Available instruments: EURUSD, GBPUSD, BTCUSD, XAUUSD, NQ`,
}

var verbose bool

var log = logrus.New()

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	})
}
