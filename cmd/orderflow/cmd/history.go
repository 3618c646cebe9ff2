package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Keluni100/orderflow/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored sessions",
	Long: `List every session persisted in the session store, most recent first.

Example:
  orderflow history --db ./sessions.db`,
	RunE: runHistory,
}

var historyDBPath string

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDBPath, "db", "./sessions.db", "path to the session store database")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := journal.NewSQLite(historyDBPath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	book := journal.NewBook(store)
	defer book.Close()

	sessions, err := book.LoadAll()
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions yet")
		return nil
	}

	fmt.Printf("%-28s %-20s %-8s %7s %9s %12s %6s\n",
		"SESSION", "START", "SYMBOL", "TRADES", "WIN RATE", "P&L", "GRADE")
	for _, s := range sessions {
		fmt.Printf("%-28s %-20s %-8s %7d %8.1f%% %12.2f %6s\n",
			s.ID,
			s.StartTime.Format("2006-01-02 15:04:05"),
			s.Instrument,
			len(s.Trades),
			s.WinRate,
			s.TotalPnL,
			s.Grade)
	}
	return nil
}
