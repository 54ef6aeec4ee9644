package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seojin/labquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print mock exam history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := resolvePeriod()
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		history, err := st.Repo().ExamHistory(cmd.Context(), period)
		if err != nil {
			return fmt.Errorf("load exam history: %w", err)
		}
		if len(history) == 0 {
			fmt.Printf("No mock exams taken yet for %s.\n", period.Label())
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSCORE\tACCURACY\tMISSED")
		for i := len(history) - 1; i >= 0; i-- {
			entry := history[i]
			fmt.Fprintf(w, "%s\t%d/%d\t%.1f%%\t%d\n",
				entry.Date.Format("2006-01-02 15:04"),
				entry.Correct, entry.Total, entry.Accuracy(), len(entry.IncorrectIDs))
		}
		return w.Flush()
	},
}
