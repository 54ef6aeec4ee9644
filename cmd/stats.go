package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seojin/labquiz/internal/stats"
	"github.com/seojin/labquiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-subject practice statistics",
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

		subjectStats, err := st.Repo().SubjectStats(cmd.Context(), period)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		// Seed zero rows for unattempted subjects when the bank is readable;
		// the report still works without question files.
		if bank, err := loadBank(); err == nil {
			if subjects, err := bank.Subjects(period); err == nil {
				subjectStats = subjectStats.WithSubjects(subjects)
			}
		}

		correct, total := subjectStats.Totals()
		if total == 0 {
			fmt.Printf("No answers recorded yet for %s.\n", period.Label())
			return nil
		}

		fmt.Printf("%s: %d/%d correct (%.1f%%)\n\n", period.Label(), correct, total, subjectStats.Overall())

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SUBJECT\tCORRECT\tTOTAL\tACCURACY")
		for _, sa := range subjectStats.Ranked() {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\n", sa.Subject, sa.Correct, sa.Total, sa.Accuracy)
		}
		w.Flush()

		if weakest, strongest, ok := subjectStats.Extremes(); ok {
			fmt.Printf("\nWeakest: %s (%.1f%%)   Strongest: %s (%.1f%%)\n",
				weakest.Subject, weakest.Accuracy, strongest.Subject, strongest.Accuracy)
		} else {
			fmt.Printf("\nAnswer at least %d questions per subject to see weakest/strongest subjects.\n", stats.MinAttempts)
		}
		return nil
	},
}
