package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seojin/labquiz/internal/app"
	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/store"
)

// runApp loads the question bank, opens the store, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	period, err := resolvePeriod()
	if err != nil {
		return err
	}

	bank, err := loadBank()
	if err != nil {
		return err
	}
	if !bank.Available(period) {
		return &question.PeriodUnavailableError{Period: period}
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

	return app.Run(app.Options{
		Bank:   bank,
		Repo:   st.Repo(),
		Period: period,
	})
}
