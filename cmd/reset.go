package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seojin/labquiz/internal/store"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the active period's review log, statistics, and exam history",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := resolvePeriod()
		if err != nil {
			return err
		}

		if !resetYes {
			fmt.Printf("This deletes all saved progress for %s. Continue? [y/N] ", period.Label())
			reader := bufio.NewReader(cmd.InOrStdin())
			line, _ := reader.ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
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

		if err := st.Repo().ResetPeriod(cmd.Context(), period); err != nil {
			return fmt.Errorf("reset period: %w", err)
		}
		fmt.Printf("Progress for %s reset.\n", period.Label())
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
}
