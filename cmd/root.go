package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seojin/labquiz/internal/question"
	"github.com/seojin/labquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "labquiz",
	Short: "Terminal trainer for the clinical pathology technologist exam",
	Long:  "LabQuiz is a terminal trainer for the Korean clinical pathology technologist certification: practice questions, review mistakes, and run timed mock exams.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LABQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("questions-dir", "", "Directory containing the question JSON files")
	rootCmd.PersistentFlags().String("period", "", "Exam period to train (P3 or P1_2)")

	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("questions_dir", rootCmd.PersistentFlags().Lookup("questions-dir"))
	viper.BindPFlag("period", rootCmd.PersistentFlags().Lookup("period"))

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initConfig reads the optional config file and wires environment overrides.
func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		viper.AddConfigPath(filepath.Join(configHome, "labquiz"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "labquiz"))
	}

	viper.SetEnvPrefix("LABQUIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("period", string(question.PeriodPractical))

	// A missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// resolveDBPath returns the database path using the db setting (flag, env,
// or config file), falling back to the default XDG path.
func resolveDBPath() (string, error) {
	if p := viper.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolvePeriod returns the configured exam period.
func resolvePeriod() (question.Period, error) {
	p := question.Period(viper.GetString("period"))
	if !p.Valid() {
		return "", fmt.Errorf("unknown period %q (want P3 or P1_2)", string(p))
	}
	return p, nil
}

// questionsDir returns the directory holding the question files.
func questionsDir() (string, error) {
	if dir := viper.GetString("questions_dir"); dir != "" {
		return dir, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "labquiz", "questions"), nil
}

// loadBank loads every period's question file that exists. Load failures are
// reported as warnings; the bank errors only when nothing loaded at all.
func loadBank() (*question.Bank, error) {
	dir, err := questionsDir()
	if err != nil {
		return nil, err
	}

	collections := make(map[question.Period][]question.Question)
	for _, period := range question.Periods {
		name := fmt.Sprintf("questions_%s.json", strings.ToLower(string(period)))
		path := filepath.Join(dir, name)
		qs, err := question.LoadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "warning: %s: %v\n", path, err)
			}
			continue
		}
		collections[period] = qs
	}

	bank, err := question.NewBank(collections)
	if err != nil {
		return nil, fmt.Errorf("no question files found in %s", dir)
	}
	return bank, nil
}
