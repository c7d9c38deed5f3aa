package cmd

import (
	"github.com/licensure/examprep/internal/config"
	"github.com/licensure/examprep/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "examprep",
	Short: "Licensure exam study sessions in your terminal",
	Long: "examprep generates flashcards and practice questions for your licensure exam " +
		"and runs timed study sessions in the terminal.",
	SilenceUsage: true,
	RunE:         runStudy,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXAMPREP_DB env var)")
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "Load settings from these .env files instead of ./.env")
	addStudyFlags(rootCmd)

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(registrationsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EXAMPREP_DB (from the environment or a loaded .env), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
