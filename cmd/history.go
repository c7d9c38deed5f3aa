package cmd

import (
	"fmt"
	"strings"

	"github.com/licensure/examprep/internal/screens/history"
	"github.com/licensure/examprep/internal/session"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		regID, _ := cmd.Flags().GetString("registration")
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		reg, err := paidRegistration(ctx, e.store.Registrations(), e.cfg.UserID, regID)
		if err != nil {
			return err
		}

		sessions, err := e.store.StudySessions().Recent(ctx, reg.ID, limit)
		if err != nil {
			return fmt.Errorf("query study sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintf(out, "No study sessions yet for %s.\n", reg.ExamType)
			return nil
		}

		fmt.Fprintf(out, "%s (%s)\n\n", reg.ExamType, reg.ID)
		fmt.Fprintf(out, "%-16s  %-16s  %-10s  %8s  %6s  %6s\n",
			"Completed", "Mode", "Difficulty", "Score", "Pct", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, s := range sessions {
			score, pct := "-", "-"
			if session.Mode(s.Mode) == session.ModeMultipleChoice {
				score = fmt.Sprintf("%d/%d", s.Score, s.TotalQuestions)
				pct = fmt.Sprintf("%.0f%%", float64(s.Score)/float64(s.TotalQuestions)*100)
			}
			fmt.Fprintf(out, "%-16s  %-16s  %-10s  %8s  %6s  %3d:%02d\n",
				s.CreatedAt.Local().Format("2006-01-02 15:04"),
				session.Mode(s.Mode).Label(),
				s.Difficulty,
				score, pct,
				s.TimeSpent/60, s.TimeSpent%60)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringP("registration", "r", "", "Registration ID (default: newest paid registration)")
	historyCmd.Flags().IntP("limit", "n", history.Limit, "Number of sessions to show")
}
