package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/licensure/examprep/internal/store"
	"github.com/spf13/cobra"
)

var registrationsCmd = &cobra.Command{
	Use:   "registrations",
	Short: "List your exam registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		regs, err := e.store.Registrations().List(cmd.Context(), e.cfg.UserID)
		if err != nil {
			return fmt.Errorf("list registrations: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(regs) == 0 {
			fmt.Fprintln(out, "No registrations yet. Run 'examprep register' to add one.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-12s  %-24s  %-16s  %-10s  %s\n",
			"ID", "Category", "Exam", "State", "Exam Date", "Payment")
		fmt.Fprintln(out, strings.Repeat("─", 118))
		for _, r := range regs {
			fmt.Fprintf(out, "%-36s  %-12s  %-24s  %-16s  %-10s  %s\n",
				r.ID, r.Category, truncate(r.ExamType, 24), truncate(r.State, 16),
				r.ExamDate.Format(dateLayout), r.PaymentStatus)
		}
		return nil
	},
}

var registrationsPayCmd = &cobra.Command{
	Use:   "pay <registration-id>",
	Short: "Record the payment for a registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paymentID, _ := cmd.Flags().GetString("payment-id")
		if paymentID == "" {
			paymentID = "manual-" + uuid.NewString()
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		repo := e.store.Registrations()
		ctx := cmd.Context()
		reg, err := repo.Get(ctx, e.cfg.UserID, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("registration %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get registration: %w", err)
		}
		if reg.Paid() {
			fmt.Fprintf(cmd.OutOrStdout(), "Registration %s is already paid.\n", reg.ID)
			return nil
		}

		if err := repo.MarkPaid(ctx, reg.ID, paymentID); err != nil {
			return fmt.Errorf("mark paid: %w", err)
		}
		e.logger.Info("registration paid", "registration", reg.ID, "payment_id", paymentID)
		fmt.Fprintf(cmd.OutOrStdout(), "Registration %s marked paid (%s).\n", reg.ID, paymentID)
		return nil
	},
}

func init() {
	registrationsPayCmd.Flags().String("payment-id", "", "Payment reference (default: generated)")
	registrationsCmd.AddCommand(registrationsPayCmd)
}
