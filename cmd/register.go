package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/licensure/examprep/internal/catalog"
	"github.com/licensure/examprep/internal/store"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register for a licensure exam",
	Long: "Register for a licensure exam. Categories: " + categoryIDs() + ".\n" +
		"Pass --paid to record the payment immediately; otherwise use 'examprep registrations pay'.",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		exam, _ := cmd.Flags().GetString("exam")
		state, _ := cmd.Flags().GetString("state")
		date, _ := cmd.Flags().GetString("date")
		paid, _ := cmd.Flags().GetBool("paid")
		paymentID, _ := cmd.Flags().GetString("payment-id")

		reg, err := buildRegistration(category, exam, state, date)
		if err != nil {
			return err
		}
		if paid {
			if paymentID == "" {
				paymentID = "manual-" + uuid.NewString()
			}
			reg.PaymentStatus = store.PaymentCompleted
			reg.PaymentID = paymentID
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		reg.UserID = e.cfg.UserID
		if err := e.store.Registrations().Create(cmd.Context(), reg); err != nil {
			return fmt.Errorf("create registration: %w", err)
		}
		e.logger.Info("registered for exam", "registration", reg.ID, "exam", reg.ExamType, "paid", reg.Paid())

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Registered %s (%s, %s) for %s\n",
			reg.ExamType, reg.Category, reg.State, reg.ExamDate.Format(dateLayout))
		fmt.Fprintf(out, "Registration ID: %s\n", reg.ID)
		fmt.Fprintf(out, "Payment:         %s\n", reg.PaymentStatus)
		return nil
	},
}

// buildRegistration validates the user's input against the catalog and
// returns a registration with canonical spellings.
func buildRegistration(category, exam, state, date string) (*store.Registration, error) {
	var errs []error

	cat, err := catalog.Lookup(category)
	if err != nil {
		errs = append(errs, err)
	}
	examName := exam
	if err == nil {
		if examName, err = catalog.CanonicalExam(cat.ID, exam); err != nil {
			errs = append(errs, err)
		}
	}
	stateName, ok := catalog.CanonicalState(state)
	if !ok {
		errs = append(errs, fmt.Errorf("unknown US state %q", state))
	}
	examDate, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		errs = append(errs, fmt.Errorf("exam date must be YYYY-MM-DD: %w", err))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &store.Registration{
		Category: cat.ID,
		ExamType: examName,
		State:    stateName,
		ExamDate: examDate,
	}, nil
}

func categoryIDs() string {
	var ids []string
	for _, c := range catalog.Categories() {
		ids = append(ids, c.ID)
	}
	return strings.Join(ids, ", ")
}

func init() {
	registerCmd.Flags().StringP("category", "c", "", "Exam category (e.g. medical, legal)")
	registerCmd.Flags().StringP("exam", "e", "", "Exam name (e.g. NCLEX-RN)")
	registerCmd.Flags().StringP("state", "s", "", "US state the license is for")
	registerCmd.Flags().String("date", "", "Exam date, YYYY-MM-DD")
	registerCmd.Flags().Bool("paid", false, "Record the registration fee as paid")
	registerCmd.Flags().String("payment-id", "", "Payment reference to store with --paid")
	for _, f := range []string{"category", "exam", "state", "date"} {
		_ = registerCmd.MarkFlagRequired(f)
	}
}
