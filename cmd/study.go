package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/licensure/examprep/internal/app"
	"github.com/licensure/examprep/internal/llm"
	"github.com/licensure/examprep/internal/questiongen"
	"github.com/licensure/examprep/internal/screens/study"
	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/store"
	"github.com/spf13/cobra"
)

// ErrNoPaidRegistration is returned when studying needs a paid registration
// and none matches.
var ErrNoPaidRegistration = errors.New("no paid exam registration")

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Open the study dashboard",
	Long: "Open the study dashboard for a paid exam registration. With --mode the " +
		"difficulty picker opens directly; with --mode and --difficulty a session starts right away.",
	RunE: runStudy,
}

func addStudyFlags(c *cobra.Command) {
	c.Flags().StringP("registration", "r", "", "Registration ID (default: newest paid registration)")
	c.Flags().StringP("mode", "m", "", "Study mode: flashcard, multiple-choice or typing")
	c.Flags().StringP("difficulty", "d", "", "Question difficulty: easy, medium or hard (requires --mode)")
}

func init() {
	addStudyFlags(studyCmd)
}

// runStudy opens the store, builds dependencies, and launches the TUI.
func runStudy(cmd *cobra.Command, args []string) error {
	mode, difficulty, err := parseStudyFlags(cmd)
	if err != nil {
		return err
	}

	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	regID, _ := cmd.Flags().GetString("registration")
	reg, err := paidRegistration(ctx, e.store.Registrations(), e.cfg.UserID, regID)
	if err != nil {
		return err
	}

	deps := study.Deps{
		Registration: reg,
		Sink:         newResultSink(e.store.StudySessions(), e.cfg.UserID, reg.ID),
		History:      e.store.StudySessions(),
		Logger:       e.logger,
	}

	if err := e.cfg.RequireLLM(); err != nil {
		warn("LLM provider not configured: %v", err)
		warn("Study sessions will be unavailable.")
	} else {
		provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.logger)
		if err != nil {
			return fmt.Errorf("create LLM provider: %w", err)
		}
		deps.Generator = questiongen.New(provider, generatorConfig(e.cfg))
		e.logger.Info("study dashboard starting",
			"registration", reg.ID, "exam", reg.ExamType, "model", provider.ModelID())
	}

	return app.Run(app.Options{Deps: deps, Mode: mode, Difficulty: difficulty})
}

func parseStudyFlags(cmd *cobra.Command) (session.Mode, session.Difficulty, error) {
	modeFlag, _ := cmd.Flags().GetString("mode")
	diffFlag, _ := cmd.Flags().GetString("difficulty")

	var mode session.Mode
	var difficulty session.Difficulty
	var err error
	if modeFlag != "" {
		if mode, err = session.ParseMode(modeFlag); err != nil {
			return "", "", err
		}
	}
	if diffFlag != "" {
		if mode == "" {
			return "", "", errors.New("--difficulty requires --mode")
		}
		if difficulty, err = session.ParseDifficulty(diffFlag); err != nil {
			return "", "", err
		}
	}
	return mode, difficulty, nil
}

// paidRegistration returns the registration to study for: the one named by
// id, or the user's newest paid registration.
func paidRegistration(ctx context.Context, repo store.RegistrationRepo, userID, id string) (*store.Registration, error) {
	if id == "" {
		reg, err := repo.LatestPaid(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: register with 'examprep register --paid' first", ErrNoPaidRegistration)
		}
		if err != nil {
			return nil, fmt.Errorf("find registration: %w", err)
		}
		return reg, nil
	}

	reg, err := repo.Get(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("registration %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if !reg.Paid() {
		return nil, fmt.Errorf("%w: registration %s is %s", ErrNoPaidRegistration, id, reg.PaymentStatus)
	}
	return reg, nil
}
