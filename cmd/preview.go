package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/licensure/examprep/internal/catalog"
	"github.com/licensure/examprep/internal/config"
	"github.com/licensure/examprep/internal/llm"
	"github.com/licensure/examprep/internal/logging"
	"github.com/licensure/examprep/internal/questiongen"
	"github.com/licensure/examprep/internal/screens/summary"
	"github.com/licensure/examprep/internal/session"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a generated study batch in plain text (no database)",
	Long: `Generate one batch for an exam and walk through it line by line.

This is a stateless developer tool: no database, no registration, no saved
results. Useful for evaluating question quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("category", "c", "", "Exam category (required)")
	previewCmd.Flags().StringP("exam", "e", "", "Exam name (required)")
	previewCmd.Flags().StringP("mode", "m", string(session.ModeMultipleChoice), "Study mode: flashcard, multiple-choice or typing")
	previewCmd.Flags().StringP("difficulty", "d", string(session.DifficultyMedium), "Question difficulty: easy, medium or hard")
	previewCmd.Flags().IntP("limit", "n", 0, "Stop after this many items (0 = whole batch)")
	_ = previewCmd.MarkFlagRequired("category")
	_ = previewCmd.MarkFlagRequired("exam")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	categoryVal, _ := cmd.Flags().GetString("category")
	examVal, _ := cmd.Flags().GetString("exam")
	modeVal, _ := cmd.Flags().GetString("mode")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	limit, _ := cmd.Flags().GetInt("limit")

	exam, err := catalog.CanonicalExam(categoryVal, examVal)
	if err != nil {
		return err
	}
	mode, err := session.ParseMode(modeVal)
	if err != nil {
		return err
	}
	difficulty, err := session.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}

	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	if err := cfg.RequireLLM(); err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}

	// No event repo: nothing is recorded.
	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, cfg.LLM, nil, logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := questiongen.New(provider, generatorConfig(cfg))

	sessCfg := session.Config{
		ExamType:   exam,
		Category:   strings.ToLower(strings.TrimSpace(categoryVal)),
		Difficulty: difficulty,
		Mode:       mode,
	}
	_, err = walkSession(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), gen, sessCfg, limit)
	return err
}

// walkSession generates one batch and steps through it with line input.
// Entering "q" ends the session early.
func walkSession(ctx context.Context, in io.Reader, out io.Writer, gen questiongen.Generator, cfg session.Config, limit int) (session.Result, error) {
	s, err := session.New(cfg)
	if err != nil {
		return session.Result{}, err
	}
	req, err := s.BeginGeneration()
	if err != nil {
		return session.Result{}, err
	}

	fmt.Fprintf(out, "%s · %s · %s\n", cfg.ExamType, cfg.Mode.Label(), cfg.Difficulty)
	fmt.Fprintf(out, "Generating %d items...\n\n", req.Count)

	items, err := gen.Generate(ctx, req)
	if err != nil {
		s.FailGeneration(err)
		return session.Result{}, err
	}
	if err := s.Activate(items); err != nil {
		return session.Result{}, err
	}

	scanner := bufio.NewScanner(in)
	readLine := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for s.Status() == session.StatusActive {
		snap := s.Snapshot()
		if limit > 0 && snap.Index >= limit {
			s.End()
			break
		}
		fmt.Fprintf(out, "── %d/%d ──\n", snap.Index+1, snap.Total())
		fmt.Fprintln(out, snap.Current().ItemPrompt())

		if !previewItem(s, snap, out, readLine) {
			s.End()
			break
		}
		fmt.Fprintln(out)
		s.Advance()
	}

	res, _ := s.Result()
	if res.Mode == session.ModeMultipleChoice {
		fmt.Fprintf(out, "── Summary: %d/%d correct (%d%%) ──\n", res.Score, res.TotalQuestions, summary.Percent(res))
	} else {
		fmt.Fprintf(out, "── Summary: %d items ──\n", res.TotalQuestions)
	}
	return res, nil
}

// previewItem handles input for the current item. It returns false when
// the user quits or input ends.
func previewItem(s *session.Session, snap session.Snapshot, out io.Writer, readLine func(string) (string, bool)) bool {
	switch snap.Config.Mode {
	case session.ModeFlashcard:
		line, ok := readLine("\n[Enter] reveal: ")
		if !ok || line == "q" {
			return false
		}
		s.Act(session.Reveal{})
		fmt.Fprintf(out, "Answer: %s\n", snap.CurrentFlashcard().Answer)

	case session.ModeMultipleChoice:
		q := snap.CurrentQuestion()
		for _, opt := range q.Options {
			fmt.Fprintf(out, "  %s\n", opt)
		}
		for {
			line, ok := readLine("\nYour answer (A-E): ")
			if !ok || line == "q" {
				return false
			}
			if s.Act(session.Select{Letter: line}) {
				break
			}
			fmt.Fprintln(out, "Pick one of the listed letters.")
		}
		if answer, _ := s.Snapshot().Answer(snap.Index); answer == q.CorrectAnswer {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectAnswer)
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}

	case session.ModeTyping:
		line, ok := readLine("\nYour answer: ")
		if !ok || line == "q" {
			return false
		}
		if line != "" {
			s.Act(session.Type{Text: line})
		}
		if q := snap.CurrentQuestion(); q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
	}
	return true
}
