package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensure/examprep/internal/config"
	"github.com/licensure/examprep/internal/questiongen"
	"github.com/licensure/examprep/internal/selfupdate"
	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := store.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createRegistration(t *testing.T, repo store.RegistrationRepo, userID string, paid bool) *store.Registration {
	t.Helper()
	reg := &store.Registration{
		UserID:   userID,
		Category: "medical",
		ExamType: "NCLEX",
		State:    "Ohio",
		ExamDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	if paid {
		reg.PaymentStatus = store.PaymentCompleted
		reg.PaymentID = "pay-1"
	}
	require.NoError(t, repo.Create(context.Background(), reg))
	return reg
}

func TestResultSink_PersistsStudySession(t *testing.T) {
	s := openTestStore(t)
	reg := createRegistration(t, s.Registrations(), "local", true)
	sink := newResultSink(s.StudySessions(), "local", reg.ID)

	completed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	res := session.Result{
		SessionID:      uuid.NewString(),
		ExamType:       "NCLEX",
		Category:       "medical",
		Mode:           session.ModeMultipleChoice,
		Difficulty:     session.DifficultyHard,
		Score:          12,
		TotalQuestions: 20,
		TimeSpent:      480,
		CompletedAt:    completed,
	}
	require.NoError(t, sink.SaveResult(context.Background(), res))

	got, err := s.StudySessions().Recent(context.Background(), reg.ID, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, res.SessionID, got[0].ID)
	assert.Equal(t, "local", got[0].UserID)
	assert.Equal(t, "multiple_choice", got[0].Mode)
	assert.Equal(t, "hard", got[0].Difficulty)
	assert.Equal(t, 12, got[0].Score)
	assert.Equal(t, 20, got[0].TotalQuestions)
	assert.Equal(t, 480, got[0].TimeSpent)
	assert.True(t, completed.Equal(got[0].CreatedAt))
}

func TestResultSink_RejectsInvalidResult(t *testing.T) {
	s := openTestStore(t)
	reg := createRegistration(t, s.Registrations(), "local", true)
	sink := newResultSink(s.StudySessions(), "local", reg.ID)

	err := sink.SaveResult(context.Background(), session.Result{
		SessionID:  uuid.NewString(),
		Mode:       session.ModeTyping,
		Difficulty: session.DifficultyEasy,
	})
	var perr *store.PersistenceError
	require.ErrorAs(t, err, &perr)
}

func TestPaidRegistration(t *testing.T) {
	s := openTestStore(t)
	repo := s.Registrations()
	ctx := context.Background()

	_, err := paidRegistration(ctx, repo, "local", "")
	require.ErrorIs(t, err, ErrNoPaidRegistration)

	unpaid := createRegistration(t, repo, "local", false)
	_, err = paidRegistration(ctx, repo, "local", unpaid.ID)
	require.ErrorIs(t, err, ErrNoPaidRegistration)

	paid := createRegistration(t, repo, "local", true)
	got, err := paidRegistration(ctx, repo, "local", "")
	require.NoError(t, err)
	assert.Equal(t, paid.ID, got.ID)

	got, err = paidRegistration(ctx, repo, "local", paid.ID)
	require.NoError(t, err)
	assert.Equal(t, paid.ID, got.ID)

	_, err = paidRegistration(ctx, repo, "someone-else", paid.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestBuildRegistration(t *testing.T) {
	reg, err := buildRegistration(" Medical ", "nclex", "new york", "2026-11-05")
	require.NoError(t, err)
	assert.Equal(t, "medical", reg.Category)
	assert.Equal(t, "NCLEX", reg.ExamType)
	assert.Equal(t, "New York", reg.State)
	assert.Equal(t, time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC), reg.ExamDate)

	_, err = buildRegistration("astrology", "NCLEX", "Atlantis", "next week")
	require.Error(t, err)
	for _, want := range []string{"astrology", "Atlantis", "YYYY-MM-DD"} {
		assert.Contains(t, err.Error(), want)
	}

	_, err = buildRegistration("legal", "NCLEX", "Ohio", "2026-11-05")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not offered")
}

func TestGeneratorConfig(t *testing.T) {
	var cfg config.Config
	gc := generatorConfig(cfg)
	assert.Equal(t, questiongen.DefaultConfig(), gc)

	cfg.StructuredOutput = true
	gc = generatorConfig(cfg)
	assert.True(t, gc.StructuredOutput)
	assert.Equal(t, questiongen.DefaultConfig().Timeout, gc.Timeout)
	assert.Equal(t, questiongen.DefaultConfig().QuestionMaxTokens, gc.QuestionMaxTokens)
}

func TestParseStudyFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		mode    session.Mode
		diff    session.Difficulty
		wantErr bool
	}{
		{"none", nil, "", "", false},
		{"mode only", []string{"--mode", "mc"}, session.ModeMultipleChoice, "", false},
		{"mode and difficulty", []string{"-m", "typing", "-d", "Hard"}, session.ModeTyping, session.DifficultyHard, false},
		{"difficulty without mode", []string{"-d", "easy"}, "", "", true},
		{"bad mode", []string{"-m", "essay"}, "", "", true},
		{"bad difficulty", []string{"-m", "flashcard", "-d", "brutal"}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &cobra.Command{Use: "study"}
			addStudyFlags(c)
			require.NoError(t, c.ParseFlags(tt.args))

			mode, diff, err := parseStudyFlags(c)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mode, mode)
			assert.Equal(t, tt.diff, diff)
		})
	}
}

// batchGenerator returns a full batch where every correct answer is B.
type batchGenerator struct{ err error }

func (g batchGenerator) Generate(_ context.Context, req questiongen.Request) ([]questiongen.Item, error) {
	if g.err != nil {
		return nil, g.err
	}
	items := make([]questiongen.Item, req.Count)
	for i := range items {
		if req.Kind == questiongen.KindFlashcard {
			items[i] = &questiongen.Flashcard{Prompt: fmt.Sprintf("Term %d", i), Answer: fmt.Sprintf("Definition %d", i)}
			continue
		}
		items[i] = &questiongen.Question{
			ID:            fmt.Sprintf("q_%d", i),
			Prompt:        fmt.Sprintf("Question %d?", i),
			Options:       []string{"A) one", "B) two", "C) three", "D) four", "E) five"},
			CorrectAnswer: "B",
			Explanation:   "Because.",
		}
	}
	return items, nil
}

func previewConfig(mode session.Mode) session.Config {
	return session.Config{ExamType: "NCLEX", Category: "medical", Difficulty: session.DifficultyMedium, Mode: mode}
}

func TestWalkSession_MultipleChoice(t *testing.T) {
	in := strings.NewReader("b\nz\na\nq\n")
	var out bytes.Buffer

	res, err := walkSession(context.Background(), in, &out, batchGenerator{}, previewConfig(session.ModeMultipleChoice), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 20, res.TotalQuestions)

	text := out.String()
	assert.Contains(t, text, "✓ Correct!")
	assert.Contains(t, text, "Pick one of the listed letters.")
	assert.Contains(t, text, "✗ Wrong.")
	assert.Contains(t, text, "Summary: 1/20 correct (5%)")
}

func TestWalkSession_FlashcardLimit(t *testing.T) {
	in := strings.NewReader("\n\n\n")
	var out bytes.Buffer

	res, err := walkSession(context.Background(), in, &out, batchGenerator{}, previewConfig(session.ModeFlashcard), 2)
	require.NoError(t, err)
	assert.Equal(t, 20*session.FlashcardSeconds, res.TimeSpent)
	assert.Contains(t, out.String(), "Answer: Definition 1")
	assert.NotContains(t, out.String(), "Term 2")
}

func TestWalkSession_GenerationError(t *testing.T) {
	genErr := &questiongen.GenerationError{Stage: "provider", Err: errors.New("down")}
	_, err := walkSession(context.Background(), strings.NewReader(""), &bytes.Buffer{},
		batchGenerator{err: genErr}, previewConfig(session.ModeTyping), 0)
	var gerr *questiongen.GenerationError
	require.ErrorAs(t, err, &gerr)
}

func TestRunUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"v1.4.0","html_url":"https://example.test/v1.4.0"}`))
	}))
	defer srv.Close()
	u := selfupdate.New(selfupdate.WithAPIURL(srv.URL))
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, runUpdate(ctx, &out, u, "v1.3.2", "", true))
	assert.Contains(t, out.String(), "examprep v1.4.0 is available (running v1.3.2)")

	out.Reset()
	require.NoError(t, runUpdate(ctx, &out, u, "v1.4.0", "", true))
	assert.Contains(t, out.String(), "is the latest release")

	out.Reset()
	require.NoError(t, runUpdate(ctx, &out, u, "v1.4.0", "", false))
	assert.Contains(t, out.String(), "Already running the latest version.")

	out.Reset()
	require.NoError(t, runUpdate(ctx, &out, u, "(devel)", "", false))
	assert.Contains(t, out.String(), "development build")

	err := runUpdate(ctx, &out, u, "v1.0.0", "newest", false)
	assert.ErrorIs(t, err, selfupdate.ErrBadVersion)
}
