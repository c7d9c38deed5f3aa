package session

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/licensure/examprep/internal/questiongen"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testConfig(mode Mode) Config {
	return Config{
		ExamType:   "NCLEX-RN",
		Category:   "medical",
		Difficulty: DifficultyMedium,
		Mode:       mode,
	}
}

// questions returns n valid questions whose correct answer is always B.
func questions(n int) []questiongen.Item {
	items := make([]questiongen.Item, n)
	for i := range n {
		items[i] = &questiongen.Question{
			ID:            fmt.Sprintf("q_1_%d", i),
			Prompt:        fmt.Sprintf("Question %d?", i),
			Options:       []string{"A) one", "B) two", "C) three", "D) four", "E) five"},
			CorrectAnswer: "B",
			Explanation:   "Because.",
			Difficulty:    "medium",
			Category:      "medical",
			ExamType:      "NCLEX-RN",
		}
	}
	return items
}

func flashcards(n int) []questiongen.Item {
	items := make([]questiongen.Item, n)
	for i := range n {
		items[i] = &questiongen.Flashcard{
			Prompt: fmt.Sprintf("Term %d", i),
			Answer: fmt.Sprintf("Definition %d", i),
		}
	}
	return items
}

func itemsFor(mode Mode) []questiongen.Item {
	if mode == ModeFlashcard {
		return flashcards(ItemCount(mode))
	}
	return questions(ItemCount(mode))
}

// activeSession returns a session in mode that has accepted a full batch.
func activeSession(t *testing.T, mode Mode, clock Clock) *Session {
	t.Helper()
	s, err := New(testConfig(mode), WithClock(clock))
	require.NoError(t, err)
	_, err = s.BeginGeneration()
	require.NoError(t, err)
	require.NoError(t, s.Activate(itemsFor(mode)))
	return s
}

// fakeGenerator answers each call with respond, recording requests.
type fakeGenerator struct {
	mu      sync.Mutex
	reqs    []questiongen.Request
	respond func(ctx context.Context, call int, req questiongen.Request) ([]questiongen.Item, error)
}

func (g *fakeGenerator) Generate(ctx context.Context, req questiongen.Request) ([]questiongen.Item, error) {
	g.mu.Lock()
	call := len(g.reqs)
	g.reqs = append(g.reqs, req)
	g.mu.Unlock()
	return g.respond(ctx, call, req)
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.reqs)
}

func staticGenerator(items []questiongen.Item) *fakeGenerator {
	return &fakeGenerator{respond: func(context.Context, int, questiongen.Request) ([]questiongen.Item, error) {
		return items, nil
	}}
}

type recordingSink struct {
	mu      sync.Mutex
	results []Result
	err     error
}

func (s *recordingSink) SaveResult(_ context.Context, r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return s.err
}

func (s *recordingSink) saved() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Result(nil), s.results...)
}

// syncBuffer is a bytes.Buffer safe for concurrent writes from slog.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func debugLogger(w *syncBuffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func waitForStatus(t *testing.T, r *Runner, want Status) Snapshot {
	t.Helper()
	var snap Snapshot
	require.Eventually(t, func() bool {
		snap = r.Snapshot()
		return snap.Status == want
	}, 2*time.Second, 5*time.Millisecond, "status never reached %s", want)
	return snap
}
