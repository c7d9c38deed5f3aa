package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/licensure/examprep/internal/router"
	"github.com/licensure/examprep/internal/session"
)

func testResult() session.Result {
	return session.Result{
		SessionID:      "s-1",
		ExamType:       "NCLEX-RN",
		Category:       "medical",
		Mode:           session.ModeMultipleChoice,
		Difficulty:     session.DifficultyMedium,
		Score:          15,
		TotalQuestions: 20,
		TimeSpent:      312,
		CompletedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult())
	view := s.View(80, 24)
	for _, want := range []string{"15/20", "75%", "5:12"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_UngradedModes(t *testing.T) {
	res := testResult()
	res.Mode = session.ModeFlashcard
	res.Score = 0
	view := New(res).View(80, 24)
	if !strings.Contains(view, "not graded") {
		t.Error("expected ungraded note for flashcard session")
	}
	if strings.Contains(view, "%") {
		t.Error("flashcard summary should not show a percentage")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		score, total int
		want         int
	}{
		{0, 20, 0},
		{1, 20, 5},
		{2, 3, 67},
		{1, 3, 33},
		{20, 20, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		got := Percent(session.Result{Score: tt.score, TotalQuestions: tt.total})
		if got != tt.want {
			t.Errorf("Percent(%d/%d) = %d, want %d", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected Esc to pop to root")
	}
}

func TestSummaryScreen_Navigation_EnterOnHome(t *testing.T) {
	s := New(testResult())
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected Home button to pop to root")
	}
}

func TestSummaryScreen_Retry(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Error("expected a command on r (retry)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult())
	if !s.InterceptBack() {
		t.Error("summary should handle Esc itself")
	}
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
