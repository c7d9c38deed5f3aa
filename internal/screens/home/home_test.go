package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/licensure/examprep/internal/questiongen"
	"github.com/licensure/examprep/internal/router"
	"github.com/licensure/examprep/internal/screens/history"
	"github.com/licensure/examprep/internal/screens/setup"
	"github.com/licensure/examprep/internal/screens/study"
	"github.com/licensure/examprep/internal/store"
)

type nopGenerator struct{}

func (nopGenerator) Generate(context.Context, questiongen.Request) ([]questiongen.Item, error) {
	return nil, nil
}

type nopHistory struct{ store.StudySessionRepo }

func testDeps() study.Deps {
	return study.Deps{
		Registration: &store.Registration{
			ID:            "reg-1",
			Category:      "medical",
			ExamType:      "NCLEX-RN",
			State:         "Ohio",
			ExamDate:      time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
			PaymentStatus: store.PaymentCompleted,
		},
		Generator: nopGenerator{},
		History:   nopHistory{},
	}
}

func TestHomeScreen_View(t *testing.T) {
	h := New(testDeps())
	h.now = func() time.Time { return time.Date(2026, 3, 31, 15, 0, 0, 0, time.UTC) }

	view := h.View(100, 30)
	for _, want := range []string{"NCLEX-RN", "Ohio", "10 days to go", "FLASHCARDS", "HISTORY"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHomeScreen_ModePushesSetup(t *testing.T) {
	h := New(testDeps())
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	s, ok := push.Screen.(*setup.SetupScreen)
	if !ok {
		t.Fatalf("pushed %T, want *setup.SetupScreen", push.Screen)
	}
	if s.Title() != "Multiple Choice" {
		t.Errorf("setup title = %q", s.Title())
	}
}

func TestHomeScreen_HistoryPushesHistory(t *testing.T) {
	h := New(testDeps())
	for range 3 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want *history.HistoryScreen", push.Screen)
	}
}

func TestHomeScreen_NoRegistrationDisablesStudy(t *testing.T) {
	h := New(study.Deps{})
	if got := h.menu.Current().Label; got != "QUIT" {
		t.Errorf("selected = %q, want QUIT", got)
	}
	if !strings.Contains(h.View(100, 30), "No paid registration") {
		t.Error("expected missing-registration banner")
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	tests := []struct {
		exam time.Time
		want int
	}{
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), -1},
		{time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 31},
	}
	for _, tt := range tests {
		if got := DaysUntil(tt.exam, now); got != tt.want {
			t.Errorf("DaysUntil(%s) = %d, want %d", tt.exam.Format("2006-01-02"), got, tt.want)
		}
	}
}
