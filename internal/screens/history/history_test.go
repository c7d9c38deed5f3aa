package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/licensure/examprep/internal/store"
)

type fakeRepo struct {
	store.StudySessionRepo
	sessions []store.StudySession
	err      error
	gotReg   string
	gotLimit int
}

func (f *fakeRepo) Recent(_ context.Context, registrationID string, limit int) ([]store.StudySession, error) {
	f.gotReg = registrationID
	f.gotLimit = limit
	return f.sessions, f.err
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	msg := s.Init()()
	s.Update(msg)
}

func TestHistoryScreen_LoadsRecentSessions(t *testing.T) {
	repo := &fakeRepo{sessions: []store.StudySession{
		{ID: "a", Mode: "multiple_choice", Difficulty: "hard", Score: 3, TotalQuestions: 4, TimeSpent: 75, CreatedAt: time.Now()},
		{ID: "b", Mode: "flashcard", Difficulty: "easy", TotalQuestions: 20, TimeSpent: 200, CreatedAt: time.Now()},
	}}
	s := New(repo, "reg-1")
	load(t, s)

	if repo.gotReg != "reg-1" || repo.gotLimit != Limit {
		t.Errorf("Recent called with (%q, %d), want (%q, %d)", repo.gotReg, repo.gotLimit, "reg-1", Limit)
	}
	view := s.View(100, 30)
	for _, want := range []string{"3/4", "75%", "20 items"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_ExpandShowsDetails(t *testing.T) {
	repo := &fakeRepo{sessions: []store.StudySession{
		{ID: "a", Mode: "typing", Difficulty: "medium", TotalQuestions: 10, TimeSpent: 300, CreatedAt: time.Now()},
	}}
	s := New(repo, "reg-1")
	load(t, s)

	if strings.Contains(s.View(100, 30), "medium difficulty") {
		t.Fatal("details shown before expanding")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "medium difficulty") {
		t.Error("expected details after Enter")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&fakeRepo{}, "reg-1")
	load(t, s)
	if !strings.Contains(s.View(100, 30), "No study sessions yet") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := New(&fakeRepo{err: errors.New("db locked")}, "reg-1")
	load(t, s)
	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("expected error message")
	}
}

func TestHistoryScreen_Esc(t *testing.T) {
	s := New(&fakeRepo{}, "reg-1")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}
