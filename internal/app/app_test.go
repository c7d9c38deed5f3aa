package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/licensure/examprep/internal/questiongen"
	"github.com/licensure/examprep/internal/router"
	"github.com/licensure/examprep/internal/screens/setup"
	"github.com/licensure/examprep/internal/screens/study"
	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/store"
)

type nopGenerator struct{}

func (nopGenerator) Generate(context.Context, questiongen.Request) ([]questiongen.Item, error) {
	return nil, nil
}

func testOptions() Options {
	return Options{Deps: study.Deps{
		Registration: &store.Registration{ID: "reg-1", Category: "medical", ExamType: "NCLEX-RN", State: "Ohio"},
		Generator:    nopGenerator{},
		Clock:        session.NewManualClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
	}}
}

func TestAppModel_StartsAtHome(t *testing.T) {
	m := newAppModel(testOptions())
	defer m.router.CloseAll()
	if cmd := m.Init(); cmd != nil {
		t.Error("expected no init command without a preselected mode")
	}
	if m.router.Depth() != 1 || m.router.Active().Title() != "Home" {
		t.Errorf("depth = %d, active = %q", m.router.Depth(), m.router.Active().Title())
	}
}

func TestAppModel_PreselectedMode(t *testing.T) {
	opts := testOptions()
	opts.Mode = session.ModeTyping
	m := newAppModel(opts)
	defer m.router.CloseAll()
	m.Init()

	if _, ok := m.router.Active().(*setup.SetupScreen); !ok {
		t.Fatalf("active = %T, want *setup.SetupScreen", m.router.Active())
	}

	// Setup does not intercept Esc, so the app pops it.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestAppModel_PreselectedDifficultyStartsStudy(t *testing.T) {
	opts := testOptions()
	opts.Mode = session.ModeFlashcard
	opts.Difficulty = session.DifficultyHard
	m := newAppModel(opts)
	defer m.router.CloseAll()

	if _, ok := m.start.(*study.Screen); !ok {
		t.Fatalf("start = %T, want *study.Screen", m.start)
	}
	if m.start.Title() != "Flashcards" {
		t.Errorf("title = %q", m.start.Title())
	}
}

func TestAppModel_EscForwardedToInterceptor(t *testing.T) {
	opts := testOptions()
	opts.Mode = session.ModeFlashcard
	opts.Difficulty = session.DifficultyEasy
	m := newAppModel(opts)
	defer m.router.CloseAll()
	m.router.Push(m.start)

	// The study screen is still configuring, so it pops itself on Esc.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected the study screen to handle Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
