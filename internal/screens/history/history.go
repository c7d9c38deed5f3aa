package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/licensure/examprep/internal/router"
	"github.com/licensure/examprep/internal/screen"
	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/store"
	"github.com/licensure/examprep/internal/ui/layout"
	"github.com/licensure/examprep/internal/ui/theme"
)

// Limit is the number of sessions shown.
const Limit = 10

type historyLoadedMsg struct {
	Sessions []store.StudySession
	Err      error
}

// HistoryScreen displays the most recent study sessions for a registration.
type HistoryScreen struct {
	repo           store.StudySessionRepo
	registrationID string
	sessions       []store.StudySession
	selected       int
	expanded       map[int]bool
	loaded         bool
	errMsg         string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.StudySessionRepo, registrationID string) *HistoryScreen {
	return &HistoryScreen{
		repo:           repo,
		registrationID: registrationID,
		expanded:       make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, regID := s.repo, s.registrationID
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		sessions, err := repo.Recent(context.Background(), regID, Limit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No study sessions yet. Pick a mode to get started!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		mode := session.Mode(rec.Mode)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-16s  %s",
			prefix, rec.CreatedAt.Local().Format("Jan 02, 2006"), mode.Label(), scoreText(rec))

		style := lipgloss.NewStyle().Foreground(modeColor(mode))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s difficulty · %s · %s",
				rec.Difficulty,
				layout.RenderCountdown(rec.TimeSpent),
				rec.CreatedAt.Local().Format("15:04"))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func scoreText(rec store.StudySession) string {
	if session.Mode(rec.Mode) != session.ModeMultipleChoice {
		return fmt.Sprintf("%d items", rec.TotalQuestions)
	}
	var pct float64
	if rec.TotalQuestions > 0 {
		pct = float64(rec.Score) / float64(rec.TotalQuestions) * 100
	}
	return fmt.Sprintf("%d/%d  %.0f%%", rec.Score, rec.TotalQuestions, pct)
}

func modeColor(m session.Mode) color.Color {
	switch m {
	case session.ModeFlashcard:
		return theme.Secondary
	case session.ModeMultipleChoice:
		return theme.Primary
	case session.ModeTyping:
		return theme.Accent
	default:
		return theme.Text
	}
}
