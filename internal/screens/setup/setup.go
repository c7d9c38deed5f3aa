package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/licensure/examprep/internal/catalog"
	"github.com/licensure/examprep/internal/router"
	"github.com/licensure/examprep/internal/screen"
	"github.com/licensure/examprep/internal/screens/study"
	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/ui/components"
	"github.com/licensure/examprep/internal/ui/layout"
	"github.com/licensure/examprep/internal/ui/theme"
)

var difficultyNotes = map[session.Difficulty]string{
	session.DifficultyEasy:   "Core definitions and recall",
	session.DifficultyMedium: "Applied scenarios",
	session.DifficultyHard:   "Edge cases and multi-step reasoning",
}

// SetupScreen picks the difficulty for a chosen mode.
type SetupScreen struct {
	deps study.Deps
	mode session.Mode
	menu components.Menu
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen for mode.
func New(deps study.Deps, mode session.Mode) *SetupScreen {
	s := &SetupScreen{deps: deps, mode: mode}

	items := make([]components.MenuItem, len(session.Difficulties))
	for i, d := range session.Difficulties {
		items[i] = components.MenuItem{
			Label:       strings.ToUpper(string(d)),
			Description: difficultyNotes[d],
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: study.New(s.deps, s.Config(d))}
				}
			},
		}
	}
	s.menu = components.NewMenu(items)
	s.menu.Selected = 1
	return s
}

// Config returns the session config for difficulty d.
func (s *SetupScreen) Config(d session.Difficulty) session.Config {
	cfg := session.Config{Difficulty: d, Mode: s.mode}
	if reg := s.deps.Registration; reg != nil {
		cfg.ExamType = reg.ExamType
		cfg.Category = reg.Category
	}
	return cfg
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return s.mode.Label()
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Difficulty"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	cfg := s.Config(session.DifficultyMedium)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render(s.mode.Label()))

	exam := cfg.ExamType
	if c, err := catalog.Lookup(cfg.Category); err == nil {
		exam = fmt.Sprintf("%s · %s", c.Name, cfg.ExamType)
	}
	sections = append(sections, theme.Subtitle.Width(cw).Render(exam))
	sections = append(sections, theme.Subtitle.Width(cw).Render(modeBlurb(s.mode)))

	var buttons []string
	for i, item := range s.menu.Items {
		buttons = append(buttons, components.MenuButton(item.Label, i == s.menu.Selected, 22))
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n")))
	sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).Render(s.menu.Current().Description))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func modeBlurb(m session.Mode) string {
	n := session.ItemCount(m)
	switch m {
	case session.ModeFlashcard:
		return fmt.Sprintf("%d cards, %ds each", n, session.FlashcardSeconds)
	case session.ModeMultipleChoice:
		return fmt.Sprintf("%d questions, untimed, graded", n)
	case session.ModeTyping:
		return fmt.Sprintf("%d questions, %d minutes total", n, session.TypingSeconds/60)
	}
	return ""
}
