package summary

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/licensure/examprep/internal/router"
	"github.com/licensure/examprep/internal/screen"
	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/ui/components"
	"github.com/licensure/examprep/internal/ui/layout"
	"github.com/licensure/examprep/internal/ui/theme"
)

// RetryMsg asks the study screen underneath to restart with the same config.
type RetryMsg struct{}

// SummaryScreen displays the result of a completed session.
type SummaryScreen struct {
	result   session.Result
	buttons  []components.Button
	selected int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackInterceptor = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result session.Result) *SummaryScreen {
	s := &SummaryScreen{result: result}
	s.buttons = []components.Button{
		components.NewButton("Try again", true, retryCmd),
		components.NewButton("Home", false, homeCmd),
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

// InterceptBack lets Esc return to the home screen instead of the
// finished study screen.
func (s *SummaryScreen) InterceptBack() bool {
	return true
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Try again"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "r", "R":
		return s, retryCmd()
	case "esc":
		return s, homeCmd()
	case "left", "h", "shift+tab":
		s.selectButton(s.selected - 1)
		return s, nil
	case "right", "l", "tab":
		s.selectButton(s.selected + 1)
		return s, nil
	}

	var cmd tea.Cmd
	s.buttons[s.selected], cmd = s.buttons[s.selected].Update(msg)
	return s, cmd
}

func (s *SummaryScreen) selectButton(i int) {
	if i < 0 || i >= len(s.buttons) {
		return
	}
	s.selected = i
	for j := range s.buttons {
		s.buttons[j].Active = j == i
	}
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Session complete!"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("%s · %s · %s", res.ExamType, res.Mode.Label(), res.Difficulty)))
	b.WriteString("\n\n")

	if res.Mode == session.ModeMultipleChoice {
		pct := Percent(res)
		style := theme.Correct
		if pct < 70 {
			style = theme.Incorrect
		}
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
			fmt.Sprintf("Score: %d/%d", res.Score, res.TotalQuestions)))
		b.WriteString("\n")
		b.WriteString(center(style, fmt.Sprintf("%d%%", pct)))
	} else {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
			fmt.Sprintf("Studied %d items (not graded)", res.TotalQuestions)))
	}
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		"Time spent: "+layout.RenderCountdown(res.TimeSpent)))
	b.WriteString("\n\n")

	var views []string
	for i, btn := range s.buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, btn.View())
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Center, views...)))

	return b.String()
}

// Percent returns the rounded score percentage.
func Percent(r session.Result) int {
	return int(math.Round(r.Accuracy() * 100))
}

func retryCmd() tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return RetryMsg{} },
	)
}

func homeCmd() tea.Cmd {
	return func() tea.Msg { return router.PopToRootMsg{} }
}
