package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/ui/components"
	"github.com/licensure/examprep/internal/ui/layout"
	"github.com/licensure/examprep/internal/ui/theme"
)

// renderInfoLine renders the item counter, score, and countdown above the
// current item.
func (s *Screen) renderInfoLine(width int) string {
	snap := s.snap

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", snap.Config.ExamType, snap.Config.Difficulty))

	right := fmt.Sprintf("%d/%d", snap.Index+1, snap.Total())
	if snap.Config.Mode == session.ModeMultipleChoice {
		right += fmt.Sprintf("  %s %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			snap.Score)
	}
	if snap.Timed {
		right += fmt.Sprintf("  %s %s",
			lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱"),
			layout.RenderCountdown(snap.RemainingSeconds))
	}
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}

	var b strings.Builder
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", snap.Progress(), false, width-4).View())
	b.WriteString("\n\n")
	return b.String()
}

func (s *Screen) renderPrompt(width int, prompt string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(prompt)
}

func (s *Screen) renderFlashcard(width int) string {
	card := s.snap.CurrentFlashcard()
	if card == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))

	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 6).Render(card.Prompt)
	if s.snap.Revealed {
		body += "\n\n" + theme.Revealed.Width(cw-6).Render(card.Answer)
	} else {
		body += "\n\n" + theme.Hint.Render("Press Space to reveal")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(body, cw)))
	return b.String()
}

func (s *Screen) renderMultipleChoice(width int) string {
	q := s.snap.CurrentQuestion()
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString(s.renderPrompt(width, q.Prompt))
	b.WriteString("\n\n")

	chosen, _ := s.snap.Answer(s.snap.Index)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View(chosen, q.CorrectAnswer)))

	if chosen == "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\nSelect (A-E) or use arrows + Enter"))
		return b.String()
	}

	verdict := theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is %s.", q.CorrectAnswer))
	if chosen == q.CorrectAnswer {
		verdict = theme.Correct.Render("Correct!")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(verdict))
	if q.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(q.Explanation))
	}
	return b.String()
}

func (s *Screen) renderTyping(width int) string {
	q := s.snap.CurrentQuestion()
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString(s.renderPrompt(width, q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View()))
	return b.String()
}

func (s *Screen) renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  %s Generating %d %s...",
			s.spinner.View(), session.ItemCount(s.cfg.Mode), itemNoun(s.cfg.Mode)))
}

func renderComplete(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Session complete.")
}

// renderError renders a generation or startup failure with a retry hint.
func renderError(width int, err error) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("Failed to generate questions."))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(err.Error()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("Press R to retry"))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this session?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Unfinished sessions are not saved. Ctrl+E ends and saves."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func itemNoun(m session.Mode) string {
	if m == session.ModeFlashcard {
		return "flashcards"
	}
	return "questions"
}
