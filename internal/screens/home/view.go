package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/licensure/examprep/internal/catalog"
	"github.com/licensure/examprep/internal/store"
	"github.com/licensure/examprep/internal/ui/components"
	"github.com/licensure/examprep/internal/ui/theme"
)

const appTitle = "E X A M P R E P"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Highlight).
		Bold(true).
		Render(appTitle)
}

// renderRegistration renders the exam card: exam, category, state and the
// countdown to the exam date.
func renderRegistration(reg *store.Registration, now time.Time, cw int, compact bool) string {
	if reg == nil {
		return lipgloss.NewStyle().
			Foreground(theme.Accent).
			Width(cw).
			Align(lipgloss.Center).
			Render("⚠ No paid registration found (see examprep register --help)")
	}

	category := reg.Category
	if c, err := catalog.Lookup(reg.Category); err == nil {
		category = c.Name
	}

	examStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := []string{
		examStyle.Render(reg.ExamType),
		dimStyle.Render(fmt.Sprintf("%s · %s", category, reg.State)),
	}
	if !compact {
		lines = append(lines, dimStyle.Render("Exam date: "+reg.ExamDate.Format("Jan 02, 2006")))
	}
	lines = append(lines, countdownText(reg.ExamDate, now))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// countdownText renders the number of whole days until the exam.
func countdownText(examDate, now time.Time) string {
	days := DaysUntil(examDate, now)
	switch {
	case days < 0:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Exam date has passed")
	case days == 0:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Exam is today!")
	case days <= 14:
		return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("%d days to go", days))
	default:
		return lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("%d days to go", days))
	}
}

// DaysUntil returns the number of calendar days from now to examDate.
func DaysUntil(examDate, now time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = examDate.Date()
	exam := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(exam.Sub(today).Hours() / 24)
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(menu components.Menu, cw int) string {
	var buttons []string
	for i, item := range menu.Items {
		if item.Disabled {
			buttons = append(buttons, lipgloss.NewStyle().
				Width(buttonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 1).
				Render(item.Label))
			continue
		}
		buttons = append(buttons, components.MenuButton(item.Label, i == menu.Selected, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(menu components.Menu, cw int) string {
	var lines []string
	for i, item := range menu.Items {
		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + item.Label)
		case i == menu.Selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ " + item.Label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + item.Label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner renders a warning banner when no LLM API key is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to start studying (see examprep --help)")
}

func renderHint(text string, cw int) string {
	return theme.Hint.
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
