package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/licensure/examprep/internal/questiongen"
	"github.com/licensure/examprep/internal/ui/theme"
)

// MultiChoice renders lettered options and tracks a keyboard cursor.
// Grading state is supplied at render time.
type MultiChoice struct {
	Options []string
	Cursor  int
}

// NewMultiChoice creates a selector over options such as "A) ...".
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update moves the cursor.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	}
	return m, nil
}

// CursorLetter returns the letter of the option under the cursor.
func (m MultiChoice) CursorLetter() string {
	if m.Cursor < 0 || m.Cursor >= len(m.Options) {
		return ""
	}
	return questiongen.OptionLetter(m.Options[m.Cursor])
}

// View renders the options. Once chosen is non-empty the correct option is
// highlighted and a wrong choice marked.
func (m MultiChoice) View(chosen, correct string) string {
	var s string
	for i, opt := range m.Options {
		letter := questiongen.OptionLetter(opt)
		prefix := "  "
		if chosen == "" && i == m.Cursor {
			prefix = "▸ "
		}
		line := prefix + opt

		var style lipgloss.Style
		switch {
		case chosen != "" && letter == correct:
			style = theme.Correct
			line += "  ✓"
		case chosen != "" && letter == chosen:
			style = theme.Incorrect
			line += "  ✗"
		case chosen != "":
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		s += style.Render(line) + "\n"
	}
	return s
}
