package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/licensure/examprep/internal/router"
	"github.com/licensure/examprep/internal/screen"
	"github.com/licensure/examprep/internal/screens/home"
	"github.com/licensure/examprep/internal/screens/setup"
	"github.com/licensure/examprep/internal/screens/study"
	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	study.Deps

	// Mode, when set, opens the difficulty picker for that mode on launch.
	Mode session.Mode
	// Difficulty, together with Mode, starts a session on launch.
	Difficulty session.Difficulty
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	exam   string
	start  screen.Screen
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen at the root.
func newAppModel(opts Options) AppModel {
	m := AppModel{router: router.New(home.New(opts.Deps))}
	if reg := opts.Registration; reg != nil {
		m.exam = reg.ExamType
	}

	if opts.Mode == "" {
		return m
	}
	s := setup.New(opts.Deps, opts.Mode)
	if opts.Difficulty == "" {
		m.start = s
	} else {
		m.start = study.New(opts.Deps, s.Config(opts.Difficulty))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	if m.start == nil {
		return nil
	}
	return m.router.Push(m.start)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.exam, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and closes every screen on exit.
func Run(opts Options) error {
	model := newAppModel(opts)
	defer model.router.CloseAll()

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
