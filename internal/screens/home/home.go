package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/licensure/examprep/internal/router"
	"github.com/licensure/examprep/internal/screen"
	"github.com/licensure/examprep/internal/screens/history"
	"github.com/licensure/examprep/internal/screens/setup"
	"github.com/licensure/examprep/internal/screens/study"
	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/ui/components"
	"github.com/licensure/examprep/internal/ui/layout"
)

// HomeScreen is the study dashboard for one exam registration.
type HomeScreen struct {
	deps study.Deps
	menu components.Menu
	now  func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps study.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, now: time.Now}
	noReg := deps.Registration == nil

	var items []components.MenuItem
	for _, m := range session.Modes {
		items = append(items, components.MenuItem{
			Label:       strings.ToUpper(m.Label()),
			Description: modeDescription(m),
			Disabled:    noReg || deps.Generator == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: setup.New(h.deps, m)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:       "HISTORY",
			Description: "Your last 10 study sessions",
			Disabled:    noReg || deps.History == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(h.deps.History, h.deps.Registration.ID)}
				}
			},
		},
		components.MenuItem{
			Label: "QUIT",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	)

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer.
	full := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(full) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw))
	sections = append(sections, renderRegistration(h.deps.Registration, h.now(), cw, compact))
	if h.deps.Registration != nil && h.deps.Generator == nil {
		sections = append(sections, renderLLMBanner(cw))
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderMenu(h.menu, cw))
	}
	if desc := h.menu.Current().Description; desc != "" {
		sections = append(sections, renderHint(desc, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func modeDescription(m session.Mode) string {
	switch m {
	case session.ModeFlashcard:
		return "20 cards · reveal the answer, 10 seconds per card"
	case session.ModeMultipleChoice:
		return "20 questions · pick A-E, instant feedback"
	case session.ModeTyping:
		return "10 questions · write your answers, 5 minutes"
	}
	return ""
}
