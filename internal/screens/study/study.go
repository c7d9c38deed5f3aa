package study

import (
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/licensure/examprep/internal/questiongen"
	"github.com/licensure/examprep/internal/router"
	"github.com/licensure/examprep/internal/screen"
	"github.com/licensure/examprep/internal/screens/summary"
	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/store"
	"github.com/licensure/examprep/internal/ui/components"
	"github.com/licensure/examprep/internal/ui/layout"
)

// Deps are the collaborators every study session needs.
type Deps struct {
	Registration *store.Registration
	Generator    questiongen.Generator
	Sink         session.ResultSink
	History      store.StudySessionRepo
	Logger       *slog.Logger

	// Clock overrides the wall clock; nil means real time.
	Clock session.Clock
}

// Screen drives one session runner and renders its snapshots.
type Screen struct {
	cfg     session.Config
	runner  *session.Runner
	updates chan session.Snapshot
	done    chan struct{}

	snap    session.Snapshot
	itemKey itemKey
	spinner spinner.Model
	choice  components.MultiChoice
	input   components.TextInput

	confirmQuit bool
	summarized  string // session ID whose summary was already shown
	err         error
	closed      bool
}

type itemKey struct {
	sessionID string
	index     int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.BackInterceptor = (*Screen)(nil)
var _ screen.Closer = (*Screen)(nil)

// New creates a study screen for cfg. The runner is created immediately;
// generation begins on Init.
func New(deps Deps, cfg session.Config) *Screen {
	s := &Screen{
		cfg:     cfg,
		updates: make(chan session.Snapshot, 1),
		done:    make(chan struct{}),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		input:   components.NewTextInput("Type your answer...", 500),
		snap:    session.Snapshot{Config: cfg},
	}

	opts := []session.RunnerOption{
		session.WithObserver(s.publish),
	}
	if deps.Sink != nil {
		opts = append(opts, session.WithResultSink(deps.Sink))
	}
	if deps.Logger != nil {
		opts = append(opts, session.WithLogger(deps.Logger))
	}
	if deps.Clock != nil {
		opts = append(opts, session.WithRunnerClock(deps.Clock))
	}

	runner, err := session.NewRunner(cfg, deps.Generator, opts...)
	if err != nil {
		s.err = err
		return s
	}
	s.runner = runner
	return s
}

func (s *Screen) Init() tea.Cmd {
	if s.runner == nil {
		return nil
	}
	return tea.Batch(
		s.start(),
		s.listen(),
		s.spinner.Tick,
		s.input.Init(),
	)
}

func (s *Screen) Title() string {
	return s.cfg.Mode.Label()
}

// InterceptBack keeps Esc on this screen so an active session asks first.
func (s *Screen) InterceptBack() bool {
	return true
}

// Close stops the runner. Pending generation results are dropped.
func (s *Screen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	if s.runner != nil {
		s.runner.Close()
	}
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch {
	case s.err != nil || s.snap.Err != nil:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case s.snap.Status != session.StatusActive:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}

	var hints []layout.KeyHint
	switch s.cfg.Mode {
	case session.ModeFlashcard:
		hints = []layout.KeyHint{
			{Key: "Space", Description: "Reveal"},
			{Key: "Enter", Description: "Next"},
		}
	case session.ModeMultipleChoice:
		hints = []layout.KeyHint{
			{Key: "A-E", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Select"},
		}
	case session.ModeTyping:
		hints = []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+E", Description: "End"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		return s.handleSnapshot(session.Snapshot(msg))

	case startFailedMsg:
		s.err = msg.Err
		return s, nil

	case summary.RetryMsg:
		s.retry()
		return s, nil

	case spinner.TickMsg:
		if s.snap.Status != session.StatusGenerating && s.snap.Status != session.StatusConfiguring {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.typingActive() {
		return s.updateInput(msg)
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	if s.err != nil {
		return renderError(width, s.err)
	}
	switch s.snap.Status {
	case session.StatusConfiguring:
		if s.snap.Err != nil {
			return renderError(width, s.snap.Err)
		}
		return s.renderLoading(width)
	case session.StatusGenerating:
		return s.renderLoading(width)
	case session.StatusComplete:
		return renderComplete(width)
	}

	switch s.cfg.Mode {
	case session.ModeFlashcard:
		return s.renderFlashcard(width)
	case session.ModeMultipleChoice:
		return s.renderMultipleChoice(width)
	default:
		return s.renderTyping(width)
	}
}

// publish is the runner observer. It runs on the runner goroutine and must
// not block, so only the newest snapshot is kept.
func (s *Screen) publish(snap session.Snapshot) {
	for {
		select {
		case s.updates <- snap:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}

// listen waits for the next snapshot.
func (s *Screen) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-s.done:
			return nil
		default:
		}
		select {
		case snap := <-s.updates:
			return snapshotMsg(snap)
		case <-s.done:
			return nil
		}
	}
}

func (s *Screen) start() tea.Cmd {
	runner := s.runner
	return func() tea.Msg {
		if err := runner.Start(); err != nil {
			return startFailedMsg{Err: err}
		}
		return nil
	}
}

func (s *Screen) retry() {
	if s.runner == nil {
		return
	}
	s.err = nil
	s.confirmQuit = false
	s.runner.Restart()
}

func (s *Screen) handleSnapshot(snap session.Snapshot) (screen.Screen, tea.Cmd) {
	s.snap = snap
	cmds := []tea.Cmd{s.listen()}

	key := itemKey{sessionID: snap.SessionID, index: snap.Index}
	if snap.Status == session.StatusActive && key != s.itemKey {
		s.itemKey = key
		if q := snap.CurrentQuestion(); q != nil {
			s.choice = components.NewMultiChoice(q.Options)
		}
		if s.cfg.Mode == session.ModeTyping {
			s.input.Reset()
			if a, ok := snap.Answer(snap.Index); ok {
				s.input.Model.SetValue(a)
			}
		}
	}

	switch snap.Status {
	case session.StatusGenerating:
		cmds = append(cmds, s.spinner.Tick)
	case session.StatusComplete:
		s.confirmQuit = false
		if snap.Result != nil && s.summarized != snap.SessionID {
			s.summarized = snap.SessionID
			res := *snap.Result
			cmds = append(cmds, func() tea.Msg {
				return router.PushScreenMsg{Screen: summary.New(res)}
			})
		}
	}
	return s, tea.Batch(cmds...)
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, popCmd
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.err == nil && s.snap.Status == session.StatusActive {
			s.confirmQuit = true
			return s, nil
		}
		return s, popCmd
	}

	if s.err != nil || (s.snap.Status == session.StatusConfiguring && s.snap.Err != nil) {
		if key == "r" || key == "R" {
			s.retry()
		}
		return s, nil
	}

	if s.snap.Status != session.StatusActive || s.runner == nil {
		return s, nil
	}

	if key == "ctrl+e" {
		s.runner.End()
		return s, nil
	}

	switch s.cfg.Mode {
	case session.ModeFlashcard:
		switch key {
		case "space", " ":
			s.runner.Do(session.Reveal{})
		case "enter", "n":
			s.runner.Do(session.Next{})
		}
		return s, nil

	case session.ModeMultipleChoice:
		if _, answered := s.snap.Answer(s.snap.Index); answered {
			return s, nil
		}
		switch key {
		case "a", "b", "c", "d", "e", "A", "B", "C", "D", "E":
			s.runner.Do(session.Select{Letter: key})
			return s, nil
		case "enter":
			if letter := s.choice.CursorLetter(); letter != "" {
				s.runner.Do(session.Select{Letter: letter})
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd

	case session.ModeTyping:
		if key == "enter" {
			if s.runner.Do(session.Next{}) {
				s.input.Reset()
			}
			return s, nil
		}
		return s.updateInput(msg)
	}
	return s, nil
}

func (s *Screen) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if after := s.input.Value(); after != before {
		s.runner.Do(session.Type{Text: after})
	}
	return s, cmd
}

func (s *Screen) typingActive() bool {
	return s.runner != nil &&
		s.cfg.Mode == session.ModeTyping &&
		s.snap.Status == session.StatusActive &&
		!s.confirmQuit
}

func popCmd() tea.Msg {
	return router.PopScreenMsg{}
}
