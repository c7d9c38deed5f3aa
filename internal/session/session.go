package session

import (
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/licensure/examprep/internal/questiongen"
)

var (
	// ErrNotConfiguring is returned when generation is requested for a
	// session that is not waiting for it.
	ErrNotConfiguring = errors.New("session: not in configuring state")

	// ErrNotGenerating is returned when a batch arrives for a session that
	// has no generation in flight.
	ErrNotGenerating = errors.New("session: not in generating state")
)

// Session is one study session. It is a plain state machine: it is not
// safe for concurrent use and owns no goroutines. Runner serializes
// access to it.
type Session struct {
	id       string
	cfg      Config
	params   modeParams
	strategy Strategy
	clock    Clock
	opts     []Option

	status    Status
	items     []questiongen.Item
	index     int
	revealed  bool
	answers   map[int]string
	score     int
	remaining int
	feedback  int // ticks left before a graded MC answer advances
	rephase   bool // a countdown restarted and needs a fresh tick cycle
	startedAt time.Time
	endedAt   time.Time
	result    *Result
	err       error
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used for start and end times.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// New creates a session in the configuring state.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, _ := ParseMode(string(cfg.Mode))
	cfg.Mode = mode
	return newSession(cfg, opts), nil
}

func newSession(cfg Config, opts []Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		cfg:      cfg,
		params:   paramsFor(cfg.Mode),
		strategy: strategyFor(cfg.Mode),
		clock:    RealClock(),
		opts:     opts,
		status:   StatusConfiguring,
		answers:  make(map[int]string),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ID returns the session's unique identity.
func (s *Session) ID() string { return s.id }

// Config returns the session's setup.
func (s *Session) Config() Config { return s.cfg }

// Status returns the lifecycle phase.
func (s *Session) Status() Status { return s.status }

// BeginGeneration moves a configuring session to generating and returns
// the request to send to the generator.
func (s *Session) BeginGeneration() (questiongen.Request, error) {
	if s.status != StatusConfiguring {
		return questiongen.Request{}, ErrNotConfiguring
	}
	s.status = StatusGenerating
	s.err = nil
	return questiongen.Request{
		ExamType:   s.cfg.ExamType,
		Category:   s.cfg.Category,
		Difficulty: string(s.cfg.Difficulty),
		Count:      s.params.count,
		Kind:       s.params.kind,
	}, nil
}

// Activate accepts a generated batch. The batch is validated as a whole;
// on failure the session returns to configuring and keeps the error.
func (s *Session) Activate(items []questiongen.Item) error {
	if s.status != StatusGenerating {
		return ErrNotGenerating
	}
	spec := questiongen.BatchSpec{
		Kind:           s.params.kind,
		Count:          s.params.count,
		RequireOptions: s.cfg.Mode == ModeMultipleChoice,
	}
	if err := questiongen.ValidateBatch(items, spec); err != nil {
		s.status = StatusConfiguring
		s.err = err
		return err
	}

	s.items = slices.Clone(items)
	s.index = 0
	s.revealed = false
	s.answers = make(map[int]string)
	s.score = 0
	s.remaining = s.params.countdown
	s.feedback = 0
	s.rephase = false
	s.startedAt = s.clock.Now()
	s.status = StatusActive
	return nil
}

// FailGeneration records a generation failure and returns the session to
// configuring. It reports whether the session was generating.
func (s *Session) FailGeneration(err error) bool {
	if s.status != StatusGenerating {
		return false
	}
	s.status = StatusConfiguring
	s.err = err
	return true
}

// Tick applies one second of elapsed time. Ticks outside the active state
// are ignored.
func (s *Session) Tick() bool {
	if s.status != StatusActive {
		return false
	}
	s.strategy.OnTick(s)
	s.checkComplete()
	return true
}

// Act applies a user action and reports whether it changed anything.
// Actions the current mode does not accept are ignored.
func (s *Session) Act(a Action) bool {
	if s.status != StatusActive {
		return false
	}
	changed := s.strategy.OnUserAction(s, a)
	s.checkComplete()
	return changed
}

// Advance moves to the next item, completing the session after the last.
func (s *Session) Advance() bool {
	if s.status != StatusActive {
		return false
	}
	s.advance()
	return true
}

// End completes an active session early.
func (s *Session) End() bool {
	if s.status != StatusActive {
		return false
	}
	s.complete()
	return true
}

// Result returns the result once the session is complete.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Restart returns a fresh configuring session with the same config and
// a new identity.
func (s *Session) Restart() *Session {
	return newSession(s.cfg, s.opts)
}

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:        s.id,
		Config:           s.cfg,
		Status:           s.status,
		Items:            slices.Clone(s.items),
		Index:            s.index,
		Revealed:         s.revealed,
		Answers:          maps.Clone(s.answers),
		Score:            s.score,
		RemainingSeconds: s.remaining,
		Timed:            s.params.timed,
		FeedbackPending:  s.feedback > 0,
		StartedAt:        s.startedAt,
		EndedAt:          s.endedAt,
		Err:              s.err,
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}

func (s *Session) current() questiongen.Item {
	return s.items[s.index]
}

func (s *Session) answered() bool {
	_, ok := s.answers[s.index]
	return ok
}

func (s *Session) record(answer string) {
	s.answers[s.index] = answer
}

func (s *Session) addPoint() {
	s.score++
}

func (s *Session) reveal() bool {
	if s.revealed {
		return false
	}
	s.revealed = true
	return true
}

func (s *Session) advance() {
	if s.index >= len(s.items)-1 {
		s.complete()
		return
	}
	s.index++
	s.revealed = false
	s.feedback = 0
	if s.cfg.Mode == ModeFlashcard {
		s.remaining = FlashcardSeconds
		s.rephase = true
	}
}

// startFeedback opens the multiple-choice feedback window.
func (s *Session) startFeedback() {
	s.feedback = FeedbackTicks
	s.rephase = true
}

// takeRephase reports and clears whether a countdown was reset since the
// last call. The tick source must restart its cycle at that moment for the
// countdown to last whole seconds.
func (s *Session) takeRephase() bool {
	r := s.rephase
	s.rephase = false
	return r
}

func (s *Session) checkComplete() {
	if s.status == StatusActive && s.strategy.IsComplete(s) {
		s.complete()
	}
}

func (s *Session) complete() {
	s.status = StatusComplete
	s.feedback = 0
	s.endedAt = s.clock.Now()
	r := BuildResult(s.Snapshot())
	s.result = &r
}
