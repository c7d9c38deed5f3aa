package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/licensure/examprep/internal/questiongen"
)

// ResultSink persists completed session results.
type ResultSink interface {
	SaveResult(ctx context.Context, r Result) error
}

// ResultSinkFunc adapts a function to ResultSink.
type ResultSinkFunc func(ctx context.Context, r Result) error

func (f ResultSinkFunc) SaveResult(ctx context.Context, r Result) error { return f(ctx, r) }

// Observer receives a snapshot after every applied event. Observers run on
// the runner's goroutine and must not call back into the Runner.
type Observer func(Snapshot)

// Runner owns a session and applies ticks, user actions, generation
// results and lifecycle requests to it one at a time, in arrival order.
// Its methods are safe for concurrent use.
type Runner struct {
	gen         questiongen.Generator
	clock       Clock
	sink        ResultSink
	sinkTimeout time.Duration
	logger      *slog.Logger
	observers   []Observer

	events    chan event
	done      chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	saves     sync.WaitGroup

	mu   sync.Mutex
	last Snapshot

	// Owned by the loop goroutine.
	session   *Session
	timer     *Timer
	cancelGen context.CancelFunc
	delivered bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerClock sets the clock for the session and its timer.
func WithRunnerClock(c Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}

// WithResultSink sets where completed results are saved.
func WithResultSink(s ResultSink) RunnerOption {
	return func(r *Runner) { r.sink = s }
}

// WithObserver adds a snapshot observer.
func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

type event interface{}

type startEvent struct{ reply chan error }

type restartEvent struct{ reply chan string }

type actionEvent struct {
	action Action
	reply  chan bool
}

type endEvent struct{ reply chan bool }

type snapshotEvent struct{ reply chan Snapshot }

type closeEvent struct{}

type generated struct {
	sessionID string
	items     []questiongen.Item
	err       error
}

// NewRunner creates a session for cfg and starts the runner's loop. The
// session stays configuring until Start is called.
func NewRunner(cfg Config, gen questiongen.Generator, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		gen:         gen,
		clock:       RealClock(),
		sinkTimeout: 5 * time.Second,
		events:      make(chan event),
		done:        make(chan struct{}),
	}
	for _, o := range opts {
		o(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	s, err := New(cfg, WithClock(r.clock))
	if err != nil {
		return nil, err
	}
	r.session = s
	r.timer = NewTimer(r.clock, TickInterval)
	r.last = s.Snapshot()
	r.ctx, r.cancel = context.WithCancel(context.Background())

	go r.loop()
	return r, nil
}

// Start requests generation for a configuring session.
func (r *Runner) Start() error {
	reply := make(chan error, 1)
	if !r.send(startEvent{reply}) {
		return ErrNotConfiguring
	}
	return <-reply
}

// Restart replaces the session with a fresh one using the same config and
// starts generation for it. It returns the new session ID.
func (r *Runner) Restart() string {
	reply := make(chan string, 1)
	if !r.send(restartEvent{reply}) {
		return ""
	}
	return <-reply
}

// Do applies a user action and reports whether it was accepted.
func (r *Runner) Do(a Action) bool {
	reply := make(chan bool, 1)
	if !r.send(actionEvent{action: a, reply: reply}) {
		return false
	}
	return <-reply
}

// End completes the active session early.
func (r *Runner) End() bool {
	reply := make(chan bool, 1)
	if !r.send(endEvent{reply}) {
		return false
	}
	return <-reply
}

// Snapshot returns the current state. After Close it returns the last
// state the loop published.
func (r *Runner) Snapshot() Snapshot {
	reply := make(chan Snapshot, 1)
	if r.send(snapshotEvent{reply}) {
		return <-reply
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Close stops the timer, abandons any generation in flight and waits for
// pending result saves. It is safe to call more than once.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		r.send(closeEvent{})
		<-r.done
	})
	r.saves.Wait()
}

// send hands ev to the loop. The events channel is unbuffered, so a
// successful send means the loop has taken ev and will reply to it.
func (r *Runner) send(ev event) bool {
	select {
	case r.events <- ev:
		return true
	case <-r.done:
		return false
	}
}

func (r *Runner) loop() {
	defer close(r.done)
	for {
		select {
		case ev := <-r.events:
			changed, stop := r.handle(ev)
			if stop {
				return
			}
			if changed {
				r.settle()
			}
		case <-r.timer.C():
			if r.timer.SessionID() != r.session.ID() {
				continue
			}
			if r.session.Tick() {
				// Resets made by a tick already fall on the cycle.
				r.session.takeRephase()
				r.settle()
			}
		}
	}
}

func (r *Runner) handle(ev event) (changed, stop bool) {
	switch ev := ev.(type) {
	case startEvent:
		err := r.begin()
		ev.reply <- err
		return err == nil, false

	case restartEvent:
		r.abandon()
		r.session = r.session.Restart()
		r.delivered = false
		if err := r.begin(); err != nil {
			r.logger.Error("restarting session", "error", err)
		}
		ev.reply <- r.session.ID()
		return true, false

	case actionEvent:
		ok := r.session.Act(ev.action)
		// Restart the cycle before replying so no tick of the old phase
		// can reach the new countdown.
		if r.session.takeRephase() && r.session.Status() == StatusActive {
			r.timer.Start(r.session.ID())
		}
		ev.reply <- ok
		return ok, false

	case endEvent:
		ok := r.session.End()
		ev.reply <- ok
		return ok, false

	case snapshotEvent:
		ev.reply <- r.session.Snapshot()
		return false, false

	case generated:
		return r.accept(ev), false

	case closeEvent:
		r.abandon()
		r.cancel()
		r.mu.Lock()
		r.last = r.session.Snapshot()
		r.mu.Unlock()
		return false, true
	}
	return false, false
}

// begin starts the single generation call for the current session.
func (r *Runner) begin() error {
	req, err := r.session.BeginGeneration()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(r.ctx)
	r.cancelGen = cancel
	id := r.session.ID()
	r.logger.Info("generating study items",
		"session", id,
		"exam", req.ExamType,
		"kind", req.Kind.String(),
		"count", req.Count,
	)

	go func() {
		defer cancel()
		items, err := r.gen.Generate(ctx, req)
		r.send(generated{sessionID: id, items: items, err: err})
	}()
	return nil
}

// accept applies a generation result if it still belongs to the current
// session. Results for replaced sessions are dropped.
func (r *Runner) accept(ev generated) bool {
	if ev.sessionID != r.session.ID() || r.session.Status() != StatusGenerating {
		r.logger.Debug("dropping stale generation result", "session", ev.sessionID)
		return false
	}
	r.cancelGen = nil

	if ev.err != nil {
		r.session.FailGeneration(ev.err)
		r.logger.Warn("generation failed", "session", ev.sessionID, "error", ev.err)
		return true
	}
	if err := r.session.Activate(ev.items); err != nil {
		r.logger.Warn("rejected generated batch", "session", ev.sessionID, "error", err)
		return true
	}
	r.timer.Start(r.session.ID())
	return true
}

// abandon stops the timer and cancels generation for the current session.
func (r *Runner) abandon() {
	r.timer.Stop()
	if r.cancelGen != nil {
		r.cancelGen()
		r.cancelGen = nil
	}
}

// settle stops the timer outside the active state, hands a fresh result to
// the sink and publishes a snapshot.
func (r *Runner) settle() {
	if r.session.Status() != StatusActive {
		r.timer.Stop()
	}
	if res, ok := r.session.Result(); ok && !r.delivered {
		r.delivered = true
		r.save(res)
	}

	snap := r.session.Snapshot()
	r.mu.Lock()
	r.last = snap
	r.mu.Unlock()
	for _, o := range r.observers {
		o(snap)
	}
}

// save persists res in the background. Failures are logged and never
// affect the session.
func (r *Runner) save(res Result) {
	if r.sink == nil {
		return
	}
	r.saves.Add(1)
	go func() {
		defer r.saves.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.sinkTimeout)
		defer cancel()
		if err := r.sink.SaveResult(ctx, res); err != nil {
			r.logger.Error("saving session result", "session", res.SessionID, "error", err)
			return
		}
		r.logger.Info("saved session result",
			"session", res.SessionID,
			"score", res.Score,
			"total", res.TotalQuestions,
		)
	}()
}
