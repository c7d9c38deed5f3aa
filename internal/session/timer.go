package session

import "time"

// Timer drives ticks for one session at a time. Each run is bound to the
// session ID it was started for so a tick can be checked against the
// session it is applied to. Timer is owned by a single goroutine.
type Timer struct {
	clock     Clock
	interval  time.Duration
	ticker    Ticker
	sessionID string
}

// NewTimer returns a stopped timer.
func NewTimer(clock Clock, interval time.Duration) *Timer {
	return &Timer{clock: clock, interval: interval}
}

// Start begins ticking for sessionID, stopping any previous run.
func (t *Timer) Start(sessionID string) {
	t.Stop()
	t.ticker = t.clock.NewTicker(t.interval)
	t.sessionID = sessionID
}

// Stop halts the current run. It is safe to call on a stopped timer.
func (t *Timer) Stop() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	t.ticker = nil
	t.sessionID = ""
}

// C returns the tick channel, or nil when stopped. A nil channel blocks
// forever in a select.
func (t *Timer) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C()
}

// SessionID returns the session the current run belongs to.
func (t *Timer) SessionID() string { return t.sessionID }

// Running reports whether the timer is ticking.
func (t *Timer) Running() bool { return t.ticker != nil }
