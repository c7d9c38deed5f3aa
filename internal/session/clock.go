package session

import (
	"sync"
	"time"
)

// Clock is the time source for sessions and timers.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks on C until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// ManualClock is a Clock that only moves when Advance is called. Ticks are
// delivered synchronously: Advance returns once every due tick has been
// received or its ticker stopped.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManualClock returns a ManualClock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{
		c:      make(chan time.Time),
		done:   make(chan struct{}),
		period: d,
		next:   c.now.Add(d),
	}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance moves the clock forward by d, firing due ticks in time order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now.Add(d)
	c.mu.Unlock()

	for {
		t, at := c.nextDue(end)
		if t == nil {
			break
		}
		select {
		case t.c <- at:
		case <-t.done:
		}
	}

	c.mu.Lock()
	c.now = end
	c.mu.Unlock()
}

// nextDue finds the live ticker with the earliest tick at or before end,
// moves the clock to that tick and schedules the ticker's following one.
func (c *ManualClock) nextDue(end time.Time) (*manualTicker, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.tickers[:0]
	for _, t := range c.tickers {
		if !t.stopped() {
			live = append(live, t)
		}
	}
	c.tickers = live

	var due *manualTicker
	for _, t := range c.tickers {
		if t.next.After(end) {
			continue
		}
		if due == nil || t.next.Before(due.next) {
			due = t
		}
	}
	if due == nil {
		return nil, time.Time{}
	}
	at := due.next
	due.next = at.Add(due.period)
	c.now = at
	return due, at
}

type manualTicker struct {
	c      chan time.Time
	done   chan struct{}
	once   sync.Once
	period time.Duration
	next   time.Time
}

func (t *manualTicker) C() <-chan time.Time { return t.c }

func (t *manualTicker) Stop() {
	t.once.Do(func() { close(t.done) })
}

func (t *manualTicker) stopped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
