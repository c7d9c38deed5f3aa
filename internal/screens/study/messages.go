package study

import "github.com/licensure/examprep/internal/session"

// snapshotMsg carries the latest runner state into the Bubble Tea loop.
type snapshotMsg session.Snapshot

// startFailedMsg is sent when the runner refuses to start.
type startFailedMsg struct {
	Err error
}
