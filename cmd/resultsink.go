package cmd

import (
	"context"

	"github.com/licensure/examprep/internal/session"
	"github.com/licensure/examprep/internal/store"
)

// resultSink persists completed sessions as study_sessions rows for one
// user and registration.
type resultSink struct {
	repo           store.StudySessionRepo
	userID         string
	registrationID string
}

var _ session.ResultSink = (*resultSink)(nil)

func newResultSink(repo store.StudySessionRepo, userID, registrationID string) *resultSink {
	return &resultSink{repo: repo, userID: userID, registrationID: registrationID}
}

func (s *resultSink) SaveResult(ctx context.Context, r session.Result) error {
	rec := studySessionRecord(r, s.userID, s.registrationID)
	return s.repo.Insert(ctx, &rec)
}

func studySessionRecord(r session.Result, userID, registrationID string) store.StudySession {
	return store.StudySession{
		ID:             r.SessionID,
		UserID:         userID,
		RegistrationID: registrationID,
		Mode:           string(r.Mode),
		Difficulty:     string(r.Difficulty),
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		TimeSpent:      r.TimeSpent,
		CreatedAt:      r.CompletedAt,
	}
}
