package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var studySessionColumns = []string{
	"id", "user_id", "exam_registration_id", "mode", "difficulty",
	"score", "total_questions", "time_spent", "created_at",
}

// studySessionRepo implements StudySessionRepo. It only ever inserts.
type studySessionRepo struct {
	db *sql.DB
}

func (r *studySessionRepo) Insert(ctx context.Context, s *StudySession) error {
	if err := validateRecord(tableStudySessions, s); err != nil {
		return err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	query, args := builder().Insert(tableStudySessions).
		Columns(studySessionColumns...).
		Values(s.ID, s.UserID, s.RegistrationID, s.Mode, s.Difficulty,
			s.Score, s.TotalQuestions, s.TimeSpent, s.CreatedAt).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return &PersistenceError{Table: tableStudySessions, Err: err}
	}
	return nil
}

func (r *studySessionRepo) Recent(ctx context.Context, registrationID string, limit int) ([]StudySession, error) {
	sel := builder().Select(studySessionColumns...).
		From(entsql.Table(tableStudySessions)).
		Where(entsql.EQ("exam_registration_id", registrationID)).
		OrderBy(entsql.Desc("created_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query study sessions: %w", err)
	}
	defer rows.Close()

	var out []StudySession
	for rows.Next() {
		var s StudySession
		if err := rows.Scan(&s.ID, &s.UserID, &s.RegistrationID, &s.Mode, &s.Difficulty,
			&s.Score, &s.TotalQuestions, &s.TimeSpent, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan study session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
