package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var registrationColumns = []string{
	"id", "user_id", "exam_category", "exam_type", "state", "exam_date",
	"payment_status", "payment_id", "created_at", "updated_at",
}

// registrationRepo implements RegistrationRepo with ent's SQL builder.
type registrationRepo struct {
	db *sql.DB
}

func (r *registrationRepo) Create(ctx context.Context, reg *Registration) error {
	if err := validateRecord(tableRegistrations, reg); err != nil {
		return err
	}
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	if reg.PaymentStatus == "" {
		reg.PaymentStatus = PaymentPending
	}
	now := time.Now().UTC()
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = now
	}
	reg.UpdatedAt = reg.CreatedAt

	query, args := builder().Insert(tableRegistrations).
		Columns(registrationColumns...).
		Values(reg.ID, reg.UserID, reg.Category, reg.ExamType, reg.State, reg.ExamDate.UTC(),
			string(reg.PaymentStatus), reg.PaymentID, reg.CreatedAt, reg.UpdatedAt).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return &PersistenceError{Table: tableRegistrations, Err: err}
	}
	return nil
}

func (r *registrationRepo) Get(ctx context.Context, userID, id string) (*Registration, error) {
	query, args := builder().Select(registrationColumns...).
		From(entsql.Table(tableRegistrations)).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("user_id", userID))).
		Query()
	return r.one(ctx, query, args)
}

func (r *registrationRepo) LatestPaid(ctx context.Context, userID string) (*Registration, error) {
	query, args := builder().Select(registrationColumns...).
		From(entsql.Table(tableRegistrations)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("payment_status", string(PaymentCompleted)),
		)).
		OrderBy(entsql.Desc("created_at")).
		Limit(1).
		Query()
	return r.one(ctx, query, args)
}

func (r *registrationRepo) List(ctx context.Context, userID string) ([]Registration, error) {
	query, args := builder().Select(registrationColumns...).
		From(entsql.Table(tableRegistrations)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("created_at")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	defer rows.Close()

	var out []Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *reg)
	}
	return out, rows.Err()
}

func (r *registrationRepo) MarkPaid(ctx context.Context, id, paymentID string) error {
	query, args := builder().Update(tableRegistrations).
		Set("payment_status", string(PaymentCompleted)).
		Set("payment_id", paymentID).
		Set("updated_at", time.Now().UTC()).
		Where(entsql.EQ("id", id)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return &PersistenceError{Table: tableRegistrations, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("registration %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *registrationRepo) one(ctx context.Context, query string, args []any) (*Registration, error) {
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return reg, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*Registration, error) {
	var reg Registration
	var status string
	err := row.Scan(&reg.ID, &reg.UserID, &reg.Category, &reg.ExamType, &reg.State, &reg.ExamDate,
		&status, &reg.PaymentID, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	reg.PaymentStatus = PaymentStatus(status)
	return &reg, nil
}
