package store

import (
	"context"
	"time"
)

// PaymentStatus tracks whether a registration has been paid for.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Registration is one user's registration for a licensure exam.
type Registration struct {
	ID            string
	UserID        string    `validate:"required"`
	Category      string    `validate:"required"`
	ExamType      string    `validate:"required"`
	State         string    `validate:"required"`
	ExamDate      time.Time `validate:"required"`
	PaymentStatus PaymentStatus
	PaymentID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Paid reports whether the registration unlocks study sessions.
func (r Registration) Paid() bool {
	return r.PaymentStatus == PaymentCompleted
}

// RegistrationRepo manages exam registrations.
type RegistrationRepo interface {
	// Create inserts a new registration. Empty ID and timestamps are filled
	// in; an empty PaymentStatus becomes pending.
	Create(ctx context.Context, r *Registration) error

	// Get returns the user's registration with the given ID, or ErrNotFound.
	Get(ctx context.Context, userID, id string) (*Registration, error)

	// LatestPaid returns the user's newest registration with a completed
	// payment, or ErrNotFound.
	LatestPaid(ctx context.Context, userID string) (*Registration, error)

	// List returns all of the user's registrations, newest first.
	List(ctx context.Context, userID string) ([]Registration, error)

	// MarkPaid records a completed payment for the registration.
	MarkPaid(ctx context.Context, id, paymentID string) error
}

// StudySession is the persisted record of one completed study session.
type StudySession struct {
	ID             string
	UserID         string `validate:"required"`
	RegistrationID string `validate:"required"`
	Mode           string `validate:"required,oneof=flashcard multiple_choice typing"`
	Difficulty     string `validate:"required,oneof=easy medium hard"`
	Score          int    `validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int    `validate:"gt=0"`
	TimeSpent      int    `validate:"gte=0"`
	CreatedAt      time.Time
}

// StudySessionRepo stores completed study sessions. Records are never updated.
type StudySessionRepo interface {
	// Insert persists a session record. Invalid records are rejected with
	// *PersistenceError.
	Insert(ctx context.Context, s *StudySession) error

	// Recent returns up to limit sessions for the registration, newest first.
	Recent(ctx context.Context, registrationID string, limit int) ([]StudySession, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage per purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage per model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event by ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage by purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage by model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
