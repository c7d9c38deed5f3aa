package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ExamRegistration is a user's registration for one licensure exam.
// Only registrations with a completed payment unlock study sessions.
type ExamRegistration struct {
	ent.Schema
}

func (ExamRegistration) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("UUID"),
		field.String("user_id").
			Comment("Owner of the registration"),
		field.String("exam_category").
			Comment("Catalog category: medical, legal, engineering, ..."),
		field.String("exam_type").
			Comment("Exam name within the category, e.g. NCLEX-RN"),
		field.String("state").
			Comment("US state the exam is taken in"),
		field.Time("exam_date").
			Comment("Scheduled exam date (UTC midnight)"),
		field.String("payment_status").
			Default("pending").
			Comment("pending or completed"),
		field.String("payment_id").
			Default("").
			Comment("Payment processor reference"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now),
	}
}

func (ExamRegistration) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "payment_status"),
		index.Fields("created_at"),
	}
}
