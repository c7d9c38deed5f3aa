package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StudySession is the immutable record of one completed study session.
// Rows are inserted once and never updated.
type StudySession struct {
	ent.Schema
}

func (StudySession) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("UUID"),
		field.String("user_id").
			Immutable(),
		field.String("exam_registration_id").
			Immutable().
			Comment("References exam_registrations.id"),
		field.String("mode").
			Immutable().
			Comment("flashcard, multiple_choice or typing"),
		field.String("difficulty").
			Immutable(),
		field.Int("score").
			Immutable(),
		field.Int("total_questions").
			Immutable(),
		field.Int("time_spent").
			Immutable().
			Comment("Seconds"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (StudySession) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("exam_registration_id", "created_at"),
		index.Fields("user_id"),
	}
}
