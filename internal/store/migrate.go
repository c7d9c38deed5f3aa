package store

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/licensure/examprep/ent/schema"
)

const (
	tableRegistrations = "exam_registrations"
	tableStudySessions = "study_sessions"
	tableLLMEvents     = "llm_request_events"
)

// migrate creates or updates every table declared in ent/schema.
func migrate(ctx context.Context, db *sql.DB) error {
	tables, err := migrationTables()
	if err != nil {
		return err
	}

	m, err := schema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// migrationTables builds the migration tables from the ent schema
// declarations, adding the study_sessions -> exam_registrations foreign key.
func migrationTables() ([]*schema.Table, error) {
	registrations, err := tableFor(tableRegistrations, entschema.ExamRegistration{})
	if err != nil {
		return nil, err
	}
	sessions, err := tableFor(tableStudySessions, entschema.StudySession{})
	if err != nil {
		return nil, err
	}
	events, err := tableFor(tableLLMEvents, entschema.LLMRequestEvent{})
	if err != nil {
		return nil, err
	}

	regCol, ok := sessions.Column("exam_registration_id")
	if !ok {
		return nil, fmt.Errorf("%s: missing exam_registration_id column", tableStudySessions)
	}
	sessions.ForeignKeys = []*schema.ForeignKey{{
		Symbol:     "study_sessions_exam_registrations_study_sessions",
		Columns:    []*schema.Column{regCol},
		RefTable:   registrations,
		RefColumns: registrations.PrimaryKey,
		OnDelete:   schema.Cascade,
	}}

	return []*schema.Table{registrations, sessions, events}, nil
}

// tableFor converts an ent schema (plus its mixins) into a migration table.
// A field named "id" becomes the primary key; otherwise an integer
// auto-increment id is added.
func tableFor(name string, s ent.Interface) (*schema.Table, error) {
	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := &schema.Table{Name: name}
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
		}
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			col.Default = d.Default
		}
		if d.Name == "id" {
			t.PrimaryKey = []*schema.Column{col}
			col.Unique = false
		}
		t.Columns = append(t.Columns, col)
	}

	if len(t.PrimaryKey) == 0 {
		id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
		t.Columns = append([]*schema.Column{id}, t.Columns...)
		t.PrimaryKey = []*schema.Column{id}
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		si := &schema.Index{
			Name:   strings.ToLower(name + "_" + strings.Join(d.Fields, "_")),
			Unique: d.Unique,
		}
		for _, fname := range d.Fields {
			col, ok := t.Column(fname)
			if !ok {
				return nil, fmt.Errorf("%s: index on unknown column %q", name, fname)
			}
			si.Columns = append(si.Columns, col)
		}
		t.Indexes = append(t.Indexes, si)
	}

	return t, nil
}
