// Package catalog holds the static list of exam categories, exams and
// US states a registration can name.
package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Category groups related licensing exams.
type Category struct {
	ID    string
	Name  string
	Exams []string
}

// HasExam reports whether exam belongs to the category. Matching ignores
// case and surrounding space.
func (c Category) HasExam(exam string) bool {
	_, ok := c.exam(exam)
	return ok
}

func (c Category) exam(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, e := range c.Exams {
		if strings.EqualFold(e, name) {
			return e, true
		}
	}
	return "", false
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Exams = slices.Clone(c.Exams)
		out[i] = c
	}
	return out
}

// Lookup returns the category with the given ID.
func Lookup(id string) (Category, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, c := range categories {
		if c.ID == id {
			c.Exams = slices.Clone(c.Exams)
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("unknown exam category %q", id)
}

// HasExam reports whether categoryID exists and lists exam.
func HasExam(categoryID, exam string) bool {
	c, err := Lookup(categoryID)
	return err == nil && c.HasExam(exam)
}

// CanonicalExam returns the catalog spelling of exam within categoryID.
func CanonicalExam(categoryID, exam string) (string, error) {
	c, err := Lookup(categoryID)
	if err != nil {
		return "", err
	}
	name, ok := c.exam(exam)
	if !ok {
		return "", fmt.Errorf("exam %q is not offered in category %q", exam, c.ID)
	}
	return name, nil
}

// States returns the US state names in alphabetical order.
func States() []string {
	return slices.Clone(usStates)
}

// CanonicalState returns the catalog spelling of a state name.
func CanonicalState(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, s := range usStates {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}

// IsState reports whether name is a US state.
func IsState(name string) bool {
	_, ok := CanonicalState(name)
	return ok
}
