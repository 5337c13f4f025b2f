package models

import (
	"strings"
	"time"
)

// EntryFilter is a conjunction of optional criteria.
// Zero values / nil pointers mean the criterion is not applied.
// Text containment is case-sensitive.
type EntryFilter struct {
	EmployeeContains string
	Employee         *string
	Term             string // matched against task or notes
	Date             string // DD-MM-YYYY
	From             *time.Time
	To               *time.Time
	Duration         *int
}

// Match reports whether e satisfies every criterion set on f
func (f EntryFilter) Match(e Entry) bool {
	if f.EmployeeContains != "" && !strings.Contains(e.Employee, f.EmployeeContains) {
		return false
	}
	if f.Employee != nil && e.Employee != *f.Employee {
		return false
	}
	if f.Term != "" {
		inTask := strings.Contains(e.Task, f.Term)
		inNotes := strings.Contains(e.Notes, f.Term)
		if !inTask && !inNotes {
			return false
		}
	}
	if f.Date != "" && e.DateString() != f.Date {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	if f.Duration != nil && e.Duration != *f.Duration {
		return false
	}
	return true
}

// Apply returns the entries matching f, preserving order
func (f EntryFilter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
