package query

import (
	"errors"
	"time"

	"github.com/tgienger/worklog/internal/models"
)

// ErrRangeOrder is returned by ByDateRange when start falls after end.
var ErrRangeOrder = errors.New("the start date cannot be after the end date")

// ByEmployeeContains keeps entries whose employee contains substr (case-sensitive)
func ByEmployeeContains(entries []models.Entry, substr string) []models.Entry {
	return models.EntryFilter{EmployeeContains: substr}.Apply(entries)
}

// ByEmployee keeps entries whose employee equals name
func ByEmployee(entries []models.Entry, name string) []models.Entry {
	return models.EntryFilter{Employee: &name}.Apply(entries)
}

// ByDate keeps entries whose date renders as day (DD-MM-YYYY). The comparison
// is on the formatted string, so any time of day on the entry is ignored.
func ByDate(entries []models.Entry, day string) []models.Entry {
	return models.EntryFilter{Date: day}.Apply(entries)
}

// ByDateRange keeps entries with start <= date <= end. The range is rejected
// before any filtering if start is after end.
func ByDateRange(entries []models.Entry, start, end time.Time) ([]models.Entry, error) {
	if start.After(end) {
		return nil, ErrRangeOrder
	}
	return models.EntryFilter{From: &start, To: &end}.Apply(entries), nil
}

// ByTerm keeps entries whose task or notes contain term
func ByTerm(entries []models.Entry, term string) []models.Entry {
	return models.EntryFilter{Term: term}.Apply(entries)
}

// ByDuration keeps entries lasting exactly minutes
func ByDuration(entries []models.Entry, minutes int) []models.Entry {
	return models.EntryFilter{Duration: &minutes}.Apply(entries)
}
