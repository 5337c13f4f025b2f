package query

import "github.com/tgienger/worklog/internal/models"

// UniqueEmployees returns the distinct employee names in first-seen order
func UniqueEmployees(entries []models.Entry) []string {
	return unique(entries, func(e models.Entry) string { return e.Employee })
}

// UniqueDates returns the distinct dates, rendered DD-MM-YYYY, in first-seen order
func UniqueDates(entries []models.Entry) []string {
	return unique(entries, models.Entry.DateString)
}

func unique(entries []models.Entry, key func(models.Entry) string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := []string{}
	for _, e := range entries {
		k := key(e)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
