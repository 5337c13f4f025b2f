package query

import (
	"context"
	"fmt"

	"github.com/tgienger/worklog/internal/models"
	"github.com/tgienger/worklog/internal/prompt"
)

// SearchByEmployee asks for part of an employee name. When the substring
// matches several employees the user picks one of them; the result is then
// every stored entry for exactly that employee.
func (e *Engine) SearchByEmployee(ctx context.Context, candidates []models.Entry) ([]models.Entry, error) {
	var notice string
	for {
		entries, err := e.fetch(ctx, candidates)
		if err != nil {
			return nil, err
		}

		search, err := prompt.Employee(ctx, e.prompter, prompt.Request{
			Title:  "EMPLOYEES",
			Items:  UniqueEmployees(entries),
			Notice: notice,
			Label:  "Please enter a name of an employee to search by",
		})
		if err != nil {
			return nil, err
		}

		matches := ByEmployeeContains(entries, search)
		e.log.DebugContext(ctx, "search", "kind", "employee", "criterion", search,
			"candidates", len(entries), "matches", len(matches))
		if len(matches) == 0 {
			notice = noticeNoEmployee
			continue
		}

		employee, err := e.resolve(ctx, "employee", prompt.Request{
			Title: "EMPLOYEES THAT MATCH YOUR SEARCH",
			Label: "Please choose an employee",
		}, UniqueEmployees(matches))
		if err != nil {
			return nil, err
		}

		// Always re-query the store: the subset above may be stale.
		results, err := e.store.ListEntriesFiltered(ctx, models.EntryFilter{Employee: &employee})
		if err != nil {
			return nil, fmt.Errorf("query.SearchByEmployee: %w", err)
		}
		if len(results) == 0 {
			notice = noticeNoEmployee
			continue
		}
		return results, nil
	}
}

// SearchByDate asks for a single DD-MM-YYYY date, listing the dates that have
// entries, and returns the entries on that day.
func (e *Engine) SearchByDate(ctx context.Context, candidates []models.Entry) ([]models.Entry, error) {
	var notice string
	for {
		entries, err := e.fetch(ctx, candidates)
		if err != nil {
			return nil, err
		}

		date, err := prompt.Date(ctx, e.prompter, prompt.Request{
			Title:  "Dates with tasks",
			Items:  UniqueDates(entries),
			Notice: notice,
			Label:  "Please enter a date in DD-MM-YYYY format",
		})
		if err != nil {
			return nil, err
		}

		day := models.FormatDate(date)
		results := ByDate(entries, day)
		e.log.DebugContext(ctx, "search", "kind", "date", "criterion", day,
			"candidates", len(entries), "matches", len(results))
		if len(results) == 0 {
			notice = fmt.Sprintf("%s not found. Please try again.", day)
			continue
		}
		return results, nil
	}
}

// SearchByDateRange asks for a start and an end date and returns the entries
// between them, both ends inclusive. A start after the end, or an empty
// result, restarts both prompts.
func (e *Engine) SearchByDateRange(ctx context.Context, candidates []models.Entry) ([]models.Entry, error) {
	var notice string
	for {
		start, err := prompt.Date(ctx, e.prompter, prompt.Request{
			Title:  "Search between two dates",
			Notice: notice,
			Label:  "Enter the start date in DD-MM-YYYY format",
		})
		if err != nil {
			return nil, err
		}
		end, err := prompt.Date(ctx, e.prompter, prompt.Request{
			Title: "Search between two dates",
			Label: "Enter the end date in DD-MM-YYYY format",
		})
		if err != nil {
			return nil, err
		}

		if start.After(end) {
			e.log.DebugContext(ctx, "range rejected", "start", models.FormatDate(start), "end", models.FormatDate(end))
			notice = "Sorry, " + ErrRangeOrder.Error() + ". Please try again."
			continue
		}

		results, err := e.narrow(ctx, candidates, models.EntryFilter{From: &start, To: &end})
		if err != nil {
			return nil, err
		}
		e.log.DebugContext(ctx, "search", "kind", "range",
			"start", models.FormatDate(start), "end", models.FormatDate(end), "matches", len(results))
		if len(results) == 0 {
			notice = noticeNoMatch
			continue
		}
		return results, nil
	}
}

// SearchByTerm asks for a search term and returns the entries whose task or
// notes contain it.
func (e *Engine) SearchByTerm(ctx context.Context, candidates []models.Entry) ([]models.Entry, error) {
	var notice string
	for {
		term, err := prompt.Term(ctx, e.prompter, prompt.Request{
			Title:  "Search by Keyword",
			Notice: notice,
			Label:  "Enter a search term",
		})
		if err != nil {
			return nil, err
		}

		results, err := e.narrow(ctx, candidates, models.EntryFilter{Term: term})
		if err != nil {
			return nil, err
		}
		e.log.DebugContext(ctx, "search", "kind", "term", "criterion", term, "matches", len(results))
		if len(results) == 0 {
			notice = noticeNoMatch
			continue
		}
		return results, nil
	}
}

// SearchByDuration asks for a number of minutes and returns the entries that
// took exactly that long.
func (e *Engine) SearchByDuration(ctx context.Context, candidates []models.Entry) ([]models.Entry, error) {
	var notice string
	for {
		minutes, err := prompt.Duration(ctx, e.prompter, prompt.Request{
			Title:  "Search by Time Spent",
			Notice: notice,
			Label:  "Enter a duration to search (minutes)",
		})
		if err != nil {
			return nil, err
		}

		results, err := e.narrow(ctx, candidates, models.EntryFilter{Duration: &minutes})
		if err != nil {
			return nil, err
		}
		e.log.DebugContext(ctx, "search", "kind", "duration", "criterion", minutes, "matches", len(results))
		if len(results) == 0 {
			notice = noticeNoMatch
			continue
		}
		return results, nil
	}
}
