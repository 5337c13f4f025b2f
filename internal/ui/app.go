package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tgienger/worklog/internal/models"
	"github.com/tgienger/worklog/internal/prompt"
	"github.com/tgienger/worklog/internal/query"
	"github.com/tgienger/worklog/internal/ui/views"
)

const lastSearchKey = "last_search"

// Store is the persistence the app needs on top of the query engine's reads
type Store interface {
	query.Store
	CreateEntry(ctx context.Context, e models.Entry) (*models.Entry, error)
	UpdateEntry(ctx context.Context, e models.Entry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	EntryCount(ctx context.Context) (int, error)
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Command is one lettered menu action. Run reports whether the menu
// holding it should be left.
type Command struct {
	Key   string
	Label string
	Run   func(ctx context.Context) (bool, error)
}

type App struct {
	store  Store
	term   Terminal
	engine *query.Engine
	log    *slog.Logger
	main   []Command
	search []Command
}

// Creates a new application
func NewApp(store Store, term Terminal, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	a := &App{
		store:  store,
		term:   term,
		engine: query.NewEngine(store, term, log),
		log:    log,
	}

	leave := func(context.Context) (bool, error) { return true, nil }
	a.main = []Command{
		{Key: "a", Label: "Add an entry", Run: a.add},
		{Key: "b", Label: "Search entries", Run: a.searchMenu},
		{Key: "c", Label: "Quit", Run: leave},
	}
	a.search = []Command{
		{Key: "a", Label: "View all entries", Run: a.searchWith(func(ctx context.Context, _ []models.Entry) ([]models.Entry, error) {
			return a.engine.All(ctx)
		})},
		{Key: "b", Label: "Find by employee", Run: a.searchWith(a.engine.SearchByEmployee)},
		{Key: "c", Label: "Find by date", Run: a.searchWith(a.engine.SearchByDate)},
		{Key: "d", Label: "Find by date range", Run: a.searchWith(a.engine.SearchByDateRange)},
		{Key: "e", Label: "Find by time spent", Run: a.searchWith(a.engine.SearchByDuration)},
		{Key: "f", Label: "Find by search term", Run: a.searchWith(a.engine.SearchByTerm)},
		{Key: "q", Label: "Return to main menu", Run: leave},
	}
	return a
}

func options(cmds []Command) []views.Option {
	opts := make([]views.Option, len(cmds))
	for i, c := range cmds {
		opts[i] = views.Option{Key: c.Key, Label: c.Label}
	}
	return opts
}

// Run shows the main menu until the user quits
func (a *App) Run(ctx context.Context) error {
	a.log.Info("worklog started")
	defer a.log.Info("worklog stopped")

	for {
		i, err := a.term.Choose(ctx, "WORK LOG", options(a.main), 0)
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		done, err := a.main[i].Run(ctx)
		if err != nil {
			a.log.Error("command failed", "command", a.main[i].Label, "error", err)
			return err
		}
		if done {
			return nil
		}
	}
}

func (a *App) searchMenu(ctx context.Context) (bool, error) {
	selected := a.lastSearch(ctx)
	for {
		// Checked on every pass: a delete may have emptied the store.
		count, err := a.store.EntryCount(ctx)
		if err != nil {
			return false, err
		}
		if count == 0 {
			return false, a.term.Notify(ctx, "Sorry. No entries to search. Add an entry first.")
		}

		i, err := a.term.Choose(ctx, "SEARCH ENTRIES", options(a.search), selected)
		if errors.Is(err, prompt.ErrAborted) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		cmd := a.search[i]
		done, err := cmd.Run(ctx)
		if err != nil || done {
			return false, err
		}

		selected = i
		if err := a.store.SetSetting(ctx, lastSearchKey, cmd.Key); err != nil {
			a.log.Warn("save last search", "error", err)
		}
	}
}

// lastSearch finds the search command used last time, defaulting to the first
func (a *App) lastSearch(ctx context.Context) int {
	k, err := a.store.GetSetting(ctx, lastSearchKey)
	if err != nil {
		a.log.Warn("load last search", "error", err)
		return 0
	}
	for i, c := range a.search {
		if c.Key == k {
			return i
		}
	}
	return 0
}

func (a *App) searchWith(find func(context.Context, []models.Entry) ([]models.Entry, error)) func(context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		results, err := find(ctx, nil)
		if errors.Is(err, prompt.ErrAborted) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return false, a.browse(ctx, results)
	}
}

func (a *App) add(ctx context.Context) (bool, error) {
	req := func(label string) prompt.Request {
		return prompt.Request{Title: "NEW ENTRY", Label: label}
	}

	var (
		e   models.Entry
		err error
	)
	if e.Task, err = prompt.Task(ctx, a.term, req("Name of the task")); err != nil {
		return false, ignoreAbort(err)
	}
	if e.Date, err = prompt.Date(ctx, a.term, req("Date of the task (DD-MM-YYYY)")); err != nil {
		return false, ignoreAbort(err)
	}
	if e.Employee, err = prompt.Employee(ctx, a.term, req("Employee name")); err != nil {
		return false, ignoreAbort(err)
	}
	if e.Duration, err = prompt.Duration(ctx, a.term, req("Time spent (rounded minutes)")); err != nil {
		return false, ignoreAbort(err)
	}
	if e.Notes, err = prompt.Notes(ctx, a.term, req("Notes (optional, leave empty to skip)")); err != nil {
		return false, ignoreAbort(err)
	}

	created, err := a.store.CreateEntry(ctx, e)
	if err != nil {
		return false, err
	}
	a.log.Info("entry created", "id", created.ID, "employee", created.Employee)
	return false, a.term.Notify(ctx, "Entry saved!")
}

func (a *App) browse(ctx context.Context, entries []models.Entry) error {
	action, i, err := a.term.Browse(ctx, entries)
	if err != nil {
		return ignoreAbort(err)
	}
	if i < 0 || i >= len(entries) {
		return nil
	}

	switch action {
	case views.BrowseEdit:
		return a.edit(ctx, entries[i])
	case views.BrowseDelete:
		return a.remove(ctx, entries[i])
	}
	return nil
}

type editField struct {
	key   string
	label string
	value func(models.Entry) string
	ask   func(ctx context.Context, p prompt.Prompter, e *models.Entry) error
}

var editFields = []editField{
	{
		key: "a", label: "Task name",
		value: func(e models.Entry) string { return e.Task },
		ask: func(ctx context.Context, p prompt.Prompter, e *models.Entry) (err error) {
			e.Task, err = prompt.Task(ctx, p, editRequest("New task name", e.Task))
			return err
		},
	},
	{
		key: "b", label: "Date",
		value: models.Entry.DateString,
		ask: func(ctx context.Context, p prompt.Prompter, e *models.Entry) (err error) {
			e.Date, err = prompt.Date(ctx, p, editRequest("New date (DD-MM-YYYY)", e.DateString()))
			return err
		},
	},
	{
		key: "c", label: "Employee",
		value: func(e models.Entry) string { return e.Employee },
		ask: func(ctx context.Context, p prompt.Prompter, e *models.Entry) (err error) {
			e.Employee, err = prompt.Employee(ctx, p, editRequest("New employee name", e.Employee))
			return err
		},
	},
	{
		key: "d", label: "Time spent",
		value: func(e models.Entry) string { return fmt.Sprintf("%d minutes", e.Duration) },
		ask: func(ctx context.Context, p prompt.Prompter, e *models.Entry) (err error) {
			e.Duration, err = prompt.Duration(ctx, p, editRequest("New time spent (rounded minutes)", fmt.Sprint(e.Duration)))
			return err
		},
	},
	{
		key: "e", label: "Notes",
		value: func(e models.Entry) string { return e.Notes },
		ask: func(ctx context.Context, p prompt.Prompter, e *models.Entry) (err error) {
			e.Notes, err = prompt.Notes(ctx, p, editRequest("New notes", e.Notes))
			return err
		},
	},
}

func editRequest(label, current string) prompt.Request {
	return prompt.Request{Title: "EDIT ENTRY", Items: []string{"Current: " + current}, Label: label}
}

func editOptions(e models.Entry) []views.Option {
	opts := make([]views.Option, 0, len(editFields)+1)
	for _, f := range editFields {
		opts = append(opts, views.Option{Key: f.key, Label: f.label + ": " + f.value(e)})
	}
	return append(opts, views.Option{Key: "q", Label: "Done editing"})
}

// edit changes one field at a time until the user is done
func (a *App) edit(ctx context.Context, e models.Entry) error {
	for {
		i, err := a.term.Choose(ctx, "EDIT ENTRY", editOptions(e), 0)
		if err != nil {
			return ignoreAbort(err)
		}
		if i >= len(editFields) {
			return nil
		}

		updated := e
		if err := editFields[i].ask(ctx, a.term, &updated); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				continue
			}
			return err
		}

		if err := a.store.UpdateEntry(ctx, updated); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return a.term.Notify(ctx, "Sorry, that entry no longer exists.")
			}
			return err
		}
		a.log.Info("entry updated", "id", e.ID, "field", editFields[i].label)
		e = updated

		if err := a.term.Notify(ctx, "Entry updated!"); err != nil {
			return err
		}
	}
}

func (a *App) remove(ctx context.Context, e models.Entry) error {
	ok, err := prompt.Confirm(ctx, a.term, prompt.Request{
		Title: "DELETE ENTRY",
		Items: []string{e.DateString() + " " + e.Task + " (" + e.Employee + ")"},
		Label: "Do you really want to delete this entry? [Y/N]",
	})
	if err != nil {
		return ignoreAbort(err)
	}
	if !ok {
		return a.term.Notify(ctx, "Entry not deleted.")
	}

	if err := a.store.DeleteEntry(ctx, e.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return a.term.Notify(ctx, "Sorry, that entry no longer exists.")
		}
		return err
	}
	a.log.Info("entry deleted", "id", e.ID)
	return a.term.Notify(ctx, "Entry deleted!")
}

// ignoreAbort treats backing out of a screen as a normal return
func ignoreAbort(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	return err
}
