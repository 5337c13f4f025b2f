package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/worklog/internal/models"
	"github.com/tgienger/worklog/internal/prompt"
	"github.com/tgienger/worklog/internal/ui/views"
)

// Terminal is every screen the app can show. Each call blocks until the
// user answers; backing out returns prompt.ErrAborted.
type Terminal interface {
	prompt.Prompter
	Choose(ctx context.Context, title string, options []views.Option, selected int) (int, error)
	Browse(ctx context.Context, entries []models.Entry) (views.BrowseAction, int, error)
	Notify(ctx context.Context, message string) error
}

// TeaTerminal runs one bubbletea program per screen
type TeaTerminal struct {
	opts []tea.ProgramOption
}

func NewTeaTerminal(opts ...tea.ProgramOption) *TeaTerminal {
	return &TeaTerminal{opts: opts}
}

func (t *TeaTerminal) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("ui: run program: %w", err)
	}
	return final, nil
}

func (t *TeaTerminal) Prompt(ctx context.Context, req prompt.Request) (string, error) {
	final, err := t.run(ctx, views.NewPromptView(req))
	if err != nil {
		return "", err
	}
	v := final.(*views.PromptView)
	if v.Aborted() {
		return "", prompt.ErrAborted
	}
	return v.Value(), nil
}

func (t *TeaTerminal) Choose(ctx context.Context, title string, options []views.Option, selected int) (int, error) {
	final, err := t.run(ctx, views.NewMenuView(title, options, selected))
	if err != nil {
		return 0, err
	}
	v := final.(*views.MenuView)
	if v.Aborted() || v.Chosen() < 0 {
		return 0, prompt.ErrAborted
	}
	return v.Chosen(), nil
}

func (t *TeaTerminal) Browse(ctx context.Context, entries []models.Entry) (views.BrowseAction, int, error) {
	final, err := t.run(ctx, views.NewBrowserView(entries, 0))
	if err != nil {
		return views.BrowseBack, 0, err
	}
	v := final.(*views.BrowserView)
	if v.Aborted() {
		return views.BrowseBack, 0, prompt.ErrAborted
	}
	return v.Action(), v.Index(), nil
}

func (t *TeaTerminal) Notify(ctx context.Context, message string) error {
	_, err := t.run(ctx, views.NewNoticeView(message))
	return err
}
