// Package query narrows the stored work log down to the entries a user asked
// for. Every search re-prompts on invalid input and on an empty result, so the
// caller only ever receives a non-empty, unambiguous result set or an error
// from the prompter or store.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/tgienger/worklog/internal/models"
	"github.com/tgienger/worklog/internal/prompt"
)

// Store is the read side of the entry store used by the engine.
type Store interface {
	// ListEntries returns every entry, newest date first.
	ListEntries(ctx context.Context) ([]models.Entry, error)
	// ListEntriesFiltered returns the entries matching f, newest date first.
	ListEntriesFiltered(ctx context.Context, f models.EntryFilter) ([]models.Entry, error)
}

const (
	noticeNoMatch    = "Sorry. No matches. Please try again."
	noticeNoEmployee = "Sorry. None found. Please try again."
)

// Engine runs the interactive searches.
type Engine struct {
	store    Store
	prompter prompt.Prompter
	log      *slog.Logger
}

// NewEngine creates an engine reading from store and asking p for criteria.
// A nil logger discards output.
func NewEngine(store Store, p prompt.Prompter, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{store: store, prompter: p, log: log}
}

// All returns every stored entry, newest first.
func (e *Engine) All(ctx context.Context) ([]models.Entry, error) {
	entries, err := e.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("query.All: %w", err)
	}
	return entries, nil
}

// fetch returns candidates, or a fresh snapshot of the store when candidates
// is nil. It is called on every retry so edits between attempts are seen.
func (e *Engine) fetch(ctx context.Context, candidates []models.Entry) ([]models.Entry, error) {
	if candidates != nil {
		return candidates, nil
	}
	entries, err := e.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: list entries: %w", err)
	}
	return entries, nil
}

// narrow applies f to candidates, or asks the store when candidates is nil.
func (e *Engine) narrow(ctx context.Context, candidates []models.Entry, f models.EntryFilter) ([]models.Entry, error) {
	if candidates != nil {
		return f.Apply(candidates), nil
	}
	entries, err := e.store.ListEntriesFiltered(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("query: filter entries: %w", err)
	}
	return entries, nil
}

// resolve picks exactly one of distinct. A single value is returned without
// asking; otherwise the user must type one of the listed values. noun names
// the grouping field in the retry notice.
func (e *Engine) resolve(ctx context.Context, noun string, req prompt.Request, distinct []string) (string, error) {
	if len(distinct) == 1 {
		return distinct[0], nil
	}
	e.log.DebugContext(ctx, "ambiguous match", "field", noun, "distinct", len(distinct))

	req.Items = distinct
	notListed := errors.New(noun + " not found in list")
	return prompt.Until(ctx, e.prompter, req, func(s string) (string, error) {
		if slices.Contains(distinct, s) {
			return s, nil
		}
		if t := strings.TrimSpace(s); slices.Contains(distinct, t) {
			return t, nil
		}
		return "", notListed
	})
}
