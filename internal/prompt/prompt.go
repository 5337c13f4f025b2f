// Package prompt defines how the interactive core asks the user for input and
// the validation loops that only return once a value is acceptable.
package prompt

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tgienger/worklog/internal/models"
)

// ErrAborted is returned by a Prompter when the user backs out of a prompt.
// It is the only way to leave a retry loop without a valid value.
var ErrAborted = errors.New("prompt aborted")

// Request describes one prompt screen.
type Request struct {
	Title  string   // heading, e.g. "EMPLOYEES"
	Items  []string // values worth searching, shown above the input
	Notice string   // feedback from the previous attempt
	Label  string   // the question itself
}

// Prompter reads one line of input for a Request.
type Prompter interface {
	Prompt(ctx context.Context, req Request) (string, error)
}

// Until re-prompts until check accepts the input. A rejected value's error
// text becomes the Notice of the next attempt.
func Until[T any](ctx context.Context, p Prompter, req Request, check func(string) (T, error)) (T, error) {
	for {
		input, err := p.Prompt(ctx, req)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := check(input)
		if err == nil {
			return v, nil
		}
		req.Notice = noticeFor(err)
	}
}

// noticeFor strips the sentinel prefix so the user sees only the reason.
func noticeFor(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, models.ErrValidation.Error()+": "); i >= 0 {
		msg = msg[i+len(models.ErrValidation.Error())+2:]
	}
	return "Sorry, " + msg + ". Please try again."
}

// text trims surrounding space before validating, so stored values never
// carry it and a blank-after-trim value counts as empty.
func text(field string, required bool) func(string) (string, error) {
	return func(s string) (string, error) {
		s = strings.TrimSpace(s)
		if err := models.ValidateText(field, s, required); err != nil {
			return "", err
		}
		return s, nil
	}
}

// Task asks for a task name (1-255 characters)
func Task(ctx context.Context, p Prompter, req Request) (string, error) {
	return Until(ctx, p, req, text("task name", true))
}

// Employee asks for an employee name or search substring (1-255 characters)
func Employee(ctx context.Context, p Prompter, req Request) (string, error) {
	return Until(ctx, p, req, text("employee", true))
}

// Notes asks for optional notes (0-255 characters)
func Notes(ctx context.Context, p Prompter, req Request) (string, error) {
	return Until(ctx, p, req, text("notes", false))
}

// Term asks for a non-empty free-text search term
func Term(ctx context.Context, p Prompter, req Request) (string, error) {
	return Until(ctx, p, req, text("search term", true))
}

// Date asks for a DD-MM-YYYY date
func Date(ctx context.Context, p Prompter, req Request) (time.Time, error) {
	return Until(ctx, p, req, models.ParseDate)
}

// Duration asks for a non-negative number of minutes
func Duration(ctx context.Context, p Prompter, req Request) (int, error) {
	return Until(ctx, p, req, models.ParseDuration)
}

// Confirm asks a Y/N question. Anything but y/Y is treated as no.
func Confirm(ctx context.Context, p Prompter, req Request) (bool, error) {
	answer, err := p.Prompt(ctx, req)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}
