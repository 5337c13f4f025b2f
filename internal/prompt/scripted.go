package prompt

import (
	"context"
	"fmt"
)

// Scripted is a Prompter that replays a fixed sequence of answers. It records
// every Request it receives, which makes interactive flows testable without a
// terminal.
type Scripted struct {
	Answers  []string
	Requests []Request
}

// NewScripted returns a Scripted prompter answering with answers in order.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{Answers: answers}
}

// Prompt returns the next answer, or ErrAborted once the script is exhausted.
func (s *Scripted) Prompt(ctx context.Context, req Request) (string, error) {
	s.Requests = append(s.Requests, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("script exhausted at %q: %w", req.Label, ErrAborted)
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}

// Notices returns the Notice of every recorded request, in order.
func (s *Scripted) Notices() []string {
	out := make([]string, len(s.Requests))
	for i, r := range s.Requests {
		out[i] = r.Notice
	}
	return out
}
