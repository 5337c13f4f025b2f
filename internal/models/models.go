package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DateFormat is the day-month-year layout used for input and display
const DateFormat = "02-01-2006"

// MaxTextLength bounds the task, employee and notes fields
const MaxTextLength = 255

// Entry represents a single work log record
type Entry struct {
	ID        uuid.UUID
	Task      string
	Date      time.Time
	Employee  string
	Duration  int // minutes
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateString renders the entry date in DateFormat
func (e Entry) DateString() string {
	return FormatDate(e.Date)
}

// Validate checks every field against the persistence rules
func (e Entry) Validate() error {
	if err := ValidateText("task", e.Task, true); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if err := ValidateText("employee", e.Employee, true); err != nil {
		return err
	}
	if e.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrValidation)
	}
	return ValidateText("notes", e.Notes, false)
}

// ValidateText enforces the 0/1..255 character bound on a text field
func ValidateText(field, value string, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%w: %s must not be blank", ErrValidation, field)
	}
	if utf8.RuneCountInString(value) > MaxTextLength {
		return fmt.Errorf("%w: %s too long", ErrValidation, field)
	}
	return nil
}

// ParseDate parses a DD-MM-YYYY string into a UTC calendar date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date", ErrValidation, s)
	}
	return t, nil
}

// FormatDate renders t in DateFormat
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDuration parses a whole, non-negative number of minutes
func ParseDuration(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a valid number of minutes", ErrValidation, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: duration must not be negative", ErrValidation)
	}
	return n, nil
}
