package models

import "errors"

// ErrNotFound is returned by the store when no entry has the requested ID.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when a field fails validation, e.g. a blank
// employee or an unparseable date. Wrap it with the field-specific message.
var ErrValidation = errors.New("validation error")
