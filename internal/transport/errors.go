package transport

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when no transport record exists for an id.
var ErrNotFound = errors.New("transport request not found")

// ValidationError carries every offending field of a request in one error so
// callers can report them all at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// fieldErrors accumulates per-field problems and turns into a
// *ValidationError only if at least one was recorded.
type fieldErrors map[string]string

func (f fieldErrors) add(field, reason string) {
	f[field] = reason
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
