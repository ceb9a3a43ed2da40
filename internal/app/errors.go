package app

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist (or, for
	// categories, was soft-deleted).
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName indicates another active category already uses the
	// name under case-insensitive comparison.
	ErrDuplicateName = errors.New("category name already in use")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func required(field string) error {
	return &ValidationError{Field: field, Msg: "is required"}
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// InUseError rejects deleting a category that active activities still
// reference. Count tells the admin how many.
type InUseError struct {
	Count int64
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("category is referenced by %d activities", e.Count)
}
