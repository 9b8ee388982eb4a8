package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("record not found")

// GeneralField is the key used for validation failures not tied to one field.
const GeneralField = "general"

// NotFoundError reports that the entity with the given identifier does not exist.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found.", e.Entity, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match a NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError is a business rule violation. Field is the JSON name of the
// offending input field, or GeneralField.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewNotFound(entity string, id int) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func NewValidation(field, message string) error {
	if field == "" {
		field = GeneralField
	}
	return &ValidationError{Field: field, Message: message}
}
