// Package domain defines the business error taxonomy shared by all services.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrNotFound is returned when a referenced user, account or
	// transaction does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidOperation is returned on malformed business input, such as
	// a non-positive amount or a transfer to the same account.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInsufficientFunds is returned when a withdrawal or transfer asks
	// for more than the account balance. Kept distinct from
	// ErrInvalidOperation so callers can present a different message.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrDuplicated is returned on a uniqueness violation, such as
	// registering a user with an existing DNI or email.
	ErrDuplicated = errors.New("resource already exists")
)

// NotFoundError carries the entity label and the offending identifier.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Entity     string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s con el identificador '%s' no encontrado.", e.Entity, e.Identifier)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound builds a NotFoundError for the given entity label and identifier.
func NewNotFound(entity, identifier string) error {
	return &NotFoundError{Entity: entity, Identifier: identifier}
}

// DuplicatedError carries the entity label and the conflicting identifier.
// It matches ErrDuplicated under errors.Is.
type DuplicatedError struct {
	Entity     string
	Identifier string
}

func (e *DuplicatedError) Error() string {
	return fmt.Sprintf("%s con el identificador '%s' ya existe.", e.Entity, e.Identifier)
}

func (e *DuplicatedError) Unwrap() error { return ErrDuplicated }

// NewDuplicated builds a DuplicatedError for the given entity label and identifier.
func NewDuplicated(entity, identifier string) error {
	return &DuplicatedError{Entity: entity, Identifier: identifier}
}

// NewInvalidOperation wraps ErrInvalidOperation with a caller-facing message.
func NewInvalidOperation(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, msg)
}

// NewInsufficientFunds wraps ErrInsufficientFunds with a caller-facing message.
func NewInsufficientFunds(msg string) error {
	return fmt.Errorf("%w: %s", ErrInsufficientFunds, msg)
}
