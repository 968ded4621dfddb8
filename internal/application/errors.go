package application

import (
	"errors"
	"fmt"
)

// Entity names used in errors and events.
const (
	EntityAddress       = "Address"
	EntityCategory      = "Category"
	EntityInvoiceType   = "InvoiceType"
	EntityPaymentMethod = "PaymentMethod"
	EntityProvider      = "Provider"
	EntityTransaction   = "Transaction"
	EntityUser          = "User"
)

var (
	ErrInvalidAmount      = errors.New("paid amount cannot be greater than total amount")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NotFoundError is returned when the entity an operation targets does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

// DuplicateValueError is returned when a write would break a uniqueness rule.
type DuplicateValueError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("%s with %s %s already exists", e.Entity, e.Field, e.Value)
}

// ReferenceNotFoundError is returned when a supplied foreign key does not resolve.
type ReferenceNotFoundError struct {
	Entity string
	ID     int64
}

// ID is zero when the store could not tell which of several ids was missing.
func (e *ReferenceNotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("referenced %s not found", e.Entity)
	}
	return fmt.Sprintf("referenced %s with ID %d not found", e.Entity, e.ID)
}

// EntityInUseError is returned when a delete is blocked by a dependent row.
type EntityInUseError struct {
	Entity    string
	ID        int64
	Dependent string
}

func (e *EntityInUseError) Error() string {
	return fmt.Sprintf("cannot delete %s %d: referenced by one or more %s", e.Entity, e.ID, e.Dependent)
}
