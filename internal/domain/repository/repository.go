package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by every repository lookup when no row matches.
var ErrNotFound = errors.New("record not found")

// ListParams is the storage side of the pagination contract.
// Search, when not empty, is a case-insensitive substring match OR-combined
// across the entity's searchable columns. Ordering is fixed per entity.
type ListParams struct {
	Search string
	Offset int
	Limit  int
}

type ConstraintKind int

const (
	UniqueViolation ConstraintKind = iota + 1
	ForeignKeyViolation
)

// ConstraintError reports a constraint the store rejected a write with.
// Table is the table the violating row belongs to (for a restricted delete,
// the referencing table).
type ConstraintError struct {
	Kind       ConstraintKind
	Constraint string
	Table      string
	Err        error
}

func (e *ConstraintError) Error() string {
	kind := "unique"
	if e.Kind == ForeignKeyViolation {
		kind = "foreign key"
	}
	return fmt.Sprintf("%s constraint %q violated on %s", kind, e.Constraint, e.Table)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// Store hands out the repositories of one storage backend.
type Store interface {
	Addresses() AddressRepository
	Categories() CategoryRepository
	InvoiceTypes() InvoiceTypeRepository
	PaymentMethods() PaymentMethodRepository
	Providers() ProviderRepository
	Transactions() TransactionRepository
	Users() UserRepository
}
