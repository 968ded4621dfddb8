package application

import (
	"context"
	"errors"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type identifiable interface {
	GetID() int64
}

// Reference is one foreign key on an incoming command. A nil ID means the
// relation is absent and is not checked.
type Reference struct {
	Entity string
	ID     *int64
	lookup func(ctx context.Context, id int64) error
}

// Ref builds a Reference resolved through the repository's GetByID.
func Ref[T any](entity string, id *int64, get func(context.Context, int64) (T, error)) Reference {
	return Reference{
		Entity: entity,
		ID:     id,
		lookup: func(ctx context.Context, id int64) error {
			_, err := get(ctx, id)
			return err
		},
	}
}

// ValidateReferences resolves the references in order and stops at the first
// one that does not exist.
func ValidateReferences(ctx context.Context, refs ...Reference) error {
	for _, r := range refs {
		if r.ID == nil {
			continue
		}
		if err := r.lookup(ctx, *r.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &ReferenceNotFoundError{Entity: r.Entity, ID: *r.ID}
			}
			return err
		}
	}
	return nil
}

// EnsureUnique fails with DuplicateValueError when another row already holds
// value. excludeID, when set, is the row being updated.
func EnsureUnique[T identifiable](ctx context.Context, entity, field, value string, excludeID *int64, find func(context.Context, string) (T, error)) error {
	found, err := find(ctx, value)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if excludeID != nil && found.GetID() == *excludeID {
		return nil
	}
	return &DuplicateValueError{Entity: entity, Field: field, Value: value}
}

// Dependent counts the rows of one dependent entity type referencing an id.
type Dependent struct {
	Entity string
	Count  func(ctx context.Context, id int64) (int64, error)
}

// EnsureNotReferenced evaluates the dependents in order and reports the first
// one with live rows.
func EnsureNotReferenced(ctx context.Context, entity string, id int64, deps ...Dependent) error {
	for _, d := range deps {
		n, err := d.Count(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &EntityInUseError{Entity: entity, ID: id, Dependent: d.Entity}
		}
	}
	return nil
}
