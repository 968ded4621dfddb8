// Package patch holds field types for partial updates where "absent" and
// "explicitly null" mean different things.
package patch

import (
	"bytes"
	"encoding/json"
)

// Nullable is a tri-state field: not present in the payload, present as null,
// or present with a value. The zero value is "not present".
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Of returns a Nullable carrying v.
func Of[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// Null returns a Nullable explicitly set to null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Ptr returns nil for null, a pointer to the value otherwise.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// UnmarshalJSON is only called by encoding/json when the key is present,
// which is what marks the field as Set.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
