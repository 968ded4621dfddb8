package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

// Guards run before every write, so these only fire when a concurrent request
// changed the graph between the check and the write.
var (
	fkTargets = map[string]string{
		"providers_category_id_fkey":                      EntityCategory,
		"providers_address_id_fkey":                       EntityAddress,
		"providers_invoice_type_id_fkey":                  EntityInvoiceType,
		"provider_payment_methods_payment_method_id_fkey": EntityPaymentMethod,
		"transactions_provider_id_fkey":                   EntityProvider,
		"transactions_user_id_fkey":                       EntityUser,
		"transactions_payment_method_id_fkey":             EntityPaymentMethod,
	}
	dependentTables = map[string]string{
		"providers":                EntityProvider,
		"provider_payment_methods": EntityProvider,
		"transactions":             EntityTransaction,
	}
)

func notFound(err error, entity string, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}

// translateWrite maps a failed create/update onto the error taxonomy. field and
// value name the entity's unique column; refs are the references of the command.
func translateWrite(err error, entity, field, value string, refs ...Reference) error {
	var ce *repository.ConstraintError
	if !errors.As(err, &ce) {
		return fmt.Errorf("persist %s: %w", strings.ToLower(entity), err)
	}
	switch ce.Kind {
	case repository.UniqueViolation:
		if field != "" {
			return &DuplicateValueError{Entity: entity, Field: field, Value: value}
		}
	case repository.ForeignKeyViolation:
		target, ok := fkTargets[ce.Constraint]
		if !ok {
			break
		}
		// The constraint names the table, not the row. With several candidate
		// ids the missing one is unknown and the ID is left out.
		var candidates []int64
		for _, r := range refs {
			if r.Entity == target && r.ID != nil {
				candidates = append(candidates, *r.ID)
			}
		}
		if ids := dedupe(candidates); len(ids) == 1 {
			return &ReferenceNotFoundError{Entity: target, ID: ids[0]}
		}
		return &ReferenceNotFoundError{Entity: target}
	}
	return fmt.Errorf("persist %s: %w", strings.ToLower(entity), err)
}

// translateDelete maps a failed delete onto the error taxonomy.
func translateDelete(err error, entity string, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	var ce *repository.ConstraintError
	if errors.As(err, &ce) && ce.Kind == repository.ForeignKeyViolation {
		dep, ok := dependentTables[ce.Table]
		if !ok {
			dep = ce.Table
		}
		return &EntityInUseError{Entity: entity, ID: id, Dependent: dep}
	}
	return fmt.Errorf("delete %s: %w", strings.ToLower(entity), err)
}
