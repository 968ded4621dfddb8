package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

func TestValidateReferencesStopsAtFirstMissing(t *testing.T) {
	var calls []string
	lookup := func(name string, exists bool) func(context.Context, int64) (*entity.Category, error) {
		return func(context.Context, int64) (*entity.Category, error) {
			calls = append(calls, name)
			if !exists {
				return nil, repository.ErrNotFound
			}
			return &entity.Category{}, nil
		}
	}

	err := ValidateReferences(context.Background(),
		Ref(EntityCategory, ptr(int64(1)), lookup("category", true)),
		Ref(EntityAddress, nil, lookup("address", false)),
		Ref(EntityInvoiceType, ptr(int64(7)), lookup("invoiceType", false)),
		Ref(EntityPaymentMethod, ptr(int64(8)), lookup("paymentMethod", false)),
	)

	var rnf *ReferenceNotFoundError
	require.ErrorAs(t, err, &rnf)
	assert.Equal(t, EntityInvoiceType, rnf.Entity)
	assert.Equal(t, int64(7), rnf.ID)
	assert.Equal(t, []string{"category", "invoiceType"}, calls)
}

func TestValidateReferencesPropagatesStorageFailure(t *testing.T) {
	boom := errors.New("connection reset")
	err := ValidateReferences(context.Background(),
		Ref(EntityUser, ptr(int64(1)), func(context.Context, int64) (*entity.User, error) { return nil, boom }),
	)
	assert.ErrorIs(t, err, boom)
	var rnf *ReferenceNotFoundError
	assert.False(t, errors.As(err, &rnf))
}

func TestEnsureUnique(t *testing.T) {
	ctx := context.Background()
	holder := &entity.Category{ID: 3, Code: "CAT1"}
	find := func(_ context.Context, code string) (*entity.Category, error) {
		if code == holder.Code {
			return holder, nil
		}
		return nil, repository.ErrNotFound
	}

	assert.NoError(t, EnsureUnique(ctx, EntityCategory, "code", "FREE", nil, find))
	assert.NoError(t, EnsureUnique(ctx, EntityCategory, "code", "CAT1", ptr(int64(3)), find))

	err := EnsureUnique(ctx, EntityCategory, "code", "CAT1", ptr(int64(4)), find)
	var dup *DuplicateValueError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "code", dup.Field)
	assert.Equal(t, "CAT1", dup.Value)

	require.ErrorAs(t, EnsureUnique(ctx, EntityCategory, "code", "CAT1", nil, find), &dup)
}

func TestEnsureNotReferencedReportsFirstDependent(t *testing.T) {
	var evaluated []string
	dep := func(name string, n int64) Dependent {
		return Dependent{Entity: name, Count: func(context.Context, int64) (int64, error) {
			evaluated = append(evaluated, name)
			return n, nil
		}}
	}

	err := EnsureNotReferenced(context.Background(), EntityPaymentMethod, 5,
		dep(EntityProvider, 0), dep(EntityTransaction, 2), dep("Other", 9))

	var inUse *EntityInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, EntityPaymentMethod, inUse.Entity)
	assert.Equal(t, int64(5), inUse.ID)
	assert.Equal(t, EntityTransaction, inUse.Dependent)
	assert.Equal(t, []string{EntityProvider, EntityTransaction}, evaluated)

	assert.NoError(t, EnsureNotReferenced(context.Background(), EntityAddress, 1, dep(EntityProvider, 0)))
}

func TestTranslateStorageErrors(t *testing.T) {
	unique := &repository.ConstraintError{Kind: repository.UniqueViolation, Constraint: "users_email_key", Table: "users"}
	var dup *DuplicateValueError
	require.ErrorAs(t, translateWrite(unique, EntityUser, "email", "a@b.c"), &dup)
	assert.Equal(t, "a@b.c", dup.Value)

	fk := &repository.ConstraintError{Kind: repository.ForeignKeyViolation, Constraint: "providers_category_id_fkey", Table: "providers"}
	var rnf *ReferenceNotFoundError
	require.ErrorAs(t, translateWrite(fk, EntityProvider, "cuit", "", Ref(EntityCategory, ptr(int64(9)), func(context.Context, int64) (any, error) { return nil, nil })), &rnf)
	assert.Equal(t, EntityCategory, rnf.Entity)
	assert.Equal(t, int64(9), rnf.ID)

	found := func(context.Context, int64) (any, error) { return nil, nil }
	joinFK := &repository.ConstraintError{Kind: repository.ForeignKeyViolation, Constraint: "provider_payment_methods_payment_method_id_fkey", Table: "provider_payment_methods"}
	require.ErrorAs(t, translateWrite(joinFK, EntityProvider, "cuit", "",
		Ref(EntityCategory, ptr(int64(1)), found),
		Ref(EntityPaymentMethod, ptr(int64(3)), found),
		Ref(EntityPaymentMethod, ptr(int64(5)), found),
	), &rnf)
	assert.Equal(t, EntityPaymentMethod, rnf.Entity)
	assert.Zero(t, rnf.ID)
	assert.Equal(t, "referenced PaymentMethod not found", rnf.Error())

	require.ErrorAs(t, translateWrite(joinFK, EntityProvider, "cuit", "",
		Ref(EntityPaymentMethod, ptr(int64(5)), found),
		Ref(EntityPaymentMethod, ptr(int64(5)), found),
	), &rnf)
	assert.Equal(t, int64(5), rnf.ID)

	restrict := &repository.ConstraintError{Kind: repository.ForeignKeyViolation, Constraint: "transactions_provider_id_fkey", Table: "transactions"}
	var inUse *EntityInUseError
	require.ErrorAs(t, translateDelete(restrict, EntityProvider, 4), &inUse)
	assert.Equal(t, EntityTransaction, inUse.Dependent)

	var nf *NotFoundError
	require.ErrorAs(t, translateDelete(repository.ErrNotFound, EntityProvider, 4), &nf)

	opaque := errors.New("disk full")
	err := translateWrite(opaque, EntityAddress, "", "")
	assert.ErrorIs(t, err, opaque)
	assert.False(t, errors.As(err, &dup))
}
