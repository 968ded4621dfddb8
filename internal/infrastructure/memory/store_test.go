package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

func strPtr(s string) *string { return &s }

func requireConstraint(t *testing.T, err error, kind repository.ConstraintKind, constraint string) *repository.ConstraintError {
	t.Helper()
	var ce *repository.ConstraintError
	require.True(t, errors.As(err, &ce), "expected constraint error, got %v", err)
	assert.Equal(t, kind, ce.Kind)
	assert.Equal(t, constraint, ce.Constraint)
	return ce
}

func TestCategoryUniqueCodeAndRestrictedDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	cats, provs := s.Categories(), s.Providers()

	c := &entity.Category{Code: "CAT1", Name: "Utilities"}
	require.NoError(t, cats.Create(ctx, c))
	assert.Equal(t, int64(1), c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	err := cats.Create(ctx, &entity.Category{Code: "CAT1", Name: "Other"})
	requireConstraint(t, err, repository.UniqueViolation, "categories_code_key")

	require.NoError(t, provs.Create(ctx, &entity.Provider{CompanyName: "Acme", CUIT: "30-12345678-9", CategoryID: c.ID}))
	err = cats.Delete(ctx, c.ID)
	ce := requireConstraint(t, err, repository.ForeignKeyViolation, "providers_category_id_fkey")
	assert.Equal(t, "providers", ce.Table)

	assert.ErrorIs(t, cats.Delete(ctx, 99), repository.ErrNotFound)
}

func TestProviderForeignKeysAndJoinRows(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c := &entity.Category{Code: "C", Name: "c"}
	require.NoError(t, s.Categories().Create(ctx, c))
	cash := &entity.PaymentMethod{Name: "Cash"}
	wire := &entity.PaymentMethod{Name: "Wire"}
	require.NoError(t, s.PaymentMethods().Create(ctx, cash))
	require.NoError(t, s.PaymentMethods().Create(ctx, wire))

	err := s.Providers().Create(ctx, &entity.Provider{CompanyName: "X", CategoryID: 42})
	requireConstraint(t, err, repository.ForeignKeyViolation, "providers_category_id_fkey")

	err = s.Providers().Create(ctx, &entity.Provider{CompanyName: "X", CategoryID: c.ID, PaymentMethodIDs: []int64{77}})
	requireConstraint(t, err, repository.ForeignKeyViolation, "provider_payment_methods_payment_method_id_fkey")

	p := &entity.Provider{CompanyName: "Acme", CategoryID: c.ID, PaymentMethodIDs: []int64{wire.ID, cash.ID}}
	require.NoError(t, s.Providers().Create(ctx, p))

	joined, err := s.PaymentMethods().ListByProviders(ctx, []int64{p.ID})
	require.NoError(t, err)
	require.Len(t, joined[p.ID], 2)
	assert.Equal(t, cash.ID, joined[p.ID][0].ID)

	n, err := s.PaymentMethods().CountProviders(ctx, cash.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	err = s.PaymentMethods().Delete(ctx, cash.ID)
	requireConstraint(t, err, repository.ForeignKeyViolation, "provider_payment_methods_payment_method_id_fkey")

	// update without replacing keeps the join rows
	p.CompanyName = "Acme SA"
	p.PaymentMethodIDs = nil
	require.NoError(t, s.Providers().Update(ctx, p, false))
	assert.Len(t, p.PaymentMethodIDs, 2)

	p.PaymentMethodIDs = []int64{}
	require.NoError(t, s.Providers().Update(ctx, p, true))
	assert.Empty(t, p.PaymentMethodIDs)
	n, err = s.PaymentMethods().CountProviders(ctx, cash.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, s.PaymentMethods().Delete(ctx, cash.ID))
}

func TestProviderDeleteRestrictedByTransactions(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c := &entity.Category{Code: "C", Name: "c"}
	require.NoError(t, s.Categories().Create(ctx, c))
	p := &entity.Provider{CompanyName: "Acme", CategoryID: c.ID}
	require.NoError(t, s.Providers().Create(ctx, p))
	u := &entity.User{Email: "a@b.c", Role: entity.RoleUser}
	require.NoError(t, s.Users().Create(ctx, u))

	tx := &entity.Transaction{Date: time.Now(), Amount: decimal.NewFromInt(10), ProviderID: p.ID, UserID: u.ID}
	require.NoError(t, s.Transactions().Create(ctx, tx))

	requireConstraint(t, s.Providers().Delete(ctx, p.ID), repository.ForeignKeyViolation, "transactions_provider_id_fkey")
	requireConstraint(t, s.Users().Delete(ctx, u.ID), repository.ForeignKeyViolation, "transactions_user_id_fkey")

	require.NoError(t, s.Transactions().Delete(ctx, tx.ID))
	require.NoError(t, s.Providers().Delete(ctx, p.ID))
	require.NoError(t, s.Users().Delete(ctx, u.ID))
}

func TestListSearchOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	addrs := s.Addresses()
	for _, street := range []string{"Mitre", "Belgrano", "San Martin", "Alem", "Belgrano"} {
		require.NoError(t, addrs.Create(ctx, &entity.Address{Street: street, Number: "1", City: "Rosario", State: "SF", ZipCode: "2000"}))
	}

	rows, err := addrs.List(ctx, repository.ListParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 5)
	var streets []string
	for _, a := range rows {
		streets = append(streets, a.Street)
	}
	assert.Equal(t, []string{"Alem", "Belgrano", "Belgrano", "Mitre", "San Martin"}, streets)
	assert.Less(t, rows[1].ID, rows[2].ID)

	rows, err = addrs.List(ctx, repository.ListParams{Search: "BELG", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	n, err := addrs.Count(ctx, "belg")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rows, err = addrs.List(ctx, repository.ListParams{Offset: 4, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	rows, err = addrs.List(ctx, repository.ListParams{Offset: 10, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
	rows, err = addrs.List(ctx, repository.ListParams{Offset: -16, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTransactionSearchByProviderAndDateOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c := &entity.Category{Code: "C", Name: "c"}
	require.NoError(t, s.Categories().Create(ctx, c))
	acme := &entity.Provider{CompanyName: "Acme", CategoryID: c.ID}
	globex := &entity.Provider{CompanyName: "Globex", CategoryID: c.ID}
	require.NoError(t, s.Providers().Create(ctx, acme))
	require.NoError(t, s.Providers().Create(ctx, globex))
	u := &entity.User{Email: "a@b.c"}
	require.NoError(t, s.Users().Create(ctx, u))

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, pid := range []int64{acme.ID, globex.ID, acme.ID} {
		require.NoError(t, s.Transactions().Create(ctx, &entity.Transaction{
			Date:          day.AddDate(0, 0, i),
			ReceiptNumber: strPtr("R-" + string(rune('A'+i))),
			Amount:        decimal.NewFromInt(1),
			ProviderID:    pid,
			UserID:        u.ID,
		}))
	}

	rows, err := s.Transactions().List(ctx, repository.ListParams{Search: "acme", Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Date.After(rows[1].Date))

	rows, err = s.Transactions().List(ctx, repository.ListParams{Search: "r-b", Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, globex.ID, rows[0].ProviderID)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c := &entity.Category{Code: "C", Name: "before"}
	require.NoError(t, s.Categories().Create(ctx, c))

	got, err := s.Categories().GetByID(ctx, c.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := s.Categories().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "before", again.Name)
}
