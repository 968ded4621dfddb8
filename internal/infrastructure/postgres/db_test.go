package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), repository.ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("scan: %w", pgx.ErrNoRows)), repository.ErrNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "categories_code_key", TableName: "categories"}
	var ce *repository.ConstraintError
	require.True(t, errors.As(translate(unique), &ce))
	assert.Equal(t, repository.UniqueViolation, ce.Kind)
	assert.Equal(t, "categories_code_key", ce.Constraint)
	assert.Equal(t, "categories", ce.Table)
	assert.ErrorIs(t, ce, unique)

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "providers_category_id_fkey", TableName: "providers"}
	require.True(t, errors.As(translate(fk), &ce))
	assert.Equal(t, repository.ForeignKeyViolation, ce.Kind)
	assert.Equal(t, "providers", ce.Table)

	other := &pgconn.PgError{Code: "40001"}
	assert.Same(t, other, translate(other))
}

func TestPattern(t *testing.T) {
	assert.Equal(t, "%acme%", pattern("acme"))
	assert.Equal(t, `%50\%\_off%`, pattern("50%_off"))
	assert.Equal(t, `%a\\b%`, pattern(`a\b`))
}

func TestLimit(t *testing.T) {
	assert.Nil(t, limit(repository.ListParams{}))
	assert.Equal(t, 10, limit(repository.ListParams{Limit: 10}))
}
