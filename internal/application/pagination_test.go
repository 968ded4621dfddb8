package application

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeta(t *testing.T) {
	assert.Equal(t, 3, NewMeta(25, 1, 10).TotalPages)
	assert.Equal(t, 2, NewMeta(20, 1, 10).TotalPages)
	assert.Equal(t, 0, NewMeta(0, 1, 10).TotalPages)
	assert.Equal(t, 1, NewMeta(1, 1, 10).TotalPages)
}

func TestFindAllPagesThroughRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 25; i++ {
		_, err := f.addresses.Create(ctx, CreateAddressInput{
			Street: fmt.Sprintf("Street %02d", i), Number: "1", City: "Rosario", State: "Santa Fe", ZipCode: "2000",
		})
		require.NoError(t, err)
	}

	first, err := f.addresses.FindAll(ctx, PageQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, first.Data, 10)
	assert.Equal(t, Meta{Total: 25, Page: 1, Limit: 10, TotalPages: 3}, first.Meta)
	assert.Equal(t, "Street 00", first.Data[0].Street)

	last, err := f.addresses.FindAll(ctx, PageQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, last.Data, 5)
	assert.Equal(t, "Street 24", last.Data[4].Street)

	beyond, err := f.addresses.FindAll(ctx, PageQuery{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Data)
	assert.Equal(t, int64(25), beyond.Meta.Total)
}

func TestFindAllDefaultsAndSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, code := range []string{"ELEC", "GAS", "WATER", "TEL"} {
		f.category(t, code)
	}

	res, err := f.categories.FindAll(ctx, PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, res.Meta.Page)
	assert.Equal(t, DefaultLimit, res.Meta.Limit)
	require.Len(t, res.Data, 4)
	assert.Equal(t, "ELEC", res.Data[0].Code)

	res, err = f.categories.FindAll(ctx, PageQuery{Search: "wat"})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "WATER", res.Data[0].Code)
	assert.Equal(t, int64(1), res.Meta.Total)
	assert.Equal(t, 1, res.Meta.TotalPages)
}

func TestFindAllPageBeyondIntRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, code := range []string{"ELEC", "GAS", "WATER"} {
		f.category(t, code)
	}

	page := math.MaxInt64 / 5
	res, err := f.categories.FindAll(ctx, PageQuery{Page: page, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, Meta{Total: 3, Page: page, Limit: 10, TotalPages: 1}, res.Meta)

	providers, err := f.providers.FindAll(ctx, PageQuery{Page: page, Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, providers.Data)
	assert.Equal(t, int64(0), providers.Meta.Total)
}
