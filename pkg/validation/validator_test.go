package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaquinVilchez/business-manager-api/pkg/patch"
)

type providerForm struct {
	CUIT  string  `json:"cuit" validate:"required,cuit"`
	CBU   *string `json:"cbu" validate:"omitempty,cbu"`
	Alias *string `json:"alias" validate:"omitempty,alias"`
}

type amountForm struct {
	Amount     decimal.Decimal        `json:"amount" validate:"gt=0,lte=999999999.99"`
	PaidAmount *decimal.Decimal       `json:"paidAmount" validate:"omitempty,gt=0"`
	AddressID  patch.Nullable[int64]  `json:"addressId" validate:"omitempty,gt=0"`
	Comment    patch.Nullable[string] `json:"comment" validate:"omitempty,max=5"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func strPtr(s string) *string { return &s }

func TestDomainTags(t *testing.T) {
	v := newValidator()
	assert.NoError(t, v.Struct(providerForm{CUIT: "30-12345678-9", CBU: strPtr("0123456789012345678901"), Alias: strPtr("acme.pagos")}))

	err := v.Struct(providerForm{CUIT: "30123456789", CBU: strPtr("123"), Alias: strPtr("a b")})
	require.Error(t, err)
	details := ToDetails(err)
	assert.Equal(t, "must have the format XX-XXXXXXXX-X", details["cuit"])
	assert.Equal(t, "must be exactly 22 digits", details["cbu"])
	assert.Contains(t, details, "alias")
}

func TestDecimalAndNullableBounds(t *testing.T) {
	v := newValidator()
	paid := decimal.RequireFromString("0.01")
	assert.NoError(t, v.Struct(amountForm{Amount: decimal.RequireFromString("100.00"), PaidAmount: &paid}))
	assert.NoError(t, v.Struct(amountForm{Amount: decimal.RequireFromString("1"), AddressID: patch.Null[int64]()}))

	err := v.Struct(amountForm{Amount: decimal.Zero})
	require.Error(t, err)
	assert.Contains(t, ToDetails(err), "amount")

	err = v.Struct(amountForm{Amount: decimal.RequireFromString("1000000000")})
	require.Error(t, err)

	err = v.Struct(amountForm{Amount: decimal.NewFromInt(1), AddressID: patch.Of(int64(-1)), Comment: patch.Of("too long")})
	require.Error(t, err)
	details := ToDetails(err)
	assert.Contains(t, details, "addressId")
	assert.Contains(t, details, "comment")
}
