package application

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAmounts(t *testing.T) {
	d := decimal.RequireFromString
	cases := []struct {
		name   string
		amount string
		paid   *string
		ok     bool
	}{
		{"paid above amount", "100.00", ptr("100.01"), false},
		{"paid equal to amount", "100.00", ptr("100.00"), true},
		{"paid below amount", "100.00", ptr("0.01"), true},
		{"paid absent", "100.00", nil, true},
		{"equal with different scale", "100", ptr("100.000"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var paid *decimal.Decimal
			if tc.paid != nil {
				paid = ptr(d(*tc.paid))
			}
			err := ValidateAmounts(d(tc.amount), paid)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAmount)
			}
		})
	}
}
