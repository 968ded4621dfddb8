package application

import "github.com/shopspring/decimal"

// ValidateAmounts enforces paidAmount <= amount. A missing paidAmount always passes.
func ValidateAmounts(amount decimal.Decimal, paidAmount *decimal.Decimal) error {
	if paidAmount == nil {
		return nil
	}
	if paidAmount.GreaterThan(amount) {
		return ErrInvalidAmount
	}
	return nil
}

// moneyScale matches the NUMERIC(12,2) columns amounts are stored in.
const moneyScale = 2

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyScale)
}

func roundMoneyPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := roundMoney(*d)
	return &r
}
