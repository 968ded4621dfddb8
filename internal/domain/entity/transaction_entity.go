package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionExpense TransactionType = "EXPENSE"
	TransactionIncome  TransactionType = "INCOME"
)

// TransactionStatus is caller-asserted; no transition rules apply between values.
type TransactionStatus string

const (
	StatusPending       TransactionStatus = "PENDING"
	StatusPartiallyPaid TransactionStatus = "PARTIALLY_PAID"
	StatusPaid          TransactionStatus = "PAID"
	StatusCancelled     TransactionStatus = "CANCELLED"
	StatusExpired       TransactionStatus = "EXPIRED"
)

type Transaction struct {
	ID              int64
	Date            time.Time
	DueDate         *time.Time
	ReceiptNumber   *string
	Type            TransactionType
	Amount          decimal.Decimal
	PaidAmount      *decimal.Decimal
	Status          TransactionStatus
	MatchesInvoice  bool
	Comment         *string
	ProviderID      int64
	UserID          int64
	PaymentMethodID *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (t *Transaction) GetID() int64 { return t.ID }
