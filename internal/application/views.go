package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
)

// NamedRef is the {id, name} summary used for invoice types, payment methods
// and categories embedded in other projections.
type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type AddressSummary struct {
	ID      int64  `json:"id"`
	Street  string `json:"street"`
	Number  string `json:"number"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode,omitempty"`
}

type CategorySummary struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type ProviderView struct {
	ID             int64           `json:"id"`
	CompanyName    string          `json:"companyName"`
	CUIT           string          `json:"cuit"`
	Responsable    *string         `json:"responsable"`
	Phone          *string         `json:"phone"`
	Email          *string         `json:"email"`
	CBU            *string         `json:"cbu"`
	Alias          *string         `json:"alias"`
	Comment        *string         `json:"comment"`
	Address        *AddressSummary `json:"address"`
	InvoiceType    *NamedRef       `json:"invoiceType"`
	Category       *NamedRef       `json:"category"`
	PaymentMethods []NamedRef      `json:"paymentMethods"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type ProviderSummary struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"companyName"`
	CUIT        string `json:"cuit"`
}

type UserView struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type UserSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type DeletedUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type TransactionView struct {
	ID             int64                    `json:"id"`
	Date           time.Time                `json:"date"`
	DueDate        *time.Time               `json:"dueDate"`
	ReceiptNumber  *string                  `json:"receiptNumber"`
	Type           entity.TransactionType   `json:"type"`
	Amount         decimal.Decimal          `json:"amount"`
	PaidAmount     *decimal.Decimal         `json:"paidAmount"`
	Status         entity.TransactionStatus `json:"status"`
	MatchesInvoice bool                     `json:"matchesInvoice"`
	Comment        *string                  `json:"comment"`
	Provider       *ProviderSummary         `json:"provider"`
	User           *UserSummary             `json:"user"`
	PaymentMethod  *NamedRef                `json:"paymentMethod"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

type TransactionSummary struct {
	ID            int64           `json:"id"`
	ReceiptNumber *string         `json:"receiptNumber"`
	Amount        decimal.Decimal `json:"amount"`
}

func toUserView(u *entity.User) *UserView {
	return &UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toAddressSummary(a *entity.Address) *AddressSummary {
	return &AddressSummary{ID: a.ID, Street: a.Street, Number: a.Number, City: a.City, State: a.State, ZipCode: a.ZipCode}
}

// index keys rows by id.
func index[T identifiable](rows []T) map[int64]T {
	m := make(map[int64]T, len(rows))
	for _, r := range rows {
		m[r.GetID()] = r
	}
	return m
}

// uniqueIDs collects the distinct non-nil ids.
func uniqueIDs(ids ...*int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, *id)
	}
	return out
}
