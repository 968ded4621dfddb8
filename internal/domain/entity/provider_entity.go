package entity

import "time"

// Provider is a vendor of the business. CategoryID is mandatory,
// AddressID and InvoiceTypeID are optional relations.
// PaymentMethodIDs mirrors the provider_payment_methods join rows.
type Provider struct {
	ID               int64
	CompanyName      string
	CUIT             string
	Responsable      *string
	Email            *string
	Phone            *string
	CBU              *string
	Alias            *string
	Comment          *string
	CategoryID       int64
	AddressID        *int64
	InvoiceTypeID    *int64
	PaymentMethodIDs []int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p *Provider) GetID() int64 { return p.ID }
