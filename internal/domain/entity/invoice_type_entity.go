package entity

import "time"

type InvoiceType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *InvoiceType) GetID() int64 { return i.ID }
