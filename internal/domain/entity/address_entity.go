package entity

import "time"

type Address struct {
	ID               int64     `json:"id"`
	Street           string    `json:"street"`
	Number           string    `json:"number"`
	ApartmentOrFloor *string   `json:"apartmentOrFloor"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	ZipCode          string    `json:"zipCode"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (a *Address) GetID() int64 { return a.ID }
