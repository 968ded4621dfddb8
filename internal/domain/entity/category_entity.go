package entity

import "time"

// Category classifies providers. Code is unique across all categories.
type Category struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Category) GetID() int64 { return c.ID }
