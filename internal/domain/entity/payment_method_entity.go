package entity

type PaymentMethod struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p *PaymentMethod) GetID() int64 { return p.ID }
