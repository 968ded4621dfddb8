package repository

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
)

// PaymentMethodRepository searches name; orders by id.
type PaymentMethodRepository interface {
	Create(ctx context.Context, p *entity.PaymentMethod) error
	GetByID(ctx context.Context, id int64) (*entity.PaymentMethod, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.PaymentMethod, error)
	GetByName(ctx context.Context, name string) (*entity.PaymentMethod, error)
	List(ctx context.Context, p ListParams) ([]*entity.PaymentMethod, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, p *entity.PaymentMethod) error
	Delete(ctx context.Context, id int64) error

	// ListByProviders returns the payment methods joined to each provider, keyed by provider id.
	ListByProviders(ctx context.Context, providerIDs []int64) (map[int64][]*entity.PaymentMethod, error)
	// CountProviders counts provider join rows referencing the payment method.
	CountProviders(ctx context.Context, id int64) (int64, error)
}
