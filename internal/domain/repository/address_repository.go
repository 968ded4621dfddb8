package repository

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
)

// AddressRepository searches street, city, state and zip code; orders by street.
type AddressRepository interface {
	Create(ctx context.Context, a *entity.Address) error
	GetByID(ctx context.Context, id int64) (*entity.Address, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.Address, error)
	List(ctx context.Context, p ListParams) ([]*entity.Address, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, a *entity.Address) error
	Delete(ctx context.Context, id int64) error
}
