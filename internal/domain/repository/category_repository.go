package repository

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
)

// CategoryRepository searches code and name; orders by code.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.Category, error)
	GetByCode(ctx context.Context, code string) (*entity.Category, error)
	List(ctx context.Context, p ListParams) ([]*entity.Category, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id int64) error
}
