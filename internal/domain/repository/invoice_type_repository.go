package repository

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
)

// InvoiceTypeRepository searches and orders by name.
type InvoiceTypeRepository interface {
	Create(ctx context.Context, i *entity.InvoiceType) error
	GetByID(ctx context.Context, id int64) (*entity.InvoiceType, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.InvoiceType, error)
	GetByName(ctx context.Context, name string) (*entity.InvoiceType, error)
	List(ctx context.Context, p ListParams) ([]*entity.InvoiceType, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, i *entity.InvoiceType) error
	Delete(ctx context.Context, id int64) error
}
