package repository

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
)

// ProviderRepository searches company name, cuit, responsable and email;
// orders by company name.
type ProviderRepository interface {
	// Create inserts the provider and its payment method join rows atomically.
	Create(ctx context.Context, p *entity.Provider) error
	GetByID(ctx context.Context, id int64) (*entity.Provider, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.Provider, error)
	GetByCUIT(ctx context.Context, cuit string) (*entity.Provider, error)
	List(ctx context.Context, p ListParams) ([]*entity.Provider, error)
	Count(ctx context.Context, search string) (int64, error)
	// Update writes the provider columns. When replacePaymentMethods is set the
	// join rows are replaced by p.PaymentMethodIDs in the same unit of work.
	Update(ctx context.Context, p *entity.Provider, replacePaymentMethods bool) error
	Delete(ctx context.Context, id int64) error

	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
	CountByAddress(ctx context.Context, addressID int64) (int64, error)
	CountByInvoiceType(ctx context.Context, invoiceTypeID int64) (int64, error)
}
