package repository

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
)

// TransactionRepository searches receipt number and the provider's company name;
// orders by date, newest first.
type TransactionRepository interface {
	Create(ctx context.Context, t *entity.Transaction) error
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	List(ctx context.Context, p ListParams) ([]*entity.Transaction, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, t *entity.Transaction) error
	Delete(ctx context.Context, id int64) error

	CountByProvider(ctx context.Context, providerID int64) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CountByPaymentMethod(ctx context.Context, paymentMethodID int64) (int64, error)
}
