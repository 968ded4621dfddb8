package repository

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Search covers first name, last name and email; newest users first.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, p ListParams) ([]*entity.User, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
}
