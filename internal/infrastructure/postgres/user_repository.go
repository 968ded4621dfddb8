package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

const (
	userColumns = `id, first_name, last_name, email, password, role, created_at, updated_at`
	userSearch  = `($1 = '' OR first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2)`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.FirstName, u.LastName, u.Email, u.Password, string(u.Role))
	return translate(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanUser)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, p repository.ListParams) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE `+userSearch+`
		ORDER BY created_at DESC, id ASC
		OFFSET $3 LIMIT $4
	`, p.Search, pattern(p.Search), p.Offset, limit(p))
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanUser)
}

func (r *UserRepository) Count(ctx context.Context, search string) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM users WHERE `+userSearch, search, pattern(search))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, password = $5, role = $6, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, u.ID, u.FirstName, u.LastName, u.Email, u.Password, string(u.Role))
	return translate(row.Scan(&u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, `DELETE FROM users WHERE id = $1`, id)
}
