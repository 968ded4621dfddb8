package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

const (
	categoryColumns = `id, code, name, created_at, updated_at`
	categorySearch  = `($1 = '' OR code ILIKE $2 OR name ILIKE $2)`
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	c := &entity.Category{}
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (code, name) VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, c.Code, c.Name)
	return translate(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entity.Category, error) {
	if len(ids) == 0 {
		return []*entity.Category{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanCategory)
}

func (r *CategoryRepository) GetByCode(ctx context.Context, code string) (*entity.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE code = $1`, code))
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context, p repository.ListParams) ([]*entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE `+categorySearch+`
		ORDER BY code ASC, id ASC
		OFFSET $3 LIMIT $4
	`, p.Search, pattern(p.Search), p.Offset, limit(p))
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanCategory)
}

func (r *CategoryRepository) Count(ctx context.Context, search string) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM categories WHERE `+categorySearch, search, pattern(search))
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE categories SET code = $2, name = $3, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, c.ID, c.Code, c.Name)
	return translate(row.Scan(&c.CreatedAt, &c.UpdatedAt))
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, `DELETE FROM categories WHERE id = $1`, id)
}
