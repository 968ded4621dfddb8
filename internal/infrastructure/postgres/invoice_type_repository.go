package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

const invoiceTypeColumns = `id, name, created_at, updated_at`

type InvoiceTypeRepository struct {
	pool *pgxpool.Pool
}

func NewInvoiceTypeRepository(pool *pgxpool.Pool) *InvoiceTypeRepository {
	return &InvoiceTypeRepository{pool: pool}
}

func scanInvoiceType(row pgx.Row) (*entity.InvoiceType, error) {
	it := &entity.InvoiceType{}
	err := row.Scan(&it.ID, &it.Name, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *InvoiceTypeRepository) Create(ctx context.Context, it *entity.InvoiceType) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO invoice_types (name) VALUES ($1)
		RETURNING id, created_at, updated_at
	`, it.Name)
	return translate(row.Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt))
}

func (r *InvoiceTypeRepository) GetByID(ctx context.Context, id int64) (*entity.InvoiceType, error) {
	it, err := scanInvoiceType(r.pool.QueryRow(ctx, `SELECT `+invoiceTypeColumns+` FROM invoice_types WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return it, nil
}

func (r *InvoiceTypeRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entity.InvoiceType, error) {
	if len(ids) == 0 {
		return []*entity.InvoiceType{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+invoiceTypeColumns+` FROM invoice_types WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanInvoiceType)
}

func (r *InvoiceTypeRepository) GetByName(ctx context.Context, name string) (*entity.InvoiceType, error) {
	it, err := scanInvoiceType(r.pool.QueryRow(ctx, `SELECT `+invoiceTypeColumns+` FROM invoice_types WHERE name = $1`, name))
	if err != nil {
		return nil, translate(err)
	}
	return it, nil
}

func (r *InvoiceTypeRepository) List(ctx context.Context, p repository.ListParams) ([]*entity.InvoiceType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceTypeColumns+` FROM invoice_types
		WHERE ($1 = '' OR name ILIKE $2)
		ORDER BY name ASC, id ASC
		OFFSET $3 LIMIT $4
	`, p.Search, pattern(p.Search), p.Offset, limit(p))
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanInvoiceType)
}

func (r *InvoiceTypeRepository) Count(ctx context.Context, search string) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM invoice_types WHERE ($1 = '' OR name ILIKE $2)`, search, pattern(search))
}

func (r *InvoiceTypeRepository) Update(ctx context.Context, it *entity.InvoiceType) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE invoice_types SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, it.ID, it.Name)
	return translate(row.Scan(&it.CreatedAt, &it.UpdatedAt))
}

func (r *InvoiceTypeRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, `DELETE FROM invoice_types WHERE id = $1`, id)
}
