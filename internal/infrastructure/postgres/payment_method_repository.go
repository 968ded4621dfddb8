package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type PaymentMethodRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentMethodRepository(pool *pgxpool.Pool) *PaymentMethodRepository {
	return &PaymentMethodRepository{pool: pool}
}

func scanPaymentMethod(row pgx.Row) (*entity.PaymentMethod, error) {
	pm := &entity.PaymentMethod{}
	err := row.Scan(&pm.ID, &pm.Name)
	return pm, err
}

func (r *PaymentMethodRepository) Create(ctx context.Context, pm *entity.PaymentMethod) error {
	row := r.pool.QueryRow(ctx, `INSERT INTO payment_methods (name) VALUES ($1) RETURNING id`, pm.Name)
	return translate(row.Scan(&pm.ID))
}

func (r *PaymentMethodRepository) GetByID(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	pm, err := scanPaymentMethod(r.pool.QueryRow(ctx, `SELECT id, name FROM payment_methods WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return pm, nil
}

func (r *PaymentMethodRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entity.PaymentMethod, error) {
	if len(ids) == 0 {
		return []*entity.PaymentMethod{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM payment_methods WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanPaymentMethod)
}

func (r *PaymentMethodRepository) GetByName(ctx context.Context, name string) (*entity.PaymentMethod, error) {
	pm, err := scanPaymentMethod(r.pool.QueryRow(ctx, `SELECT id, name FROM payment_methods WHERE name = $1`, name))
	if err != nil {
		return nil, translate(err)
	}
	return pm, nil
}

func (r *PaymentMethodRepository) List(ctx context.Context, p repository.ListParams) ([]*entity.PaymentMethod, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name FROM payment_methods
		WHERE ($1 = '' OR name ILIKE $2)
		ORDER BY id ASC
		OFFSET $3 LIMIT $4
	`, p.Search, pattern(p.Search), p.Offset, limit(p))
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanPaymentMethod)
}

func (r *PaymentMethodRepository) Count(ctx context.Context, search string) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM payment_methods WHERE ($1 = '' OR name ILIKE $2)`, search, pattern(search))
}

func (r *PaymentMethodRepository) Update(ctx context.Context, pm *entity.PaymentMethod) error {
	return execOne(ctx, r.pool, `UPDATE payment_methods SET name = $2 WHERE id = $1`, pm.ID, pm.Name)
}

func (r *PaymentMethodRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, `DELETE FROM payment_methods WHERE id = $1`, id)
}

func (r *PaymentMethodRepository) ListByProviders(ctx context.Context, providerIDs []int64) (map[int64][]*entity.PaymentMethod, error) {
	out := make(map[int64][]*entity.PaymentMethod, len(providerIDs))
	if len(providerIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT ppm.provider_id, pm.id, pm.name
		FROM provider_payment_methods ppm
		JOIN payment_methods pm ON pm.id = ppm.payment_method_id
		WHERE ppm.provider_id = ANY($1)
		ORDER BY ppm.provider_id, pm.id
	`, providerIDs)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	for rows.Next() {
		var providerID int64
		pm := &entity.PaymentMethod{}
		if err := rows.Scan(&providerID, &pm.ID, &pm.Name); err != nil {
			return nil, translate(err)
		}
		out[providerID] = append(out[providerID], pm)
	}
	return out, translate(rows.Err())
}

func (r *PaymentMethodRepository) CountProviders(ctx context.Context, id int64) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM provider_payment_methods WHERE payment_method_id = $1`, id)
}
