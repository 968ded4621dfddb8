package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

const (
	addressColumns = `id, street, number, apartment_or_floor, city, state, zip_code, created_at, updated_at`
	addressSearch  = `($1 = '' OR street ILIKE $2 OR city ILIKE $2 OR state ILIKE $2 OR zip_code ILIKE $2)`
)

type AddressRepository struct {
	pool *pgxpool.Pool
}

func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

func scanAddress(row pgx.Row) (*entity.Address, error) {
	a := &entity.Address{}
	err := row.Scan(&a.ID, &a.Street, &a.Number, &a.ApartmentOrFloor, &a.City, &a.State, &a.ZipCode, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *AddressRepository) Create(ctx context.Context, a *entity.Address) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO addresses (street, number, apartment_or_floor, city, state, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, a.Street, a.Number, a.ApartmentOrFloor, a.City, a.State, a.ZipCode)
	return translate(row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AddressRepository) GetByID(ctx context.Context, id int64) (*entity.Address, error) {
	a, err := scanAddress(r.pool.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func (r *AddressRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entity.Address, error) {
	if len(ids) == 0 {
		return []*entity.Address{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanAddress)
}

func (r *AddressRepository) List(ctx context.Context, p repository.ListParams) ([]*entity.Address, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+addressColumns+` FROM addresses
		WHERE `+addressSearch+`
		ORDER BY street ASC, id ASC
		OFFSET $3 LIMIT $4
	`, p.Search, pattern(p.Search), p.Offset, limit(p))
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanAddress)
}

func (r *AddressRepository) Count(ctx context.Context, search string) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM addresses WHERE `+addressSearch, search, pattern(search))
}

func (r *AddressRepository) Update(ctx context.Context, a *entity.Address) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE addresses
		SET street = $2, number = $3, apartment_or_floor = $4, city = $5, state = $6, zip_code = $7, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, a.ID, a.Street, a.Number, a.ApartmentOrFloor, a.City, a.State, a.ZipCode)
	return translate(row.Scan(&a.CreatedAt, &a.UpdatedAt))
}

func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, `DELETE FROM addresses WHERE id = $1`, id)
}
