package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

const (
	providerColumns = `p.id, p.company_name, COALESCE(p.cuit, ''), p.responsable, p.email, p.phone, p.cbu, p.alias, p.comment,
		p.category_id, p.address_id, p.invoice_type_id,
		ARRAY(SELECT payment_method_id FROM provider_payment_methods WHERE provider_id = p.id ORDER BY payment_method_id),
		p.created_at, p.updated_at`
	providerSearch = `($1 = '' OR p.company_name ILIKE $2 OR p.cuit ILIKE $2 OR p.responsable ILIKE $2 OR p.email ILIKE $2)`
)

type ProviderRepository struct {
	pool *pgxpool.Pool
}

func NewProviderRepository(pool *pgxpool.Pool) *ProviderRepository {
	return &ProviderRepository{pool: pool}
}

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	p := &entity.Provider{}
	err := row.Scan(&p.ID, &p.CompanyName, &p.CUIT, &p.Responsable, &p.Email, &p.Phone, &p.CBU, &p.Alias, &p.Comment,
		&p.CategoryID, &p.AddressID, &p.InvoiceTypeID, &p.PaymentMethodIDs, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts the provider row and its payment method links in one transaction.
func (r *ProviderRepository) Create(ctx context.Context, p *entity.Provider) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO providers (company_name, cuit, responsable, email, phone, cbu, alias, comment,
				category_id, address_id, invoice_type_id)
			VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, created_at, updated_at
		`, p.CompanyName, p.CUIT, p.Responsable, p.Email, p.Phone, p.CBU, p.Alias, p.Comment,
			p.CategoryID, p.AddressID, p.InvoiceTypeID)
		if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		return linkPaymentMethods(ctx, tx, p.ID, p.PaymentMethodIDs)
	})
	return translate(err)
}

func linkPaymentMethods(ctx context.Context, tx pgx.Tx, providerID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO provider_payment_methods (provider_id, payment_method_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, providerID, ids)
	return err
}

func (r *ProviderRepository) GetByID(ctx context.Context, id int64) (*entity.Provider, error) {
	p, err := scanProvider(r.pool.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers p WHERE p.id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *ProviderRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entity.Provider, error) {
	if len(ids) == 0 {
		return []*entity.Provider{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+providerColumns+` FROM providers p WHERE p.id = ANY($1)`, ids)
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanProvider)
}

func (r *ProviderRepository) GetByCUIT(ctx context.Context, cuit string) (*entity.Provider, error) {
	p, err := scanProvider(r.pool.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers p WHERE p.cuit = $1`, cuit))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *ProviderRepository) List(ctx context.Context, lp repository.ListParams) ([]*entity.Provider, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+providerColumns+` FROM providers p
		WHERE `+providerSearch+`
		ORDER BY p.company_name ASC, p.id ASC
		OFFSET $3 LIMIT $4
	`, lp.Search, pattern(lp.Search), lp.Offset, limit(lp))
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanProvider)
}

func (r *ProviderRepository) Count(ctx context.Context, search string) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM providers p WHERE `+providerSearch, search, pattern(search))
}

func (r *ProviderRepository) Update(ctx context.Context, p *entity.Provider, replacePaymentMethods bool) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE providers
			SET company_name = $2, cuit = NULLIF($3, ''), responsable = $4, email = $5, phone = $6, cbu = $7, alias = $8,
				comment = $9, category_id = $10, address_id = $11, invoice_type_id = $12, updated_at = now()
			WHERE id = $1
			RETURNING created_at, updated_at
		`, p.ID, p.CompanyName, p.CUIT, p.Responsable, p.Email, p.Phone, p.CBU, p.Alias, p.Comment,
			p.CategoryID, p.AddressID, p.InvoiceTypeID)
		if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		if !replacePaymentMethods {
			return tx.QueryRow(ctx, `
				SELECT ARRAY(SELECT payment_method_id FROM provider_payment_methods WHERE provider_id = $1 ORDER BY payment_method_id)
			`, p.ID).Scan(&p.PaymentMethodIDs)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM provider_payment_methods WHERE provider_id = $1`, p.ID); err != nil {
			return err
		}
		return linkPaymentMethods(ctx, tx, p.ID, p.PaymentMethodIDs)
	})
	return translate(err)
}

// Delete removes the provider; its payment method links go with it (ON DELETE CASCADE).
func (r *ProviderRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, `DELETE FROM providers WHERE id = $1`, id)
}

func (r *ProviderRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM providers WHERE category_id = $1`, categoryID)
}

func (r *ProviderRepository) CountByAddress(ctx context.Context, addressID int64) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM providers WHERE address_id = $1`, addressID)
}

func (r *ProviderRepository) CountByInvoiceType(ctx context.Context, invoiceTypeID int64) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM providers WHERE invoice_type_id = $1`, invoiceTypeID)
}
