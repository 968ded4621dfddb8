package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

const (
	transactionColumns = `t.id, t.date, t.due_date, t.receipt_number, t.type, t.amount, t.paid_amount, t.status,
		t.matches_invoice, t.comment, t.provider_id, t.user_id, t.payment_method_id, t.created_at, t.updated_at`
	transactionFrom   = `transactions t JOIN providers p ON p.id = t.provider_id`
	transactionSearch = `($1 = '' OR t.receipt_number ILIKE $2 OR p.company_name ILIKE $2)`
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	t := &entity.Transaction{}
	var (
		txType, status string
		paid           decimal.NullDecimal
	)
	err := row.Scan(&t.ID, &t.Date, &t.DueDate, &t.ReceiptNumber, &txType, &t.Amount, &paid, &status,
		&t.MatchesInvoice, &t.Comment, &t.ProviderID, &t.UserID, &t.PaymentMethodID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Type = entity.TransactionType(txType)
	t.Status = entity.TransactionStatus(status)
	if paid.Valid {
		t.PaidAmount = &paid.Decimal
	}
	return t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (date, due_date, receipt_number, type, amount, paid_amount, status,
			matches_invoice, comment, provider_id, user_id, payment_method_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, t.Date, t.DueDate, t.ReceiptNumber, string(t.Type), t.Amount, nullDecimal(t.PaidAmount), string(t.Status),
		t.MatchesInvoice, t.Comment, t.ProviderID, t.UserID, t.PaymentMethodID)
	return translate(row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt))
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	t, err := scanTransaction(r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions t WHERE t.id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *TransactionRepository) List(ctx context.Context, p repository.ListParams) ([]*entity.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM `+transactionFrom+`
		WHERE `+transactionSearch+`
		ORDER BY t.date DESC, t.id ASC
		OFFSET $3 LIMIT $4
	`, p.Search, pattern(p.Search), p.Offset, limit(p))
	if err != nil {
		return nil, translate(err)
	}
	return collect(rows, scanTransaction)
}

func (r *TransactionRepository) Count(ctx context.Context, search string) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM `+transactionFrom+` WHERE `+transactionSearch, search, pattern(search))
}

func (r *TransactionRepository) Update(ctx context.Context, t *entity.Transaction) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET date = $2, due_date = $3, receipt_number = $4, type = $5, amount = $6, paid_amount = $7, status = $8,
			matches_invoice = $9, comment = $10, provider_id = $11, user_id = $12, payment_method_id = $13,
			updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, t.ID, t.Date, t.DueDate, t.ReceiptNumber, string(t.Type), t.Amount, nullDecimal(t.PaidAmount), string(t.Status),
		t.MatchesInvoice, t.Comment, t.ProviderID, t.UserID, t.PaymentMethodID)
	return translate(row.Scan(&t.CreatedAt, &t.UpdatedAt))
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, `DELETE FROM transactions WHERE id = $1`, id)
}

func (r *TransactionRepository) CountByProvider(ctx context.Context, providerID int64) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM transactions WHERE provider_id = $1`, providerID)
}

func (r *TransactionRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM transactions WHERE user_id = $1`, userID)
}

func (r *TransactionRepository) CountByPaymentMethod(ctx context.Context, paymentMethodID int64) (int64, error) {
	return countWhere(ctx, r.pool, `SELECT count(*) FROM transactions WHERE payment_method_id = $1`, paymentMethodID)
}
