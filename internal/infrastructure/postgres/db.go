// Package postgres implements the repository ports on top of pgx.
package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func NewPool(ctx context.Context, dsn string, maxConns, minConns int32, maxConnLife time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = maxConnLife
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Store hands out the pgx-backed repositories sharing one pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

func (s *Store) Addresses() repository.AddressRepository           { return &AddressRepository{pool: s.pool} }
func (s *Store) Categories() repository.CategoryRepository         { return &CategoryRepository{pool: s.pool} }
func (s *Store) InvoiceTypes() repository.InvoiceTypeRepository     { return &InvoiceTypeRepository{pool: s.pool} }
func (s *Store) PaymentMethods() repository.PaymentMethodRepository { return &PaymentMethodRepository{pool: s.pool} }
func (s *Store) Providers() repository.ProviderRepository           { return &ProviderRepository{pool: s.pool} }
func (s *Store) Transactions() repository.TransactionRepository     { return &TransactionRepository{pool: s.pool} }
func (s *Store) Users() repository.UserRepository                   { return &UserRepository{pool: s.pool} }

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &repository.ConstraintError{Kind: repository.UniqueViolation, Constraint: pgErr.ConstraintName, Table: pgErr.TableName, Err: err}
		case pgForeignKeyViolation:
			return &repository.ConstraintError{Kind: repository.ForeignKeyViolation, Constraint: pgErr.ConstraintName, Table: pgErr.TableName, Err: err}
		}
	}
	return err
}

// execOne runs a write that must touch exactly one row.
func execOne(ctx context.Context, pool *pgxpool.Pool, sql string, args ...any) error {
	tag, err := pool.Exec(ctx, sql, args...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func countWhere(ctx context.Context, pool *pgxpool.Pool, sql string, args ...any) (int64, error) {
	var n int64
	if err := pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// pattern turns a search term into an ILIKE substring pattern with wildcards escaped.
func pattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

// limit maps a non-positive limit to "no limit".
func limit(p repository.ListParams) any {
	if p.Limit <= 0 {
		return nil
	}
	return p.Limit
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	out := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, translate(err)
		}
		out = append(out, v)
	}
	return out, translate(rows.Err())
}
