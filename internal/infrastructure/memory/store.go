// Package memory is an in-process implementation of every repository port.
// It enforces the same unique and foreign key constraints as the Postgres
// schema and reports them with the same constraint names.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type table[T any] struct {
	seq  int64
	rows map[int64]*T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[int64]*T{}}
}

func (t *table[T]) next() int64 {
	t.seq++
	return t.seq
}

func (t *table[T]) all() []*T {
	out := make([]*T, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	return out
}

// Store holds every table behind a single lock so cross-table constraints are
// checked atomically with the write.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	addresses      *table[entity.Address]
	categories     *table[entity.Category]
	invoiceTypes   *table[entity.InvoiceType]
	paymentMethods *table[entity.PaymentMethod]
	providers      *table[entity.Provider]
	transactions   *table[entity.Transaction]
	users          *table[entity.User]
}

func NewStore() *Store {
	return &Store{
		now:            func() time.Time { return time.Now().UTC() },
		addresses:      newTable[entity.Address](),
		categories:     newTable[entity.Category](),
		invoiceTypes:   newTable[entity.InvoiceType](),
		paymentMethods: newTable[entity.PaymentMethod](),
		providers:      newTable[entity.Provider](),
		transactions:   newTable[entity.Transaction](),
		users:          newTable[entity.User](),
	}
}

// WithClock replaces the timestamp source. Used by tests that assert ordering
// on creation time.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Addresses() repository.AddressRepository           { return &addressRepo{s} }
func (s *Store) Categories() repository.CategoryRepository         { return &categoryRepo{s} }
func (s *Store) InvoiceTypes() repository.InvoiceTypeRepository     { return &invoiceTypeRepo{s} }
func (s *Store) PaymentMethods() repository.PaymentMethodRepository { return &paymentMethodRepo{s} }
func (s *Store) Providers() repository.ProviderRepository           { return &providerRepo{s} }
func (s *Store) Transactions() repository.TransactionRepository     { return &transactionRepo{s} }
func (s *Store) Users() repository.UserRepository                   { return &userRepo{s} }

func clone[T any](v *T) *T {
	c := *v
	return &c
}

func cloneAll[T any](rows []*T) []*T {
	out := make([]*T, len(rows))
	for i, r := range rows {
		out[i] = clone(r)
	}
	return out
}

// contains reports whether any field holds search, ignoring case.
func contains(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// page filters, sorts and slices rows. less must be a strict order; ties fall
// back to id ascending.
func page[T any](rows []*T, match func(*T) bool, less func(a, b *T) int, id func(*T) int64, p repository.ListParams) []*T {
	out := make([]*T, 0, len(rows))
	for _, r := range rows {
		if match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := less(out[i], out[j]); c != 0 {
			return c < 0
		}
		return id(out[i]) < id(out[j])
	})
	if p.Offset < 0 || p.Offset >= len(out) {
		return []*T{}
	}
	out = out[p.Offset:]
	if p.Limit > 0 && p.Limit < len(out) {
		out = out[:p.Limit]
	}
	return out
}

func count[T any](rows map[int64]*T, match func(*T) bool) int64 {
	var n int64
	for _, r := range rows {
		if match(r) {
			n++
		}
	}
	return n
}

func byIDs[T any](t *table[T], ids []int64) []*T {
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		if r, ok := t.rows[id]; ok {
			out = append(out, clone(r))
		}
	}
	return out
}

func uniqueErr(constraint, table string) error {
	return &repository.ConstraintError{Kind: repository.UniqueViolation, Constraint: constraint, Table: table}
}

func fkErr(constraint, table string) error {
	return &repository.ConstraintError{Kind: repository.ForeignKeyViolation, Constraint: constraint, Table: table}
}
