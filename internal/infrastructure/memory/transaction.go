package memory

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type transactionRepo struct{ s *Store }

// match searches the receipt number and the company name of the provider.
func (r *transactionRepo) match(search string) func(*entity.Transaction) bool {
	return func(t *entity.Transaction) bool {
		company := ""
		if p, ok := r.s.providers.rows[t.ProviderID]; ok {
			company = p.CompanyName
		}
		return contains(search, deref(t.ReceiptNumber), company)
	}
}

func (r *transactionRepo) check(t *entity.Transaction) error {
	if _, ok := r.s.providers.rows[t.ProviderID]; !ok {
		return fkErr("transactions_provider_id_fkey", "transactions")
	}
	if _, ok := r.s.users.rows[t.UserID]; !ok {
		return fkErr("transactions_user_id_fkey", "transactions")
	}
	if t.PaymentMethodID != nil {
		if _, ok := r.s.paymentMethods.rows[*t.PaymentMethodID]; !ok {
			return fkErr("transactions_payment_method_id_fkey", "transactions")
		}
	}
	return nil
}

func (r *transactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(t); err != nil {
		return err
	}
	now := r.s.now()
	t.ID = r.s.transactions.next()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.transactions.rows[t.ID] = clone(t)
	return nil
}

func (r *transactionRepo) GetByID(_ context.Context, id int64) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transactions.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(t), nil
}

func (r *transactionRepo) List(_ context.Context, p repository.ListParams) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := page(r.s.transactions.all(), r.match(p.Search),
		func(a, b *entity.Transaction) int { return b.Date.Compare(a.Date) },
		(*entity.Transaction).GetID, p)
	return cloneAll(rows), nil
}

func (r *transactionRepo) Count(_ context.Context, search string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.transactions.rows, r.match(search)), nil
}

func (r *transactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.transactions.rows[t.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.check(t); err != nil {
		return err
	}
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = r.s.now()
	r.s.transactions.rows[t.ID] = clone(t)
	return nil
}

func (r *transactionRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.transactions.rows, id)
	return nil
}

func (r *transactionRepo) CountByProvider(_ context.Context, providerID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.transactions.rows, func(t *entity.Transaction) bool { return t.ProviderID == providerID }), nil
}

func (r *transactionRepo) CountByUser(_ context.Context, userID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.transactions.rows, func(t *entity.Transaction) bool { return t.UserID == userID }), nil
}

func (r *transactionRepo) CountByPaymentMethod(_ context.Context, paymentMethodID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.transactions.rows, func(t *entity.Transaction) bool {
		return t.PaymentMethodID != nil && *t.PaymentMethodID == paymentMethodID
	}), nil
}
