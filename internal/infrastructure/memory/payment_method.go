package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type paymentMethodRepo struct{ s *Store }

func (r *paymentMethodRepo) nameTaken(name string, except int64) bool {
	for _, pm := range r.s.paymentMethods.rows {
		if pm.Name == name && pm.ID != except {
			return true
		}
	}
	return false
}

func (r *paymentMethodRepo) Create(_ context.Context, pm *entity.PaymentMethod) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(pm.Name, 0) {
		return uniqueErr("payment_methods_name_key", "payment_methods")
	}
	pm.ID = r.s.paymentMethods.next()
	r.s.paymentMethods.rows[pm.ID] = clone(pm)
	return nil
}

func (r *paymentMethodRepo) GetByID(_ context.Context, id int64) (*entity.PaymentMethod, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	pm, ok := r.s.paymentMethods.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(pm), nil
}

func (r *paymentMethodRepo) GetByIDs(_ context.Context, ids []int64) ([]*entity.PaymentMethod, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byIDs(r.s.paymentMethods, ids), nil
}

func (r *paymentMethodRepo) GetByName(_ context.Context, name string) (*entity.PaymentMethod, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, pm := range r.s.paymentMethods.rows {
		if pm.Name == name {
			return clone(pm), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *paymentMethodRepo) List(_ context.Context, p repository.ListParams) ([]*entity.PaymentMethod, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := page(r.s.paymentMethods.all(),
		func(pm *entity.PaymentMethod) bool { return contains(p.Search, pm.Name) },
		func(a, b *entity.PaymentMethod) int { return cmp.Compare(a.ID, b.ID) },
		(*entity.PaymentMethod).GetID, p)
	return cloneAll(rows), nil
}

func (r *paymentMethodRepo) Count(_ context.Context, search string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.paymentMethods.rows, func(pm *entity.PaymentMethod) bool { return contains(search, pm.Name) }), nil
}

func (r *paymentMethodRepo) Update(_ context.Context, pm *entity.PaymentMethod) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.paymentMethods.rows[pm.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(pm.Name, pm.ID) {
		return uniqueErr("payment_methods_name_key", "payment_methods")
	}
	r.s.paymentMethods.rows[pm.ID] = clone(pm)
	return nil
}

func (r *paymentMethodRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.paymentMethods.rows[id]; !ok {
		return repository.ErrNotFound
	}
	if r.countProviders(id) > 0 {
		return fkErr("provider_payment_methods_payment_method_id_fkey", "provider_payment_methods")
	}
	if count(r.s.transactions.rows, func(t *entity.Transaction) bool { return t.PaymentMethodID != nil && *t.PaymentMethodID == id }) > 0 {
		return fkErr("transactions_payment_method_id_fkey", "transactions")
	}
	delete(r.s.paymentMethods.rows, id)
	return nil
}

func (r *paymentMethodRepo) ListByProviders(_ context.Context, providerIDs []int64) (map[int64][]*entity.PaymentMethod, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[int64][]*entity.PaymentMethod, len(providerIDs))
	for _, pid := range providerIDs {
		p, ok := r.s.providers.rows[pid]
		if !ok {
			continue
		}
		ids := slices.Clone(p.PaymentMethodIDs)
		slices.Sort(ids)
		for _, id := range ids {
			if pm, ok := r.s.paymentMethods.rows[id]; ok {
				out[pid] = append(out[pid], clone(pm))
			}
		}
	}
	return out, nil
}

func (r *paymentMethodRepo) CountProviders(_ context.Context, id int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.countProviders(id), nil
}

func (r *paymentMethodRepo) countProviders(id int64) int64 {
	return count(r.s.providers.rows, func(p *entity.Provider) bool { return slices.Contains(p.PaymentMethodIDs, id) })
}
