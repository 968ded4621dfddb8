package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type providerRepo struct{ s *Store }

func providerMatch(search string) func(*entity.Provider) bool {
	return func(p *entity.Provider) bool {
		return contains(search, p.CompanyName, p.CUIT, deref(p.Responsable), deref(p.Email))
	}
}

func cloneProvider(p *entity.Provider) *entity.Provider {
	c := clone(p)
	c.PaymentMethodIDs = slices.Clone(p.PaymentMethodIDs)
	return c
}

// check enforces the provider constraints against the other tables.
func (r *providerRepo) check(p *entity.Provider) error {
	if p.CUIT != "" {
		for _, o := range r.s.providers.rows {
			if o.CUIT == p.CUIT && o.ID != p.ID {
				return uniqueErr("providers_cuit_key", "providers")
			}
		}
	}
	if _, ok := r.s.categories.rows[p.CategoryID]; !ok {
		return fkErr("providers_category_id_fkey", "providers")
	}
	if p.AddressID != nil {
		if _, ok := r.s.addresses.rows[*p.AddressID]; !ok {
			return fkErr("providers_address_id_fkey", "providers")
		}
	}
	if p.InvoiceTypeID != nil {
		if _, ok := r.s.invoiceTypes.rows[*p.InvoiceTypeID]; !ok {
			return fkErr("providers_invoice_type_id_fkey", "providers")
		}
	}
	for _, id := range p.PaymentMethodIDs {
		if _, ok := r.s.paymentMethods.rows[id]; !ok {
			return fkErr("provider_payment_methods_payment_method_id_fkey", "provider_payment_methods")
		}
	}
	return nil
}

func (r *providerRepo) Create(_ context.Context, p *entity.Provider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(p); err != nil {
		return err
	}
	now := r.s.now()
	p.ID = r.s.providers.next()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.providers.rows[p.ID] = cloneProvider(p)
	return nil
}

func (r *providerRepo) GetByID(_ context.Context, id int64) (*entity.Provider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.providers.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneProvider(p), nil
}

func (r *providerRepo) GetByIDs(_ context.Context, ids []int64) ([]*entity.Provider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Provider, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.providers.rows[id]; ok {
			out = append(out, cloneProvider(p))
		}
	}
	return out, nil
}

func (r *providerRepo) GetByCUIT(_ context.Context, cuit string) (*entity.Provider, error) {
	if cuit == "" {
		return nil, repository.ErrNotFound
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.providers.rows {
		if p.CUIT == cuit {
			return cloneProvider(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *providerRepo) List(_ context.Context, lp repository.ListParams) ([]*entity.Provider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := page(r.s.providers.all(), providerMatch(lp.Search),
		func(a, b *entity.Provider) int { return strings.Compare(a.CompanyName, b.CompanyName) },
		(*entity.Provider).GetID, lp)
	out := make([]*entity.Provider, len(rows))
	for i, p := range rows {
		out[i] = cloneProvider(p)
	}
	return out, nil
}

func (r *providerRepo) Count(_ context.Context, search string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.providers.rows, providerMatch(search)), nil
}

func (r *providerRepo) Update(_ context.Context, p *entity.Provider, replacePaymentMethods bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.providers.rows[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	next := cloneProvider(p)
	if !replacePaymentMethods {
		next.PaymentMethodIDs = slices.Clone(cur.PaymentMethodIDs)
	}
	if err := r.check(next); err != nil {
		return err
	}
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = r.s.now()
	p.CreatedAt, p.UpdatedAt = next.CreatedAt, next.UpdatedAt
	p.PaymentMethodIDs = slices.Clone(next.PaymentMethodIDs)
	r.s.providers.rows[p.ID] = next
	return nil
}

// Delete drops the provider together with its payment method join rows.
func (r *providerRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.providers.rows[id]; !ok {
		return repository.ErrNotFound
	}
	if count(r.s.transactions.rows, func(t *entity.Transaction) bool { return t.ProviderID == id }) > 0 {
		return fkErr("transactions_provider_id_fkey", "transactions")
	}
	delete(r.s.providers.rows, id)
	return nil
}

func (r *providerRepo) CountByCategory(_ context.Context, categoryID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.providers.rows, func(p *entity.Provider) bool { return p.CategoryID == categoryID }), nil
}

func (r *providerRepo) CountByAddress(_ context.Context, addressID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.providers.rows, func(p *entity.Provider) bool { return p.AddressID != nil && *p.AddressID == addressID }), nil
}

func (r *providerRepo) CountByInvoiceType(_ context.Context, invoiceTypeID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.providers.rows, func(p *entity.Provider) bool { return p.InvoiceTypeID != nil && *p.InvoiceTypeID == invoiceTypeID }), nil
}
