package memory

import (
	"context"
	"strings"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type invoiceTypeRepo struct{ s *Store }

func (r *invoiceTypeRepo) nameTaken(name string, except int64) bool {
	for _, it := range r.s.invoiceTypes.rows {
		if it.Name == name && it.ID != except {
			return true
		}
	}
	return false
}

func (r *invoiceTypeRepo) Create(_ context.Context, it *entity.InvoiceType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(it.Name, 0) {
		return uniqueErr("invoice_types_name_key", "invoice_types")
	}
	now := r.s.now()
	it.ID = r.s.invoiceTypes.next()
	it.CreatedAt, it.UpdatedAt = now, now
	r.s.invoiceTypes.rows[it.ID] = clone(it)
	return nil
}

func (r *invoiceTypeRepo) GetByID(_ context.Context, id int64) (*entity.InvoiceType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.invoiceTypes.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(it), nil
}

func (r *invoiceTypeRepo) GetByIDs(_ context.Context, ids []int64) ([]*entity.InvoiceType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byIDs(r.s.invoiceTypes, ids), nil
}

func (r *invoiceTypeRepo) GetByName(_ context.Context, name string) (*entity.InvoiceType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.invoiceTypes.rows {
		if it.Name == name {
			return clone(it), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *invoiceTypeRepo) List(_ context.Context, p repository.ListParams) ([]*entity.InvoiceType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := page(r.s.invoiceTypes.all(),
		func(it *entity.InvoiceType) bool { return contains(p.Search, it.Name) },
		func(a, b *entity.InvoiceType) int { return strings.Compare(a.Name, b.Name) },
		(*entity.InvoiceType).GetID, p)
	return cloneAll(rows), nil
}

func (r *invoiceTypeRepo) Count(_ context.Context, search string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.invoiceTypes.rows, func(it *entity.InvoiceType) bool { return contains(search, it.Name) }), nil
}

func (r *invoiceTypeRepo) Update(_ context.Context, it *entity.InvoiceType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.invoiceTypes.rows[it.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(it.Name, it.ID) {
		return uniqueErr("invoice_types_name_key", "invoice_types")
	}
	it.CreatedAt = cur.CreatedAt
	it.UpdatedAt = r.s.now()
	r.s.invoiceTypes.rows[it.ID] = clone(it)
	return nil
}

func (r *invoiceTypeRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoiceTypes.rows[id]; !ok {
		return repository.ErrNotFound
	}
	if count(r.s.providers.rows, func(p *entity.Provider) bool { return p.InvoiceTypeID != nil && *p.InvoiceTypeID == id }) > 0 {
		return fkErr("providers_invoice_type_id_fkey", "providers")
	}
	delete(r.s.invoiceTypes.rows, id)
	return nil
}
