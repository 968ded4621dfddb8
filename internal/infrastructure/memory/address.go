package memory

import (
	"context"
	"strings"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type addressRepo struct{ s *Store }

func addressMatch(search string) func(*entity.Address) bool {
	return func(a *entity.Address) bool {
		return contains(search, a.Street, a.City, a.State, a.ZipCode)
	}
}

func (r *addressRepo) Create(_ context.Context, a *entity.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	a.ID = r.s.addresses.next()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.addresses.rows[a.ID] = clone(a)
	return nil
}

func (r *addressRepo) GetByID(_ context.Context, id int64) (*entity.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.addresses.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(a), nil
}

func (r *addressRepo) GetByIDs(_ context.Context, ids []int64) ([]*entity.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byIDs(r.s.addresses, ids), nil
}

func (r *addressRepo) List(_ context.Context, p repository.ListParams) ([]*entity.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := page(r.s.addresses.all(), addressMatch(p.Search),
		func(a, b *entity.Address) int { return strings.Compare(a.Street, b.Street) },
		(*entity.Address).GetID, p)
	return cloneAll(rows), nil
}

func (r *addressRepo) Count(_ context.Context, search string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.addresses.rows, addressMatch(search)), nil
}

func (r *addressRepo) Update(_ context.Context, a *entity.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.addresses.rows[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	a.CreatedAt = cur.CreatedAt
	a.UpdatedAt = r.s.now()
	r.s.addresses.rows[a.ID] = clone(a)
	return nil
}

func (r *addressRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.addresses.rows[id]; !ok {
		return repository.ErrNotFound
	}
	if count(r.s.providers.rows, func(p *entity.Provider) bool { return p.AddressID != nil && *p.AddressID == id }) > 0 {
		return fkErr("providers_address_id_fkey", "providers")
	}
	delete(r.s.addresses.rows, id)
	return nil
}
