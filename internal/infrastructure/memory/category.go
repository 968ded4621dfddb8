package memory

import (
	"context"
	"strings"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type categoryRepo struct{ s *Store }

func categoryMatch(search string) func(*entity.Category) bool {
	return func(c *entity.Category) bool { return contains(search, c.Code, c.Name) }
}

func (r *categoryRepo) codeTaken(code string, except int64) bool {
	for _, c := range r.s.categories.rows {
		if c.Code == code && c.ID != except {
			return true
		}
	}
	return false
}

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.codeTaken(c.Code, 0) {
		return uniqueErr("categories_code_key", "categories")
	}
	now := r.s.now()
	c.ID = r.s.categories.next()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.categories.rows[c.ID] = clone(c)
	return nil
}

func (r *categoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(c), nil
}

func (r *categoryRepo) GetByIDs(_ context.Context, ids []int64) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byIDs(r.s.categories, ids), nil
}

func (r *categoryRepo) GetByCode(_ context.Context, code string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories.rows {
		if c.Code == code {
			return clone(c), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *categoryRepo) List(_ context.Context, p repository.ListParams) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := page(r.s.categories.all(), categoryMatch(p.Search),
		func(a, b *entity.Category) int { return strings.Compare(a.Code, b.Code) },
		(*entity.Category).GetID, p)
	return cloneAll(rows), nil
}

func (r *categoryRepo) Count(_ context.Context, search string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.categories.rows, categoryMatch(search)), nil
}

func (r *categoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.categories.rows[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.codeTaken(c.Code, c.ID) {
		return uniqueErr("categories_code_key", "categories")
	}
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = r.s.now()
	r.s.categories.rows[c.ID] = clone(c)
	return nil
}

func (r *categoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories.rows[id]; !ok {
		return repository.ErrNotFound
	}
	if count(r.s.providers.rows, func(p *entity.Provider) bool { return p.CategoryID == id }) > 0 {
		return fkErr("providers_category_id_fkey", "providers")
	}
	delete(r.s.categories.rows, id)
	return nil
}
