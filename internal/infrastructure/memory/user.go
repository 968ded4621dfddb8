package memory

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type userRepo struct{ s *Store }

func userMatch(search string) func(*entity.User) bool {
	return func(u *entity.User) bool { return contains(search, u.FirstName, u.LastName, u.Email) }
}

func (r *userRepo) emailTaken(email string, except int64) bool {
	for _, u := range r.s.users.rows {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, 0) {
		return uniqueErr("users_email_key", "users")
	}
	now := r.s.now()
	u.ID = r.s.users.next()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users.rows[u.ID] = clone(u)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *userRepo) GetByIDs(_ context.Context, ids []int64) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byIDs(r.s.users, ids), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users.rows {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) List(_ context.Context, p repository.ListParams) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := page(r.s.users.all(), userMatch(p.Search),
		func(a, b *entity.User) int { return b.CreatedAt.Compare(a.CreatedAt) },
		(*entity.User).GetID, p)
	return cloneAll(rows), nil
}

func (r *userRepo) Count(_ context.Context, search string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return count(r.s.users.rows, userMatch(search)), nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users.rows[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return uniqueErr("users_email_key", "users")
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = r.s.now()
	r.s.users.rows[u.ID] = clone(u)
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users.rows[id]; !ok {
		return repository.ErrNotFound
	}
	if count(r.s.transactions.rows, func(t *entity.Transaction) bool { return t.UserID == id }) > 0 {
		return fkErr("transactions_user_id_fkey", "transactions")
	}
	delete(r.s.users.rows, id)
	return nil
}
