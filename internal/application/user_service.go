package application

import (
	"context"
	"fmt"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	repo "github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

// UserService manages back office users. The plain password only ever travels
// inward: it is hashed before any write and no projection carries it.
type UserService struct {
	Repo         repo.UserRepository
	Transactions repo.TransactionRepository
	Hasher       PasswordHasher
	Observers
}

func NewUserService(r repo.UserRepository, transactions repo.TransactionRepository, hasher PasswordHasher, obs Observers) *UserService {
	return &UserService{Repo: r, Transactions: transactions, Hasher: hasher, Observers: obs}
}

type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      entity.Role
}

type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Role      *entity.Role
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*UserView, error) {
	if err := EnsureUnique(ctx, EntityUser, "email", in.Email, nil, s.Repo.GetByEmail); err != nil {
		return nil, err
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Role:      in.Role,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, translateWrite(err, EntityUser, "email", in.Email)
	}
	view := toUserView(u)
	s.emit(ctx, EntityUser, "created", u.ID, view)
	return view, nil
}

func (s *UserService) FindAll(ctx context.Context, q PageQuery) (*Page[*UserView], error) {
	rows, meta, err := paginate(ctx, q, s.Repo.List, s.Repo.Count)
	if err != nil {
		return nil, err
	}
	return &Page[*UserView]{Data: mapSlice(rows, toUserView), Meta: meta}, nil
}

func (s *UserService) FindOne(ctx context.Context, id int64) (*UserView, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityUser, id)
	}
	return toUserView(u), nil
}

func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*UserView, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityUser, id)
	}
	if in.Email != nil && *in.Email != u.Email {
		if err := EnsureUnique(ctx, EntityUser, "email", *in.Email, &id, s.Repo.GetByEmail); err != nil {
			return nil, err
		}
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := s.Hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.Password = hash
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, notFound(translateWrite(err, EntityUser, "email", u.Email), EntityUser, id)
	}
	view := toUserView(u)
	s.emit(ctx, EntityUser, "updated", u.ID, view)
	return view, nil
}

func (s *UserService) Remove(ctx context.Context, id int64) (*DeletedUser, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityUser, id)
	}
	if err := EnsureNotReferenced(ctx, EntityUser, id,
		Dependent{Entity: EntityTransaction, Count: s.Transactions.CountByUser},
	); err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, translateDelete(err, EntityUser, id)
	}
	out := &DeletedUser{ID: u.ID, Email: u.Email}
	s.emit(ctx, EntityUser, "deleted", id, out)
	return out, nil
}
