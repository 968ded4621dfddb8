package application

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	repo "github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type PaymentMethodService struct {
	Repo         repo.PaymentMethodRepository
	Transactions repo.TransactionRepository
	Observers
}

func NewPaymentMethodService(r repo.PaymentMethodRepository, transactions repo.TransactionRepository, obs Observers) *PaymentMethodService {
	return &PaymentMethodService{Repo: r, Transactions: transactions, Observers: obs}
}

type PaymentMethodInput struct {
	Name *string
}

func (s *PaymentMethodService) Create(ctx context.Context, name string) (*entity.PaymentMethod, error) {
	if err := EnsureUnique(ctx, EntityPaymentMethod, "name", name, nil, s.Repo.GetByName); err != nil {
		return nil, err
	}
	pm := &entity.PaymentMethod{Name: name}
	if err := s.Repo.Create(ctx, pm); err != nil {
		return nil, translateWrite(err, EntityPaymentMethod, "name", name)
	}
	s.emit(ctx, EntityPaymentMethod, "created", pm.ID, pm)
	return pm, nil
}

func (s *PaymentMethodService) FindAll(ctx context.Context, q PageQuery) (*Page[*entity.PaymentMethod], error) {
	rows, meta, err := paginate(ctx, q, s.Repo.List, s.Repo.Count)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*entity.PaymentMethod{}
	}
	return &Page[*entity.PaymentMethod]{Data: rows, Meta: meta}, nil
}

func (s *PaymentMethodService) FindOne(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	pm, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityPaymentMethod, id)
	}
	return pm, nil
}

func (s *PaymentMethodService) Update(ctx context.Context, id int64, in PaymentMethodInput) (*entity.PaymentMethod, error) {
	pm, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != pm.Name {
		if err := EnsureUnique(ctx, EntityPaymentMethod, "name", *in.Name, &id, s.Repo.GetByName); err != nil {
			return nil, err
		}
		pm.Name = *in.Name
	}
	if err := s.Repo.Update(ctx, pm); err != nil {
		return nil, notFound(translateWrite(err, EntityPaymentMethod, "name", pm.Name), EntityPaymentMethod, id)
	}
	s.emit(ctx, EntityPaymentMethod, "updated", pm.ID, pm)
	return pm, nil
}

// Remove is blocked by provider join rows first, then by transactions paid with the method.
func (s *PaymentMethodService) Remove(ctx context.Context, id int64) (*NamedRef, error) {
	pm, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureNotReferenced(ctx, EntityPaymentMethod, id,
		Dependent{Entity: EntityProvider, Count: s.Repo.CountProviders},
		Dependent{Entity: EntityTransaction, Count: s.Transactions.CountByPaymentMethod},
	); err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, translateDelete(err, EntityPaymentMethod, id)
	}
	out := &NamedRef{ID: pm.ID, Name: pm.Name}
	s.emit(ctx, EntityPaymentMethod, "deleted", id, out)
	return out, nil
}
