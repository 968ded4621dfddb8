package application

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	repo "github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type InvoiceTypeService struct {
	Repo      repo.InvoiceTypeRepository
	Providers repo.ProviderRepository
	Observers
}

func NewInvoiceTypeService(r repo.InvoiceTypeRepository, providers repo.ProviderRepository, obs Observers) *InvoiceTypeService {
	return &InvoiceTypeService{Repo: r, Providers: providers, Observers: obs}
}

type InvoiceTypeInput struct {
	Name *string
}

func (s *InvoiceTypeService) Create(ctx context.Context, name string) (*entity.InvoiceType, error) {
	if err := EnsureUnique(ctx, EntityInvoiceType, "name", name, nil, s.Repo.GetByName); err != nil {
		return nil, err
	}
	it := &entity.InvoiceType{Name: name}
	if err := s.Repo.Create(ctx, it); err != nil {
		return nil, translateWrite(err, EntityInvoiceType, "name", name)
	}
	s.emit(ctx, EntityInvoiceType, "created", it.ID, it)
	return it, nil
}

func (s *InvoiceTypeService) FindAll(ctx context.Context, q PageQuery) (*Page[*entity.InvoiceType], error) {
	rows, meta, err := paginate(ctx, q, s.Repo.List, s.Repo.Count)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*entity.InvoiceType{}
	}
	return &Page[*entity.InvoiceType]{Data: rows, Meta: meta}, nil
}

func (s *InvoiceTypeService) FindOne(ctx context.Context, id int64) (*entity.InvoiceType, error) {
	it, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityInvoiceType, id)
	}
	return it, nil
}

func (s *InvoiceTypeService) Update(ctx context.Context, id int64, in InvoiceTypeInput) (*entity.InvoiceType, error) {
	it, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != it.Name {
		if err := EnsureUnique(ctx, EntityInvoiceType, "name", *in.Name, &id, s.Repo.GetByName); err != nil {
			return nil, err
		}
		it.Name = *in.Name
	}
	if err := s.Repo.Update(ctx, it); err != nil {
		return nil, notFound(translateWrite(err, EntityInvoiceType, "name", it.Name), EntityInvoiceType, id)
	}
	s.emit(ctx, EntityInvoiceType, "updated", it.ID, it)
	return it, nil
}

func (s *InvoiceTypeService) Remove(ctx context.Context, id int64) (*NamedRef, error) {
	it, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureNotReferenced(ctx, EntityInvoiceType, id,
		Dependent{Entity: EntityProvider, Count: s.Providers.CountByInvoiceType},
	); err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, translateDelete(err, EntityInvoiceType, id)
	}
	out := &NamedRef{ID: it.ID, Name: it.Name}
	s.emit(ctx, EntityInvoiceType, "deleted", id, out)
	return out, nil
}
