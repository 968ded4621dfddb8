package application

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	repo "github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
	"github.com/JoaquinVilchez/business-manager-api/pkg/patch"
)

type AddressService struct {
	Repo      repo.AddressRepository
	Providers repo.ProviderRepository
	Observers
}

func NewAddressService(r repo.AddressRepository, providers repo.ProviderRepository, obs Observers) *AddressService {
	return &AddressService{Repo: r, Providers: providers, Observers: obs}
}

type CreateAddressInput struct {
	Street           string
	Number           string
	ApartmentOrFloor *string
	City             string
	State            string
	ZipCode          string
}

type UpdateAddressInput struct {
	Street           *string
	Number           *string
	ApartmentOrFloor patch.Nullable[string]
	City             *string
	State            *string
	ZipCode          *string
}

func (s *AddressService) Create(ctx context.Context, in CreateAddressInput) (*entity.Address, error) {
	a := &entity.Address{
		Street:           in.Street,
		Number:           in.Number,
		ApartmentOrFloor: in.ApartmentOrFloor,
		City:             in.City,
		State:            in.State,
		ZipCode:          in.ZipCode,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, translateWrite(err, EntityAddress, "", "")
	}
	s.emit(ctx, EntityAddress, "created", a.ID, a)
	return a, nil
}

func (s *AddressService) FindAll(ctx context.Context, q PageQuery) (*Page[*entity.Address], error) {
	rows, meta, err := paginate(ctx, q, s.Repo.List, s.Repo.Count)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*entity.Address{}
	}
	return &Page[*entity.Address]{Data: rows, Meta: meta}, nil
}

func (s *AddressService) FindOne(ctx context.Context, id int64) (*entity.Address, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityAddress, id)
	}
	return a, nil
}

func (s *AddressService) Update(ctx context.Context, id int64, in UpdateAddressInput) (*entity.Address, error) {
	a, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Street != nil {
		a.Street = *in.Street
	}
	if in.Number != nil {
		a.Number = *in.Number
	}
	if in.ApartmentOrFloor.Set {
		a.ApartmentOrFloor = in.ApartmentOrFloor.Ptr()
	}
	if in.City != nil {
		a.City = *in.City
	}
	if in.State != nil {
		a.State = *in.State
	}
	if in.ZipCode != nil {
		a.ZipCode = *in.ZipCode
	}
	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, notFound(translateWrite(err, EntityAddress, "", ""), EntityAddress, id)
	}
	s.emit(ctx, EntityAddress, "updated", a.ID, a)
	return a, nil
}

func (s *AddressService) Remove(ctx context.Context, id int64) (*AddressSummary, error) {
	a, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureNotReferenced(ctx, EntityAddress, id,
		Dependent{Entity: EntityProvider, Count: s.Providers.CountByAddress},
	); err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, translateDelete(err, EntityAddress, id)
	}
	out := &AddressSummary{ID: a.ID, Street: a.Street, Number: a.Number, City: a.City, State: a.State}
	s.emit(ctx, EntityAddress, "deleted", id, out)
	return out, nil
}
