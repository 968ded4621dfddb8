package application

import (
	"context"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	repo "github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

type CategoryService struct {
	Repo      repo.CategoryRepository
	Providers repo.ProviderRepository
	Observers
}

func NewCategoryService(r repo.CategoryRepository, providers repo.ProviderRepository, obs Observers) *CategoryService {
	return &CategoryService{Repo: r, Providers: providers, Observers: obs}
}

type CreateCategoryInput struct {
	Code string
	Name string
}

type UpdateCategoryInput struct {
	Code *string
	Name *string
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*entity.Category, error) {
	if err := EnsureUnique(ctx, EntityCategory, "code", in.Code, nil, s.Repo.GetByCode); err != nil {
		return nil, err
	}
	c := &entity.Category{Code: in.Code, Name: in.Name}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, translateWrite(err, EntityCategory, "code", in.Code)
	}
	s.emit(ctx, EntityCategory, "created", c.ID, c)
	return c, nil
}

func (s *CategoryService) FindAll(ctx context.Context, q PageQuery) (*Page[*entity.Category], error) {
	rows, meta, err := paginate(ctx, q, s.Repo.List, s.Repo.Count)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*entity.Category{}
	}
	return &Page[*entity.Category]{Data: rows, Meta: meta}, nil
}

func (s *CategoryService) FindOne(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityCategory, id)
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, in UpdateCategoryInput) (*entity.Category, error) {
	c, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil && *in.Code != c.Code {
		if err := EnsureUnique(ctx, EntityCategory, "code", *in.Code, &id, s.Repo.GetByCode); err != nil {
			return nil, err
		}
		c.Code = *in.Code
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, notFound(translateWrite(err, EntityCategory, "code", c.Code), EntityCategory, id)
	}
	s.emit(ctx, EntityCategory, "updated", c.ID, c)
	return c, nil
}

func (s *CategoryService) Remove(ctx context.Context, id int64) (*CategorySummary, error) {
	c, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureNotReferenced(ctx, EntityCategory, id,
		Dependent{Entity: EntityProvider, Count: s.Providers.CountByCategory},
	); err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, translateDelete(err, EntityCategory, id)
	}
	out := &CategorySummary{ID: c.ID, Code: c.Code, Name: c.Name}
	s.emit(ctx, EntityCategory, "deleted", id, out)
	return out, nil
}
