package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	repo "github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
	"github.com/JoaquinVilchez/business-manager-api/pkg/patch"
)

type ProviderService struct {
	Repo           repo.ProviderRepository
	Categories     repo.CategoryRepository
	Addresses      repo.AddressRepository
	InvoiceTypes   repo.InvoiceTypeRepository
	PaymentMethods repo.PaymentMethodRepository
	Transactions   repo.TransactionRepository
	Observers
}

func NewProviderService(
	r repo.ProviderRepository,
	categories repo.CategoryRepository,
	addresses repo.AddressRepository,
	invoiceTypes repo.InvoiceTypeRepository,
	paymentMethods repo.PaymentMethodRepository,
	transactions repo.TransactionRepository,
	obs Observers,
) *ProviderService {
	return &ProviderService{
		Repo:           r,
		Categories:     categories,
		Addresses:      addresses,
		InvoiceTypes:   invoiceTypes,
		PaymentMethods: paymentMethods,
		Transactions:   transactions,
		Observers:      obs,
	}
}

type CreateProviderInput struct {
	CompanyName      string
	CUIT             string
	Responsable      *string
	Email            *string
	Phone            *string
	CBU              *string
	Alias            *string
	Comment          *string
	CategoryID       int64
	AddressID        *int64
	InvoiceTypeID    *int64
	PaymentMethodIDs []int64
}

// UpdateProviderInput carries only the fields to change. AddressID and
// InvoiceTypeID set to null detach the relation. A nil PaymentMethodIDs leaves
// the join rows untouched; an empty non-nil slice clears them.
type UpdateProviderInput struct {
	CompanyName      *string
	CUIT             *string
	Responsable      *string
	Email            *string
	Phone            *string
	CBU              *string
	Alias            *string
	Comment          *string
	CategoryID       *int64
	AddressID        patch.Nullable[int64]
	InvoiceTypeID    patch.Nullable[int64]
	PaymentMethodIDs []int64
}

func (s *ProviderService) paymentMethodRefs(ids []int64) []Reference {
	refs := make([]Reference, 0, len(ids))
	for i := range ids {
		refs = append(refs, Ref(EntityPaymentMethod, &ids[i], s.PaymentMethods.GetByID))
	}
	return refs
}

func (s *ProviderService) Create(ctx context.Context, in CreateProviderInput) (*ProviderView, error) {
	if in.CUIT != "" {
		if err := EnsureUnique(ctx, EntityProvider, "cuit", in.CUIT, nil, s.Repo.GetByCUIT); err != nil {
			return nil, err
		}
	}
	pmIDs := dedupe(in.PaymentMethodIDs)
	refs := append([]Reference{
		Ref(EntityCategory, &in.CategoryID, s.Categories.GetByID),
		Ref(EntityAddress, in.AddressID, s.Addresses.GetByID),
		Ref(EntityInvoiceType, in.InvoiceTypeID, s.InvoiceTypes.GetByID),
	}, s.paymentMethodRefs(pmIDs)...)
	if err := ValidateReferences(ctx, refs...); err != nil {
		return nil, err
	}

	p := &entity.Provider{
		CompanyName:      in.CompanyName,
		CUIT:             in.CUIT,
		Responsable:      in.Responsable,
		Email:            in.Email,
		Phone:            in.Phone,
		CBU:              in.CBU,
		Alias:            in.Alias,
		Comment:          in.Comment,
		CategoryID:       in.CategoryID,
		AddressID:        in.AddressID,
		InvoiceTypeID:    in.InvoiceTypeID,
		PaymentMethodIDs: pmIDs,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, translateWrite(err, EntityProvider, "cuit", in.CUIT, refs...)
	}
	view, err := s.projectOne(ctx, p)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, EntityProvider, "created", p.ID, view)
	return view, nil
}

func (s *ProviderService) FindAll(ctx context.Context, q PageQuery) (*Page[*ProviderView], error) {
	rows, meta, err := paginate(ctx, q, s.Repo.List, s.Repo.Count)
	if err != nil {
		return nil, err
	}
	views, err := s.project(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &Page[*ProviderView]{Data: views, Meta: meta}, nil
}

func (s *ProviderService) FindOne(ctx context.Context, id int64) (*ProviderView, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityProvider, id)
	}
	return s.projectOne(ctx, p)
}

func (s *ProviderService) Update(ctx context.Context, id int64, in UpdateProviderInput) (*ProviderView, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityProvider, id)
	}

	if in.CUIT != nil && *in.CUIT != "" && *in.CUIT != p.CUIT {
		if err := EnsureUnique(ctx, EntityProvider, "cuit", *in.CUIT, &id, s.Repo.GetByCUIT); err != nil {
			return nil, err
		}
	}
	refs := []Reference{
		Ref(EntityCategory, in.CategoryID, s.Categories.GetByID),
		Ref(EntityAddress, in.AddressID.Ptr(), s.Addresses.GetByID),
		Ref(EntityInvoiceType, in.InvoiceTypeID.Ptr(), s.InvoiceTypes.GetByID),
	}
	var pmIDs []int64
	replacePM := in.PaymentMethodIDs != nil
	if replacePM {
		pmIDs = dedupe(in.PaymentMethodIDs)
		refs = append(refs, s.paymentMethodRefs(pmIDs)...)
	}
	if err := ValidateReferences(ctx, refs...); err != nil {
		return nil, err
	}

	if in.CompanyName != nil {
		p.CompanyName = *in.CompanyName
	}
	if in.CUIT != nil {
		p.CUIT = *in.CUIT
	}
	setIfPresent(&p.Responsable, in.Responsable)
	setIfPresent(&p.Email, in.Email)
	setIfPresent(&p.Phone, in.Phone)
	setIfPresent(&p.CBU, in.CBU)
	setIfPresent(&p.Alias, in.Alias)
	setIfPresent(&p.Comment, in.Comment)
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.AddressID.Set {
		p.AddressID = in.AddressID.Ptr()
	}
	if in.InvoiceTypeID.Set {
		p.InvoiceTypeID = in.InvoiceTypeID.Ptr()
	}
	if replacePM {
		p.PaymentMethodIDs = pmIDs
	}

	if err := s.Repo.Update(ctx, p, replacePM); err != nil {
		return nil, notFound(translateWrite(err, EntityProvider, "cuit", p.CUIT, refs...), EntityProvider, id)
	}
	view, err := s.projectOne(ctx, p)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, EntityProvider, "updated", p.ID, view)
	return view, nil
}

func (s *ProviderService) Remove(ctx context.Context, id int64) (*ProviderSummary, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityProvider, id)
	}
	if err := EnsureNotReferenced(ctx, EntityProvider, id,
		Dependent{Entity: EntityTransaction, Count: s.Transactions.CountByProvider},
	); err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, translateDelete(err, EntityProvider, id)
	}
	out := &ProviderSummary{ID: p.ID, CompanyName: p.CompanyName, CUIT: p.CUIT}
	s.emit(ctx, EntityProvider, "deleted", id, out)
	return out, nil
}

func (s *ProviderService) projectOne(ctx context.Context, p *entity.Provider) (*ProviderView, error) {
	views, err := s.project(ctx, []*entity.Provider{p})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// project resolves the related entities of a page of providers with one batched
// read per relation.
func (s *ProviderService) project(ctx context.Context, rows []*entity.Provider) ([]*ProviderView, error) {
	var categoryIDs, addressIDs, invoiceTypeIDs []*int64
	providerIDs := make([]int64, 0, len(rows))
	for _, p := range rows {
		categoryIDs = append(categoryIDs, &p.CategoryID)
		addressIDs = append(addressIDs, p.AddressID)
		invoiceTypeIDs = append(invoiceTypeIDs, p.InvoiceTypeID)
		providerIDs = append(providerIDs, p.ID)
	}

	var (
		categories   map[int64]*entity.Category
		addresses    map[int64]*entity.Address
		invoiceTypes map[int64]*entity.InvoiceType
		methods      map[int64][]*entity.PaymentMethod
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.Categories.GetByIDs(gctx, uniqueIDs(categoryIDs...))
		categories = index(found)
		return err
	})
	g.Go(func() error {
		found, err := s.Addresses.GetByIDs(gctx, uniqueIDs(addressIDs...))
		addresses = index(found)
		return err
	})
	g.Go(func() error {
		found, err := s.InvoiceTypes.GetByIDs(gctx, uniqueIDs(invoiceTypeIDs...))
		invoiceTypes = index(found)
		return err
	})
	g.Go(func() error {
		var err error
		methods, err = s.PaymentMethods.ListByProviders(gctx, providerIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mapSlice(rows, func(p *entity.Provider) *ProviderView {
		v := &ProviderView{
			ID:             p.ID,
			CompanyName:    p.CompanyName,
			CUIT:           p.CUIT,
			Responsable:    p.Responsable,
			Phone:          p.Phone,
			Email:          p.Email,
			CBU:            p.CBU,
			Alias:          p.Alias,
			Comment:        p.Comment,
			PaymentMethods: []NamedRef{},
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		}
		if c, ok := categories[p.CategoryID]; ok {
			v.Category = &NamedRef{ID: c.ID, Name: c.Name}
		}
		if p.AddressID != nil {
			if a, ok := addresses[*p.AddressID]; ok {
				v.Address = toAddressSummary(a)
			}
		}
		if p.InvoiceTypeID != nil {
			if it, ok := invoiceTypes[*p.InvoiceTypeID]; ok {
				v.InvoiceType = &NamedRef{ID: it.ID, Name: it.Name}
			}
		}
		for _, pm := range methods[p.ID] {
			v.PaymentMethods = append(v.PaymentMethods, NamedRef{ID: pm.ID, Name: pm.Name})
		}
		return v
	}), nil
}

func setIfPresent(dst **string, v *string) {
	if v != nil {
		s := *v
		*dst = &s
	}
}

func dedupe(ids []int64) []int64 {
	return uniqueIDs(ptrs(ids)...)
}

func ptrs(ids []int64) []*int64 {
	out := make([]*int64, len(ids))
	for i := range ids {
		out[i] = &ids[i]
	}
	return out
}
