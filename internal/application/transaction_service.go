package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	repo "github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
	"github.com/JoaquinVilchez/business-manager-api/pkg/patch"
)

type TransactionService struct {
	Repo           repo.TransactionRepository
	Providers      repo.ProviderRepository
	Users          repo.UserRepository
	PaymentMethods repo.PaymentMethodRepository
	Observers
}

func NewTransactionService(
	r repo.TransactionRepository,
	providers repo.ProviderRepository,
	users repo.UserRepository,
	paymentMethods repo.PaymentMethodRepository,
	obs Observers,
) *TransactionService {
	return &TransactionService{Repo: r, Providers: providers, Users: users, PaymentMethods: paymentMethods, Observers: obs}
}

type CreateTransactionInput struct {
	Date            time.Time
	DueDate         *time.Time
	ReceiptNumber   *string
	Type            entity.TransactionType
	Amount          decimal.Decimal
	PaidAmount      *decimal.Decimal
	Status          entity.TransactionStatus
	MatchesInvoice  bool
	Comment         *string
	ProviderID      int64
	UserID          int64
	PaymentMethodID *int64
}

// UpdateTransactionInput carries only the fields to change. Status may move to
// any value; only the amount relationship is enforced.
type UpdateTransactionInput struct {
	Date            *time.Time
	DueDate         patch.Nullable[time.Time]
	ReceiptNumber   *string
	Type            *entity.TransactionType
	Amount          *decimal.Decimal
	PaidAmount      patch.Nullable[decimal.Decimal]
	Status          *entity.TransactionStatus
	MatchesInvoice  *bool
	Comment         *string
	ProviderID      *int64
	UserID          *int64
	PaymentMethodID patch.Nullable[int64]
}

func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (*TransactionView, error) {
	refs := []Reference{
		Ref(EntityProvider, &in.ProviderID, s.Providers.GetByID),
		Ref(EntityUser, &in.UserID, s.Users.GetByID),
		Ref(EntityPaymentMethod, in.PaymentMethodID, s.PaymentMethods.GetByID),
	}
	if err := ValidateReferences(ctx, refs...); err != nil {
		return nil, err
	}
	in.Amount = roundMoney(in.Amount)
	in.PaidAmount = roundMoneyPtr(in.PaidAmount)
	if err := ValidateAmounts(in.Amount, in.PaidAmount); err != nil {
		return nil, err
	}

	t := &entity.Transaction{
		Date:            in.Date,
		DueDate:         in.DueDate,
		ReceiptNumber:   in.ReceiptNumber,
		Type:            in.Type,
		Amount:          in.Amount,
		PaidAmount:      in.PaidAmount,
		Status:          in.Status,
		MatchesInvoice:  in.MatchesInvoice,
		Comment:         in.Comment,
		ProviderID:      in.ProviderID,
		UserID:          in.UserID,
		PaymentMethodID: in.PaymentMethodID,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, translateWrite(err, EntityTransaction, "", "", refs...)
	}
	view, err := s.projectOne(ctx, t)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, EntityTransaction, "created", t.ID, view)
	return view, nil
}

func (s *TransactionService) FindAll(ctx context.Context, q PageQuery) (*Page[*TransactionView], error) {
	rows, meta, err := paginate(ctx, q, s.Repo.List, s.Repo.Count)
	if err != nil {
		return nil, err
	}
	views, err := s.project(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &Page[*TransactionView]{Data: views, Meta: meta}, nil
}

func (s *TransactionService) FindOne(ctx context.Context, id int64) (*TransactionView, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityTransaction, id)
	}
	return s.projectOne(ctx, t)
}

func (s *TransactionService) Update(ctx context.Context, id int64, in UpdateTransactionInput) (*TransactionView, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityTransaction, id)
	}
	refs := []Reference{
		Ref(EntityProvider, in.ProviderID, s.Providers.GetByID),
		Ref(EntityUser, in.UserID, s.Users.GetByID),
		Ref(EntityPaymentMethod, in.PaymentMethodID.Ptr(), s.PaymentMethods.GetByID),
	}
	if err := ValidateReferences(ctx, refs...); err != nil {
		return nil, err
	}

	// The amount rule is checked against the values the row will hold after the patch.
	if in.Amount != nil || in.PaidAmount.Set {
		amount := t.Amount
		if in.Amount != nil {
			amount = roundMoney(*in.Amount)
		}
		paid := t.PaidAmount
		if in.PaidAmount.Set {
			paid = roundMoneyPtr(in.PaidAmount.Ptr())
		}
		if err := ValidateAmounts(amount, paid); err != nil {
			return nil, err
		}
		t.Amount = amount
		t.PaidAmount = paid
	}

	if in.Date != nil {
		t.Date = *in.Date
	}
	if in.DueDate.Set {
		t.DueDate = in.DueDate.Ptr()
	}
	setIfPresent(&t.ReceiptNumber, in.ReceiptNumber)
	if in.Type != nil {
		t.Type = *in.Type
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.MatchesInvoice != nil {
		t.MatchesInvoice = *in.MatchesInvoice
	}
	setIfPresent(&t.Comment, in.Comment)
	if in.ProviderID != nil {
		t.ProviderID = *in.ProviderID
	}
	if in.UserID != nil {
		t.UserID = *in.UserID
	}
	if in.PaymentMethodID.Set {
		t.PaymentMethodID = in.PaymentMethodID.Ptr()
	}

	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, notFound(translateWrite(err, EntityTransaction, "", "", refs...), EntityTransaction, id)
	}
	view, err := s.projectOne(ctx, t)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, EntityTransaction, "updated", t.ID, view)
	return view, nil
}

func (s *TransactionService) Remove(ctx context.Context, id int64) (*TransactionSummary, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, EntityTransaction, id)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, translateDelete(err, EntityTransaction, id)
	}
	out := &TransactionSummary{ID: t.ID, ReceiptNumber: t.ReceiptNumber, Amount: t.Amount}
	s.emit(ctx, EntityTransaction, "deleted", id, out)
	return out, nil
}

func (s *TransactionService) projectOne(ctx context.Context, t *entity.Transaction) (*TransactionView, error) {
	views, err := s.project(ctx, []*entity.Transaction{t})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *TransactionService) project(ctx context.Context, rows []*entity.Transaction) ([]*TransactionView, error) {
	var providerIDs, userIDs, methodIDs []*int64
	for _, t := range rows {
		providerIDs = append(providerIDs, &t.ProviderID)
		userIDs = append(userIDs, &t.UserID)
		methodIDs = append(methodIDs, t.PaymentMethodID)
	}

	var (
		providers map[int64]*entity.Provider
		users     map[int64]*entity.User
		methods   map[int64]*entity.PaymentMethod
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.Providers.GetByIDs(gctx, uniqueIDs(providerIDs...))
		providers = index(found)
		return err
	})
	g.Go(func() error {
		found, err := s.Users.GetByIDs(gctx, uniqueIDs(userIDs...))
		users = index(found)
		return err
	})
	g.Go(func() error {
		found, err := s.PaymentMethods.GetByIDs(gctx, uniqueIDs(methodIDs...))
		methods = index(found)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mapSlice(rows, func(t *entity.Transaction) *TransactionView {
		v := &TransactionView{
			ID:             t.ID,
			Date:           t.Date,
			DueDate:        t.DueDate,
			ReceiptNumber:  t.ReceiptNumber,
			Type:           t.Type,
			Amount:         t.Amount,
			PaidAmount:     t.PaidAmount,
			Status:         t.Status,
			MatchesInvoice: t.MatchesInvoice,
			Comment:        t.Comment,
			CreatedAt:      t.CreatedAt,
			UpdatedAt:      t.UpdatedAt,
		}
		if p, ok := providers[t.ProviderID]; ok {
			v.Provider = &ProviderSummary{ID: p.ID, CompanyName: p.CompanyName, CUIT: p.CUIT}
		}
		if u, ok := users[t.UserID]; ok {
			v.User = &UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
		}
		if t.PaymentMethodID != nil {
			if pm, ok := methods[*t.PaymentMethodID]; ok {
				v.PaymentMethod = &NamedRef{ID: pm.ID, Name: pm.Name}
			}
		}
		return v
	}), nil
}
