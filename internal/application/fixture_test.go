package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/infrastructure/memory"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := body.(Event); ok {
		p.events = append(p.events, ev)
	}
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Name)
	}
	return out
}

type fixture struct {
	store  *memory.Store
	events *recordingPublisher

	addresses      *AddressService
	categories     *CategoryService
	invoiceTypes   *InvoiceTypeService
	paymentMethods *PaymentMethodService
	providers      *ProviderService
	transactions   *TransactionService
	users          *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hasher, err := helpers.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	s := memory.NewStore()
	pub := &recordingPublisher{}
	obs := Observers{Logger: helpers.NewTestLogger(), Events: pub}
	return &fixture{
		store:          s,
		events:         pub,
		addresses:      NewAddressService(s.Addresses(), s.Providers(), obs),
		categories:     NewCategoryService(s.Categories(), s.Providers(), obs),
		invoiceTypes:   NewInvoiceTypeService(s.InvoiceTypes(), s.Providers(), obs),
		paymentMethods: NewPaymentMethodService(s.PaymentMethods(), s.Transactions(), obs),
		providers:      NewProviderService(s.Providers(), s.Categories(), s.Addresses(), s.InvoiceTypes(), s.PaymentMethods(), s.Transactions(), obs),
		transactions:   NewTransactionService(s.Transactions(), s.Providers(), s.Users(), s.PaymentMethods(), obs),
		users:          NewUserService(s.Users(), s.Transactions(), hasher, obs),
	}
}

func (f *fixture) category(t *testing.T, code string) *entity.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), CreateCategoryInput{Code: code, Name: code + " name"})
	require.NoError(t, err)
	return c
}

func (f *fixture) provider(t *testing.T, name, cuit string, categoryID int64) *ProviderView {
	t.Helper()
	p, err := f.providers.Create(context.Background(), CreateProviderInput{CompanyName: name, CUIT: cuit, CategoryID: categoryID})
	require.NoError(t, err)
	return p
}

func (f *fixture) user(t *testing.T, email string) *UserView {
	t.Helper()
	u, err := f.users.Create(context.Background(), CreateUserInput{
		FirstName: "Ana", LastName: "Gomez", Email: email, Password: "password123", Role: entity.RoleUser,
	})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }
