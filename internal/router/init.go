package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/internal/container"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	handlers "github.com/JoaquinVilchez/business-manager-api/internal/interface/http"
	"github.com/JoaquinVilchez/business-manager-api/internal/interface/middleware"
	"github.com/JoaquinVilchez/business-manager-api/internal/router/modules"
)

// Services bundles one domain service per entity plus authentication.
type Services struct {
	Addresses      *application.AddressService
	Categories     *application.CategoryService
	InvoiceTypes   *application.InvoiceTypeService
	PaymentMethods *application.PaymentMethodService
	Providers      *application.ProviderService
	Transactions   *application.TransactionService
	Users          *application.UserService
	Auth           *application.AuthService
}

// observers wires the event publisher only when one was configured; a nil
// *RabbitPublisher must not end up inside the interface.
func observers() application.Observers {
	obs := application.Observers{Logger: container.GetLogger()}
	if pub := container.GetRabbitPub(); pub != nil {
		obs.Events = pub
	}
	return obs
}

// BuildServices wires every domain service over the container's store.
func BuildServices() Services {
	s := container.GetStore()
	obs := observers()
	cfg := container.GetConfig()

	return Services{
		Addresses:      application.NewAddressService(s.Addresses(), s.Providers(), obs),
		Categories:     application.NewCategoryService(s.Categories(), s.Providers(), obs),
		InvoiceTypes:   application.NewInvoiceTypeService(s.InvoiceTypes(), s.Providers(), obs),
		PaymentMethods: application.NewPaymentMethodService(s.PaymentMethods(), s.Transactions(), obs),
		Providers: application.NewProviderService(
			s.Providers(), s.Categories(), s.Addresses(), s.InvoiceTypes(), s.PaymentMethods(), s.Transactions(), obs,
		),
		Transactions: application.NewTransactionService(s.Transactions(), s.Providers(), s.Users(), s.PaymentMethods(), obs),
		Users:        application.NewUserService(s.Users(), s.Transactions(), container.GetHasher(), obs),
		Auth: application.NewAuthService(
			s.Users(), container.GetHasher(), container.GetJWT(), container.GetRedis(), cfg.SessionTTL, obs,
		),
	}
}

// InitModules initializes all application modules and registers them with the router registry.
// It should be called once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	jwt := container.GetJWT()
	svc := BuildServices()

	var guards []gin.HandlerFunc
	if cfg.AuthEnabled {
		guards = append(guards,
			middleware.Auth(rdb, jwt),
			middleware.RateLimit(rdb, middleware.Limit{Max: cfg.RateLimitPerMinute, Window: time.Minute, Key: middleware.KeyByUserID()}),
		)
	} else {
		guards = append(guards, middleware.RateLimit(rdb, middleware.Limit{Max: cfg.RateLimitPerMinute, Window: time.Minute, Key: middleware.KeyByIP()}))
	}
	adminGuards := guards
	if cfg.AuthEnabled {
		adminGuards = append(append([]gin.HandlerFunc{}, guards...), middleware.RequireRole(string(entity.RoleAdmin)))
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, logger, cfg.CookieDomain, cfg.CookieSecure), jwt, rdb))
	r.Add(modules.NewResourceModule("addresses", handlers.NewAddressHandler(svc.Addresses, logger), guards...))
	r.Add(modules.NewResourceModule("categories", handlers.NewCategoryHandler(svc.Categories, logger), guards...))
	r.Add(modules.NewResourceModule("invoice-types", handlers.NewInvoiceTypeHandler(svc.InvoiceTypes, logger), guards...))
	r.Add(modules.NewResourceModule("payment-methods", handlers.NewPaymentMethodHandler(svc.PaymentMethods, logger), guards...))
	r.Add(modules.NewResourceModule("providers", handlers.NewProviderHandler(svc.Providers, logger), guards...))
	r.Add(modules.NewResourceModule("transactions", handlers.NewTransactionHandler(svc.Transactions, logger), guards...))
	r.Add(modules.NewResourceModule("users", handlers.NewUserHandler(svc.Users, logger), adminGuards...))

	if m := container.GetMetrics(); m != nil {
		r.Add(modules.NewMetricsModule(m, rdb))
	}
}
