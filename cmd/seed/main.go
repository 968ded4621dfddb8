package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/config"
	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	pginfra "github.com/JoaquinVilchez/business-manager-api/internal/infrastructure/postgres"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
)

var (
	invoiceTypes   = []string{"Factura A", "Factura B", "Factura C"}
	paymentMethods = []string{"Efectivo", "Transferencia", "Cheque", "Tarjeta"}
)

// seed goes through the domain services so uniqueness rules apply; rows that
// already exist are reported and skipped.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	store := pginfra.NewStore(pool)

	hasher, err := helpers.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("invalid BCRYPT_COST: %v", err)
	}
	obs := application.Observers{Logger: logger}

	users := application.NewUserService(store.Users(), store.Transactions(), hasher, obs)
	_, err = users.Create(ctx, application.CreateUserInput{
		FirstName: "Admin",
		LastName:  "User",
		Email:     cfg.SeedAdminEmail,
		Password:  cfg.SeedAdminPassword,
		Role:      entity.RoleAdmin,
	})
	report(logger, "admin user", cfg.SeedAdminEmail, err)

	its := application.NewInvoiceTypeService(store.InvoiceTypes(), store.Providers(), obs)
	for _, name := range invoiceTypes {
		_, err := its.Create(ctx, name)
		report(logger, "invoice type", name, err)
	}

	pms := application.NewPaymentMethodService(store.PaymentMethods(), store.Transactions(), obs)
	for _, name := range paymentMethods {
		_, err := pms.Create(ctx, name)
		report(logger, "payment method", name, err)
	}
}

func report(logger *logrus.Logger, kind, value string, err error) {
	var dup *application.DuplicateValueError
	switch {
	case err == nil:
		logger.Infof("seeded %s %q", kind, value)
	case errors.As(err, &dup):
		logger.Infof("%s %q already present", kind, value)
	default:
		log.Fatalf("failed to seed %s %q: %v", kind, value, err)
	}
}
