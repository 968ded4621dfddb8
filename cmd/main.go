package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JoaquinVilchez/business-manager-api/config"
	"github.com/JoaquinVilchez/business-manager-api/internal/container"
	"github.com/JoaquinVilchez/business-manager-api/internal/infrastructure/memory"
	pginfra "github.com/JoaquinVilchez/business-manager-api/internal/infrastructure/postgres"
	"github.com/JoaquinVilchez/business-manager-api/internal/interface/middleware"
	"github.com/JoaquinVilchez/business-manager-api/internal/router"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
	"github.com/JoaquinVilchez/business-manager-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Storage: postgres by default, memory for local runs without a database
	if cfg.UsesMemoryStore() {
		logger.Warn("STORE_DRIVER=memory; data is lost on restart")
		container.SetStore(memory.NewStore())
	} else {
		if cfg.RunMigrations {
			if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
				log.Fatalf("migration failed: %v", err)
			}
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		container.SetPGPool(pool)
		container.SetStore(pginfra.NewStore(pool))
	}

	// Redis backs login sessions and rate limits; both degrade to no-ops without it
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable; sessions and rate limits will fail open")
		}
	}

	hasher, err := helpers.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("invalid BCRYPT_COST: %v", err)
	}

	// Domain events
	if cfg.EventsEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
		container.SetRabbitPub(pub)
	}

	var metrics *middleware.Metrics
	if cfg.MetricsEnabled {
		metrics = middleware.NewMetrics("business_manager").WithPool(container.GetPGPool())
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetHasher(hasher)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL))
	container.SetMetrics(metrics)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if metrics != nil {
		r.Use(metrics.Middleware())
	}
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.Env == "development" || cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"store": cfg.StoreDriver, "auth": cfg.AuthEnabled}).Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// golang-migrate needs database/sql; pgx provides the driver
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
