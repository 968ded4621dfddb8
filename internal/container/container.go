package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/config"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
	"github.com/JoaquinVilchez/business-manager-api/internal/interface/middleware"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
)

// app-level container to share constructed components across packages.
// The router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	store       repository.Store

	jwtManager *helpers.JWTManager
	hasher     *helpers.BcryptHasher
	rabbitPub  *helpers.RabbitPublisher
	metrics    *middleware.Metrics
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetStore(s repository.Store)  { store = s }
func GetStore() repository.Store   { return store }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetHasher(h *helpers.BcryptHasher)       { hasher = h }
func GetHasher() *helpers.BcryptHasher        { return hasher }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetMetrics(m *middleware.Metrics)        { metrics = m }
func GetMetrics() *middleware.Metrics         { return metrics }
