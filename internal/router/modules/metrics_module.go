package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/JoaquinVilchez/business-manager-api/internal/interface/middleware"
)

type MetricsModule struct {
	Metrics *middleware.Metrics
	Redis   *redis.Client
}

func NewMetricsModule(m *middleware.Metrics, rdb *redis.Client) *MetricsModule {
	return &MetricsModule{Metrics: m, Redis: rdb}
}

// Register exposes the prometheus scrape endpoint. Private-network scrapers
// are not rate limited.
func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, middleware.Limit{Max: 120, Window: time.Minute, Key: middleware.KeyByIP(), Allow: middleware.AllowPrivateIP()})
	rg.GET("/metrics", rl, m.Metrics.Handler())
}
