package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/JoaquinVilchez/business-manager-api/internal/interface/http"
	"github.com/JoaquinVilchez/business-manager-api/internal/interface/middleware"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, middleware.Limit{Max: 10, Window: time.Minute, Key: middleware.KeyByIPAndPath()})

	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
