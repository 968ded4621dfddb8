package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/internal/interface/middleware"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, token.Token, token.ExpiresAt)
	response.Success(c, http.StatusOK, gin.H{"user": user, "accessToken": token.Token}, "login successful", map[string]any{"access_expires_at": token.ExpiresAt})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), c.GetInt64(middleware.CtxUserIDKey)); err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Me(c.Request.Context(), c.GetInt64(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}
