package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	FirstName string      `json:"firstName" binding:"required,max=50"`
	LastName  string      `json:"lastName" binding:"required,max=50"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,pwd,max=20"`
	Role      entity.Role `json:"role" binding:"required,oneof=ADMIN USER"`
}

type updateUserRequest struct {
	FirstName *string      `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName  *string      `json:"lastName" binding:"omitempty,min=1,max=50"`
	Email     *string      `json:"email" binding:"omitempty,email"`
	Password  *string      `json:"password" binding:"omitempty,pwd,max=20"`
	Role      *entity.Role `json:"role" binding:"omitempty,oneof=ADMIN USER"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), application.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Svc.FindAll(c.Request.Context(), q)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Data, "users", page.Meta)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.Svc.FindOne(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id, application.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.Svc.Remove(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "user deleted", nil)
}
