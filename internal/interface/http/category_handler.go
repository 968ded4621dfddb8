package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

type createCategoryRequest struct {
	Code string `json:"code" binding:"required,max=20"`
	Name string `json:"name" binding:"required,max=100"`
}

type updateCategoryRequest struct {
	Code *string `json:"code" binding:"omitempty,min=1,max=20"`
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), application.CreateCategoryInput{Code: req.Code, Name: req.Name})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, cat, "category created", nil)
}

func (h *CategoryHandler) List(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Svc.FindAll(c.Request.Context(), q)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Data, "categories", page.Meta)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := h.Svc.FindOne(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cat, "category", nil)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.Svc.Update(c.Request.Context(), id, application.UpdateCategoryInput{Code: req.Code, Name: req.Name})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cat, "category updated", nil)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.Svc.Remove(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "category deleted", nil)
}
