package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

type InvoiceTypeHandler struct {
	Svc    *application.InvoiceTypeService
	Logger *logrus.Logger
}

func NewInvoiceTypeHandler(svc *application.InvoiceTypeService, logger *logrus.Logger) *InvoiceTypeHandler {
	return &InvoiceTypeHandler{Svc: svc, Logger: logger}
}

type createInvoiceTypeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}

type updateInvoiceTypeRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=50"`
}

func (h *InvoiceTypeHandler) Create(c *gin.Context) {
	var req createInvoiceTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	it, err := h.Svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, it, "invoice type created", nil)
}

func (h *InvoiceTypeHandler) List(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Svc.FindAll(c.Request.Context(), q)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Data, "invoice types", page.Meta)
}

func (h *InvoiceTypeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	it, err := h.Svc.FindOne(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, it, "invoice type", nil)
}

func (h *InvoiceTypeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateInvoiceTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	it, err := h.Svc.Update(c.Request.Context(), id, application.InvoiceTypeInput{Name: req.Name})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, it, "invoice type updated", nil)
}

func (h *InvoiceTypeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.Svc.Remove(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "invoice type deleted", nil)
}
