package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

type PaymentMethodHandler struct {
	Svc    *application.PaymentMethodService
	Logger *logrus.Logger
}

func NewPaymentMethodHandler(svc *application.PaymentMethodService, logger *logrus.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{Svc: svc, Logger: logger}
}

type createPaymentMethodRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type updatePaymentMethodRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=50"`
}

func (h *PaymentMethodHandler) Create(c *gin.Context) {
	var req createPaymentMethodRequest
	if !bindJSON(c, &req) {
		return
	}
	pm, err := h.Svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, pm, "payment method created", nil)
}

func (h *PaymentMethodHandler) List(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Svc.FindAll(c.Request.Context(), q)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Data, "payment methods", page.Meta)
}

func (h *PaymentMethodHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pm, err := h.Svc.FindOne(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, pm, "payment method", nil)
}

func (h *PaymentMethodHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updatePaymentMethodRequest
	if !bindJSON(c, &req) {
		return
	}
	pm, err := h.Svc.Update(c.Request.Context(), id, application.PaymentMethodInput{Name: req.Name})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, pm, "payment method updated", nil)
}

func (h *PaymentMethodHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.Svc.Remove(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "payment method deleted", nil)
}
