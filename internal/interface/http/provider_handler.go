package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/pkg/patch"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

type ProviderHandler struct {
	Svc    *application.ProviderService
	Logger *logrus.Logger
}

func NewProviderHandler(svc *application.ProviderService, logger *logrus.Logger) *ProviderHandler {
	return &ProviderHandler{Svc: svc, Logger: logger}
}

type createProviderRequest struct {
	CompanyName      string  `json:"companyName" binding:"required,min=2,max=100"`
	CUIT             string  `json:"cuit" binding:"required,cuit"`
	Responsable      *string `json:"responsable" binding:"omitempty,min=2,max=100"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone" binding:"omitempty,max=30"`
	CBU              *string `json:"cbu" binding:"omitempty,cbu"`
	Alias            *string `json:"alias" binding:"omitempty,alias"`
	Comment          *string `json:"comment" binding:"omitempty,max=500"`
	CategoryID       int64   `json:"categoryId" binding:"required,gt=0"`
	AddressID        *int64  `json:"addressId" binding:"omitempty,gt=0"`
	InvoiceTypeID    *int64  `json:"invoiceTypeId" binding:"omitempty,gt=0"`
	PaymentMethodIDs []int64 `json:"paymentMethodIds" binding:"required,min=1,dive,gt=0"`
}

// updateProviderRequest: addressId and invoiceTypeId accept null to detach.
type updateProviderRequest struct {
	CompanyName      *string               `json:"companyName" binding:"omitempty,min=2,max=100"`
	CUIT             *string               `json:"cuit" binding:"omitempty,cuit"`
	Responsable      *string               `json:"responsable" binding:"omitempty,min=2,max=100"`
	Email            *string               `json:"email" binding:"omitempty,email"`
	Phone            *string               `json:"phone" binding:"omitempty,max=30"`
	CBU              *string               `json:"cbu" binding:"omitempty,cbu"`
	Alias            *string               `json:"alias" binding:"omitempty,alias"`
	Comment          *string               `json:"comment" binding:"omitempty,max=500"`
	CategoryID       *int64                `json:"categoryId" binding:"omitempty,gt=0"`
	AddressID        patch.Nullable[int64] `json:"addressId" binding:"omitempty,gt=0"`
	InvoiceTypeID    patch.Nullable[int64] `json:"invoiceTypeId" binding:"omitempty,gt=0"`
	PaymentMethodIDs []int64               `json:"paymentMethodIds" binding:"omitempty,dive,gt=0"`
}

func (h *ProviderHandler) Create(c *gin.Context) {
	var req createProviderRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), application.CreateProviderInput{
		CompanyName:      req.CompanyName,
		CUIT:             req.CUIT,
		Responsable:      req.Responsable,
		Email:            req.Email,
		Phone:            req.Phone,
		CBU:              req.CBU,
		Alias:            req.Alias,
		Comment:          req.Comment,
		CategoryID:       req.CategoryID,
		AddressID:        req.AddressID,
		InvoiceTypeID:    req.InvoiceTypeID,
		PaymentMethodIDs: req.PaymentMethodIDs,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "provider created", nil)
}

func (h *ProviderHandler) List(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Svc.FindAll(c.Request.Context(), q)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Data, "providers", page.Meta)
}

func (h *ProviderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.Svc.FindOne(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "provider", nil)
}

func (h *ProviderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateProviderRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, application.UpdateProviderInput{
		CompanyName:      req.CompanyName,
		CUIT:             req.CUIT,
		Responsable:      req.Responsable,
		Email:            req.Email,
		Phone:            req.Phone,
		CBU:              req.CBU,
		Alias:            req.Alias,
		Comment:          req.Comment,
		CategoryID:       req.CategoryID,
		AddressID:        req.AddressID,
		InvoiceTypeID:    req.InvoiceTypeID,
		PaymentMethodIDs: req.PaymentMethodIDs,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "provider updated", nil)
}

func (h *ProviderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.Svc.Remove(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "provider deleted", nil)
}
