package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/pkg/patch"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

type TransactionHandler struct {
	Svc    *application.TransactionService
	Logger *logrus.Logger
}

func NewTransactionHandler(svc *application.TransactionService, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{Svc: svc, Logger: logger}
}

type createTransactionRequest struct {
	Date            *date                    `json:"date" binding:"required"`
	DueDate         *date                    `json:"dueDate"`
	ReceiptNumber   *string                  `json:"receiptNumber" binding:"omitempty,max=50"`
	Type            entity.TransactionType   `json:"type" binding:"required,oneof=EXPENSE INCOME"`
	Amount          decimal.Decimal          `json:"amount" binding:"required,gt=0,lte=999999999.99"`
	PaidAmount      *decimal.Decimal         `json:"paidAmount" binding:"omitempty,gt=0,lte=999999999.99"`
	Status          entity.TransactionStatus `json:"status" binding:"required,oneof=PENDING PARTIALLY_PAID PAID CANCELLED EXPIRED"`
	MatchesInvoice  *bool                    `json:"matchesInvoice" binding:"required"`
	Comment         *string                  `json:"comment" binding:"omitempty,max=500"`
	ProviderID      int64                    `json:"providerId" binding:"required,gt=0"`
	UserID          int64                    `json:"userId" binding:"required,gt=0"`
	PaymentMethodID *int64                   `json:"paymentMethodId" binding:"omitempty,gt=0"`
}

// updateTransactionRequest: dueDate, paidAmount and paymentMethodId accept null to clear.
type updateTransactionRequest struct {
	Date            *date                           `json:"date"`
	DueDate         patch.Nullable[date]            `json:"dueDate"`
	ReceiptNumber   *string                         `json:"receiptNumber" binding:"omitempty,max=50"`
	Type            *entity.TransactionType         `json:"type" binding:"omitempty,oneof=EXPENSE INCOME"`
	Amount          *decimal.Decimal                `json:"amount" binding:"omitempty,gt=0,lte=999999999.99"`
	PaidAmount      patch.Nullable[decimal.Decimal] `json:"paidAmount" binding:"omitempty,gt=0,lte=999999999.99"`
	Status          *entity.TransactionStatus       `json:"status" binding:"omitempty,oneof=PENDING PARTIALLY_PAID PAID CANCELLED EXPIRED"`
	MatchesInvoice  *bool                           `json:"matchesInvoice"`
	Comment         *string                         `json:"comment" binding:"omitempty,max=500"`
	ProviderID      *int64                          `json:"providerId" binding:"omitempty,gt=0"`
	UserID          *int64                          `json:"userId" binding:"omitempty,gt=0"`
	PaymentMethodID patch.Nullable[int64]           `json:"paymentMethodId" binding:"omitempty,gt=0"`
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), application.CreateTransactionInput{
		Date:            *req.Date.ptr(),
		DueDate:         req.DueDate.ptr(),
		ReceiptNumber:   req.ReceiptNumber,
		Type:            req.Type,
		Amount:          req.Amount,
		PaidAmount:      req.PaidAmount,
		Status:          req.Status,
		MatchesInvoice:  *req.MatchesInvoice,
		Comment:         req.Comment,
		ProviderID:      req.ProviderID,
		UserID:          req.UserID,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "transaction created", nil)
}

func (h *TransactionHandler) List(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Svc.FindAll(c.Request.Context(), q)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Data, "transactions", page.Meta)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Svc.FindOne(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t, "transaction", nil)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), id, application.UpdateTransactionInput{
		Date:            req.Date.ptr(),
		DueDate:         nullableDate(req.DueDate),
		ReceiptNumber:   req.ReceiptNumber,
		Type:            req.Type,
		Amount:          req.Amount,
		PaidAmount:      req.PaidAmount,
		Status:          req.Status,
		MatchesInvoice:  req.MatchesInvoice,
		Comment:         req.Comment,
		ProviderID:      req.ProviderID,
		UserID:          req.UserID,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t, "transaction updated", nil)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.Svc.Remove(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "transaction deleted", nil)
}
