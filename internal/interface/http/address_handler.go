package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/pkg/patch"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

type AddressHandler struct {
	Svc    *application.AddressService
	Logger *logrus.Logger
}

func NewAddressHandler(svc *application.AddressService, logger *logrus.Logger) *AddressHandler {
	return &AddressHandler{Svc: svc, Logger: logger}
}

type createAddressRequest struct {
	Street           string  `json:"street" binding:"required,max=100"`
	Number           string  `json:"number" binding:"required,max=10"`
	ApartmentOrFloor *string `json:"apartmentOrFloor" binding:"omitempty,max=20"`
	City             string  `json:"city" binding:"required,max=50"`
	State            string  `json:"state" binding:"required,max=50"`
	ZipCode          string  `json:"zipCode" binding:"required,max=10"`
}

type updateAddressRequest struct {
	Street           *string                `json:"street" binding:"omitempty,min=1,max=100"`
	Number           *string                `json:"number" binding:"omitempty,min=1,max=10"`
	ApartmentOrFloor patch.Nullable[string] `json:"apartmentOrFloor" binding:"omitempty,max=20"`
	City             *string                `json:"city" binding:"omitempty,min=1,max=50"`
	State            *string                `json:"state" binding:"omitempty,min=1,max=50"`
	ZipCode          *string                `json:"zipCode" binding:"omitempty,max=10"`
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req createAddressRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), application.CreateAddressInput{
		Street:           req.Street,
		Number:           req.Number,
		ApartmentOrFloor: req.ApartmentOrFloor,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "address created", nil)
}

func (h *AddressHandler) List(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Svc.FindAll(c.Request.Context(), q)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Data, "addresses", page.Meta)
}

func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.Svc.FindOne(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "address", nil)
}

func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateAddressRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), id, application.UpdateAddressInput{
		Street:           req.Street,
		Number:           req.Number,
		ApartmentOrFloor: req.ApartmentOrFloor,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "address updated", nil)
}

func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.Svc.Remove(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "address deleted", nil)
}
