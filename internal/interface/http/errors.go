package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

// Stable error codes carried in error.code of the response envelope.
const (
	CodeInvalidPayload     = "invalid_payload"
	CodeNotFound           = "not_found"
	CodeDuplicateValue     = "duplicate_value"
	CodeEntityInUse        = "entity_in_use"
	CodeReferenceNotFound  = "reference_not_found"
	CodeInvalidAmount      = "invalid_amount"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInternal           = "internal_error"
)

// classify maps the application error taxonomy onto HTTP.
func classify(err error) (int, string, any) {
	var (
		nf  *application.NotFoundError
		dup *application.DuplicateValueError
		ref *application.ReferenceNotFoundError
		use *application.EntityInUseError
	)
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound, CodeNotFound, gin.H{"entity": nf.Entity, "id": nf.ID}
	case errors.As(err, &dup):
		return http.StatusConflict, CodeDuplicateValue, gin.H{"entity": dup.Entity, "field": dup.Field, "value": dup.Value}
	case errors.As(err, &use):
		return http.StatusConflict, CodeEntityInUse, gin.H{"entity": use.Entity, "id": use.ID, "dependent": use.Dependent}
	case errors.As(err, &ref):
		details := gin.H{"entity": ref.Entity}
		if ref.ID != 0 {
			details["id"] = ref.ID
		}
		return http.StatusUnprocessableEntity, CodeReferenceNotFound, details
	case errors.Is(err, application.ErrInvalidAmount):
		return http.StatusBadRequest, CodeInvalidAmount, nil
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, CodeInvalidCredentials, nil
	default:
		return http.StatusInternalServerError, CodeInternal, nil
	}
}

// fail writes err as an error envelope. Internal errors are logged and never echoed.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status, code, details := classify(err)
	if status == http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		})
		response.Error(c, status, code, "internal server error", nil)
		return
	}
	response.Error(c, status, code, err.Error(), details)
}
