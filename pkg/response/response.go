package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries a stable machine-readable code next to the message.
type ErrorBody struct {
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Success writes a successful envelope.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Error writes a failed envelope and aborts the handler chain.
func Error(ctx *gin.Context, status int, code, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     &ErrorBody{Code: code, Details: details},
	})
}
