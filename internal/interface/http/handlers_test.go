package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
	"github.com/JoaquinVilchez/business-manager-api/pkg/patch"
)

func TestClassifyTaxonomy(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&application.NotFoundError{Entity: "Provider", ID: 1}, http.StatusNotFound, CodeNotFound},
		{&application.DuplicateValueError{Entity: "Category", Field: "code", Value: "X"}, http.StatusConflict, CodeDuplicateValue},
		{&application.EntityInUseError{Entity: "Category", ID: 1, Dependent: "Provider"}, http.StatusConflict, CodeEntityInUse},
		{&application.ReferenceNotFoundError{Entity: "Category", ID: 9}, http.StatusUnprocessableEntity, CodeReferenceNotFound},
		{fmt.Errorf("update: %w", application.ErrInvalidAmount), http.StatusBadRequest, CodeInvalidAmount},
		{application.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{errors.New("connection reset"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		status, code, _ := classify(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}

func TestClassifyReferenceDetails(t *testing.T) {
	_, _, details := classify(&application.ReferenceNotFoundError{Entity: "PaymentMethod", ID: 7})
	assert.Equal(t, gin.H{"entity": "PaymentMethod", "id": int64(7)}, details)

	_, _, details = classify(&application.ReferenceNotFoundError{Entity: "PaymentMethod"})
	assert.Equal(t, gin.H{"entity": "PaymentMethod"}, details)
}

func TestFailHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	fail(c, helpers.NewTestLogger(), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), `"code":"internal_error"`)
}

func TestDateAcceptsDateOnlyAndRFC3339(t *testing.T) {
	var body struct {
		A *date                `json:"a"`
		B *date                `json:"b"`
		C patch.Nullable[date] `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-03-01","b":"2024-03-01T10:00:00Z","c":null}`), &body))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *body.A.ptr())
	assert.Equal(t, 10, body.B.ptr().Hour())

	c := nullableDate(body.C)
	assert.True(t, c.Set)
	assert.False(t, c.Valid)

	err := json.Unmarshal([]byte(`{"a":"01/03/2024"}`), &body)
	var ute *json.UnmarshalTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "a", ute.Field)
}
