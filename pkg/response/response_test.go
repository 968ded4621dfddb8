package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorAbortsWithEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Error(c, http.StatusConflict, "duplicate_value", "Category with code CAT1 already exists", nil)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusConflict, w.Code)
	var body APIResponse[any]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "req-1", body.RequestID)
	require.NotNil(t, body.Error)
	assert.Equal(t, "duplicate_value", body.Error.Code)
}

func TestSuccessDefaultsToOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, 0, map[string]int{"id": 1}, "ok", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, string(mustField(t, w.Body.Bytes(), "data")))
}

func mustField(t *testing.T, raw []byte, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[key]
}
