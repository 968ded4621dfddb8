package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/JoaquinVilchez/business-manager-api/config"
	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/internal/container"
	"github.com/JoaquinVilchez/business-manager-api/internal/domain/entity"
	"github.com/JoaquinVilchez/business-manager-api/internal/infrastructure/memory"
	"github.com/JoaquinVilchez/business-manager-api/internal/interface/middleware"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
	"github.com/JoaquinVilchez/business-manager-api/pkg/validation"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   *struct {
		Code    string          `json:"code"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type client struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newClient(t *testing.T, authEnabled bool) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	hasher, err := helpers.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	container.SetConfig(&config.Config{AuthEnabled: authEnabled, RateLimitPerMinute: 100, SessionTTL: time.Hour})
	container.SetLogger(helpers.NewTestLogger())
	container.SetStore(memory.NewStore())
	container.SetRedis(nil)
	container.SetRabbitPub(nil)
	container.SetHasher(hasher)
	container.SetJWT(helpers.NewJWTManager("test-secret", time.Hour))
	container.SetMetrics(middleware.NewMetrics("test"))

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), container.GetMetrics().Middleware())
	reg := NewRegistry(r)
	InitModules(reg)
	reg.RegisterAll()
	return &client{t: t, engine: r}
}

func (c *client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

// create posts body and returns the id of the created row.
func (c *client) create(path string, body any) int64 {
	c.t.Helper()
	code, env := c.do(http.MethodPost, path, body)
	require.Equal(c.t, http.StatusCreated, code, string(env.Data))
	var row struct {
		ID int64 `json:"id"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &row))
	return row.ID
}

func errorCode(env envelope) string {
	if env.Error == nil {
		return ""
	}
	return env.Error.Code
}

func TestProviderLifecycleOverHTTP(t *testing.T) {
	c := newClient(t, false)

	catID := c.create("/api/categories", gin.H{"code": "CAT1", "name": "Supplies"})
	pmID := c.create("/api/payment-methods", gin.H{"name": "Transfer"})

	code, env := c.do(http.MethodPost, "/api/providers", gin.H{
		"companyName": "Acme", "cuit": "30-12345678-9", "categoryId": 999, "paymentMethodIds": []int64{pmID},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "reference_not_found", errorCode(env))

	provID := c.create("/api/providers", gin.H{
		"companyName": "Acme", "cuit": "30-12345678-9", "categoryId": catID, "paymentMethodIds": []int64{pmID},
	})

	code, env = c.do(http.MethodPost, "/api/providers", gin.H{
		"companyName": "Other", "cuit": "30-12345678-9", "categoryId": catID, "paymentMethodIds": []int64{pmID},
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "duplicate_value", errorCode(env))

	code, env = c.do(http.MethodDelete, "/api/categories/"+itoa(catID), nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "entity_in_use", errorCode(env))

	code, env = c.do(http.MethodGet, "/api/providers/"+itoa(provID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":`+itoa(pmID)+`,"name":"Transfer"}]`, string(jsonField(t, env.Data, "paymentMethods")))

	code, _ = c.do(http.MethodDelete, "/api/providers/"+itoa(provID), nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodDelete, "/api/categories/"+itoa(catID), nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = c.do(http.MethodGet, "/api/providers/"+itoa(provID), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", errorCode(env))
}

func TestTransactionAmountsOverHTTP(t *testing.T) {
	c := newClient(t, false)
	catID := c.create("/api/categories", gin.H{"code": "C", "name": "C"})
	pmID := c.create("/api/payment-methods", gin.H{"name": "Cash"})
	provID := c.create("/api/providers", gin.H{
		"companyName": "Acme", "cuit": "30-12345678-9", "categoryId": catID, "paymentMethodIds": []int64{pmID},
	})
	userID := c.create("/api/users", gin.H{
		"firstName": "Ana", "lastName": "Diaz", "email": "ana@example.com", "password": "secret123", "role": "USER",
	})

	tx := gin.H{
		"date": "2024-03-01", "type": "EXPENSE", "amount": 100, "paidAmount": 150,
		"status": "PAID", "matchesInvoice": true, "providerId": provID, "userId": userID,
	}
	code, env := c.do(http.MethodPost, "/api/transactions", tx)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_amount", errorCode(env))

	tx["paidAmount"] = 100
	txID := c.create("/api/transactions", tx)

	code, env = c.do(http.MethodPatch, "/api/transactions/"+itoa(txID), gin.H{"amount": 50})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_amount", errorCode(env))

	code, _ = c.do(http.MethodPatch, "/api/transactions/"+itoa(txID), gin.H{"amount": 50, "paidAmount": nil})
	assert.Equal(t, http.StatusOK, code)

	code, env = c.do(http.MethodDelete, "/api/users/"+itoa(userID), nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "entity_in_use", errorCode(env))
}

func TestPayloadValidationAndPaging(t *testing.T) {
	c := newClient(t, false)

	code, env := c.do(http.MethodPost, "/api/providers", gin.H{"companyName": "A", "cuit": "123"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_payload", errorCode(env))
	assert.Contains(t, string(env.Error.Details), "cuit")

	for _, name := range []string{"A", "B", "C"} {
		c.create("/api/invoice-types", gin.H{"name": name + " invoice"})
	}
	code, env = c.do(http.MethodGet, "/api/invoice-types?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"total":3,"page":2,"limit":2,"totalPages":2}`, string(env.Meta))

	code, env = c.do(http.MethodGet, "/api/invoice-types?limit=101", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_payload", errorCode(env))

	code, _ = c.do(http.MethodGet, "/api/invoice-types/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = c.do(http.MethodGet, "/api/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "route_not_found", errorCode(env))
}

func TestAuthGatesEntityRoutes(t *testing.T) {
	c := newClient(t, true)

	code, _ := c.do(http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	svc := BuildServices()
	_, err := svc.Users.Create(context.Background(), userInput("admin@example.com", "ADMIN"))
	require.NoError(t, err)
	_, err = svc.Users.Create(context.Background(), userInput("clerk@example.com", "USER"))
	require.NoError(t, err)

	code, env := c.do(http.MethodPost, "/api/auth/login", gin.H{"email": "clerk@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid_credentials", errorCode(env))

	c.token = c.login("clerk@example.com")
	code, _ = c.do(http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusForbidden, code)

	c.token = c.login("admin@example.com")
	code, _ = c.do(http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = c.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"admin@example.com"`, string(jsonField(t, env.Data, "email")))
}

func (c *client) login(email string) string {
	c.t.Helper()
	code, env := c.do(http.MethodPost, "/api/auth/login", gin.H{"email": email, "password": "password123"})
	require.Equal(c.t, http.StatusOK, code)
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(c.t, out.AccessToken)
	return out.AccessToken
}

func userInput(email, role string) application.CreateUserInput {
	return application.CreateUserInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password123",
		Role:      entity.Role(role),
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func jsonField(t *testing.T, raw json.RawMessage, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[key]
}
