package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/routes"
	"github.com/fennwick/brasserie/pkg/response"
	"github.com/fennwick/brasserie/pkg/router"
)

type api struct {
	t       *testing.T
	handler http.Handler
	db      *gorm.DB
	token   string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Staff{}, &models.Customer{}, &models.Allergen{},
		&models.Product{}, &models.Order{}, &models.OrderLineItem{},
	))

	r := router.New()
	require.NoError(t, routes.RegisterAPI(r, db))

	a := &api{t: t, handler: r.Handler(), db: db}
	a.register()
	return a
}

// register creates a staff account and stores the token for later requests.
func (a *api) register() {
	rec := a.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username":         "head_chef",
		"password":         "secret123",
		"password_confirm": "secret123",
	}, false)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotEmpty(a.t, env.Data.Token)
	a.token = env.Data.Token
}

func (a *api) do(method, path string, body any, withAuth bool) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/api/customers", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, envelope(t, rec).Success)
}

func TestInvalidTokenRejected(t *testing.T) {
	a := newAPI(t)
	a.token = "not-a-jwt"

	rec := a.do(http.MethodGet, "/api/customers", nil, true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutAndMe(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/api/auth/me", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "head_chef")
	assert.NotContains(t, rec.Body.String(), "secret123")

	rec = a.do(http.MethodPost, "/api/auth/logout", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope(t, rec).Success)
}

func TestCustomerLifecycle(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/customers", map[string]any{
		"first_name": "Marie",
		"last_name":  "Laurent",
		"email":      "marie@example.com",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data models.Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Marie Laurent", created.Data.FullName)

	rec = a.do(http.MethodPatch, fmt.Sprintf("/api/customers/%d", created.Data.ID), map[string]any{
		"last_name": "Dubois",
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated struct {
		Data models.Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Marie Dubois", updated.Data.FullName)
	assert.Equal(t, "marie@example.com", updated.Data.Email)

	rec = a.do(http.MethodDelete, fmt.Sprintf("/api/customers/%d", created.Data.ID), nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, fmt.Sprintf("/api/customers/%d", created.Data.ID), nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerValidationReturns400(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/customers", map[string]any{
		"first_name": "",
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors"`)
}

func TestProductEnumEndpoints(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/api/products/types", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Main Course")

	rec = a.do(http.MethodGet, "/api/products/suitabilities", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gluten Free")

	rec = a.do(http.MethodGet, "/api/orders/payment_methods", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bank Transfer")

	rec = a.do(http.MethodGet, "/api/orders/statuses", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "In Progress")

	rec = a.do(http.MethodGet, "/api/allergens/types", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Crustaceans")
}

func TestTrailingSlashAccepted(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/api/customers/", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/api/products/types/", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Main Course")
}

func TestProductStoredInactiveStaysInactive(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/products", map[string]any{
		"product_name":  "Seasonal Special",
		"product_price": "9.00",
		"is_active":     false,
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var stored models.Product
	require.NoError(t, a.db.First(&stored, "product_name = ?", "Seasonal Special").Error)
	assert.False(t, stored.IsActive)
}

func TestOrderFlowOverHTTP(t *testing.T) {
	a := newAPI(t)

	customer := models.Customer{FirstName: "Marie", LastName: "Laurent"}
	require.NoError(t, a.db.Create(&customer).Error)
	product := models.Product{
		ProductName:        "Steak Frites",
		ProductPrice:       decimal.RequireFromString("18.90"),
		ProductType:        models.ProductTypeMain,
		ProductSuitability: models.SuitabilityNone,
		IsActive:           true,
	}
	require.NoError(t, a.db.Create(&product).Error)

	rec := a.do(http.MethodPost, "/api/orders", map[string]any{
		"customer_id": customer.ID,
		"products": []map[string]any{
			{"product_id": product.ID, "quantity": 2},
		},
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "37.80", created.Data.TotalPrice.StringFixed(2))

	// Adding an unknown product is a 404, not a validation error.
	rec = a.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/add_product", created.Data.ID), map[string]any{
		"product_id": 999,
	}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/remove_product", created.Data.ID), map[string]any{
		"product_id": product.ID,
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var afterRemove struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &afterRemove))
	assert.Equal(t, "0.00", afterRemove.Data.TotalPrice.StringFixed(2))

	// Removing again is non-idempotent.
	rec = a.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/remove_product", created.Data.ID), map[string]any{
		"product_id": product.ID,
	}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGraphQLQuery(t *testing.T) {
	a := newAPI(t)

	product := models.Product{
		ProductName:        "Ratatouille",
		ProductPrice:       decimal.RequireFromString("13.50"),
		ProductType:        models.ProductTypeMain,
		ProductSuitability: models.SuitabilityVegan,
		IsActive:           true,
	}
	require.NoError(t, a.db.Create(&product).Error)

	rec := a.do(http.MethodPost, "/api/graphql", map[string]any{
		"query": `{ products { productName productPrice } }`,
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Ratatouille")
	assert.Contains(t, rec.Body.String(), "13.50")
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/metrics", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "brasserie_")
}
