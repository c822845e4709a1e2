package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermemory "github.com/foodorder/go-gin-services/internal/domains/orders/adapters/memory"
	"github.com/foodorder/go-gin-services/internal/domains/orders/application"
	"github.com/foodorder/go-gin-services/internal/domains/orders/ports"
)

type stubVerifier struct {
	items map[string]ports.CatalogItem
}

func (v *stubVerifier) Verify(_ context.Context, menuItemID string) (*ports.CatalogItem, error) {
	item, ok := v.items[menuItemID]
	if !ok {
		return nil, ports.ErrItemUnavailable
	}
	return &item, nil
}

func newOrderRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	verifier := &stubVerifier{items: map[string]ports.CatalogItem{
		"item-1": {ID: "item-1", Name: "Burger", Price: 10.00, Available: true},
	}}
	service := application.NewService(ordermemory.NewRepository(), verifier)
	router := gin.New()
	NewHandler(service).Register(router.Group("/api/orders"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func placeOrder(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/orders",
		`{"user_id":"user-1","menu_item_id":"item-1","quantity":2,"total_price":20.00}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.ID)
	return envelope.Data.ID
}

func TestCreateOrder_Created(t *testing.T) {
	router := newOrderRouter()
	rec := doJSON(t, router, http.MethodPost, "/api/orders",
		`{"user_id":"user-1","menu_item_id":"item-1","quantity":2,"total_price":20.00}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"status":"pending"`)
}

func TestCreateOrder_MissingFields(t *testing.T) {
	router := newOrderRouter()
	rec := doJSON(t, router, http.MethodPost, "/api/orders", `{"user_id":"user-1"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "/problems/validation-error")
	assert.Contains(t, body, "menu_item_id")
	assert.Contains(t, body, "quantity")
	assert.Contains(t, body, "total_price")
}

func TestCreateOrder_UnknownItem(t *testing.T) {
	router := newOrderRouter()
	rec := doJSON(t, router, http.MethodPost, "/api/orders",
		`{"user_id":"user-1","menu_item_id":"item-404","quantity":1,"total_price":10.00}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "/problems/reference-not-found")
}

func TestCreateOrder_PriceMismatch(t *testing.T) {
	router := newOrderRouter()
	rec := doJSON(t, router, http.MethodPost, "/api/orders",
		`{"user_id":"user-1","menu_item_id":"item-1","quantity":3,"total_price":25.00}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "/problems/price-mismatch")
	assert.Contains(t, body, `"expected":30`)
	assert.Contains(t, body, `"received":25`)
}

func TestGetOrder_NotFound(t *testing.T) {
	router := newOrderRouter()
	rec := doJSON(t, router, http.MethodGet, "/api/orders/missing", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/problems/not-found")
	assert.Contains(t, rec.Body.String(), "missing")
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	router := newOrderRouter()
	id := placeOrder(t, router)

	rec := doJSON(t, router, http.MethodPatch, "/api/orders/"+id+"/status", `{"status":"shipped"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "/problems/invalid-status")

	rec = doJSON(t, router, http.MethodGet, "/api/orders/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestBulkUpdateStatus_EmptyList(t *testing.T) {
	router := newOrderRouter()
	rec := doJSON(t, router, http.MethodPatch, "/api/orders/bulk/status",
		`{"order_ids":[],"status":"confirmed"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "/problems/validation-error")
}

func TestBulkUpdateStatus_ReportsCount(t *testing.T) {
	router := newOrderRouter()
	first := placeOrder(t, router)
	second := placeOrder(t, router)

	rec := doJSON(t, router, http.MethodPatch, "/api/orders/bulk/status",
		`{"order_ids":["`+first+`","`+second+`","missing"],"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated_count":2`)
}

func TestListOrders_PaginationEnvelope(t *testing.T) {
	router := newOrderRouter()
	placeOrder(t, router)
	placeOrder(t, router)
	placeOrder(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/orders?page=1&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success    bool              `json:"success"`
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			CurrentPage  int   `json:"current_page"`
			TotalPages   int64 `json:"total_pages"`
			TotalItems   int64 `json:"total_items"`
			ItemsPerPage int   `json:"items_per_page"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Len(t, envelope.Data, 2)
	assert.Equal(t, int64(3), envelope.Pagination.TotalItems)
	assert.Equal(t, int64(2), envelope.Pagination.TotalPages)
}

func TestStats_Summary(t *testing.T) {
	router := newOrderRouter()
	placeOrder(t, router)
	placeOrder(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/orders/stats/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			TotalOrders  int64   `json:"totalOrders"`
			TotalRevenue float64 `json:"totalRevenue"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(2), envelope.Data.TotalOrders)
	assert.InDelta(t, 40.00, envelope.Data.TotalRevenue, 0.001)
}

func TestDeleteOrder_ThenGet(t *testing.T) {
	router := newOrderRouter()
	id := placeOrder(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/api/orders/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/orders/"+id, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
