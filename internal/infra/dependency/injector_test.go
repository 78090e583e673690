package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-ledger/api/config"
	"github.com/finance-ledger/api/internal/integration/entrypoint/dto"
	"github.com/finance-ledger/api/internal/testutil"
)

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func newAPI(t *testing.T, environment string, redisClient *redis.Client) (*apiClient, *testutil.TestDB) {
	tdb := testutil.SetupTestDB(t)
	cfg := &config.Config{
		Server: config.ServerConfig{Environment: environment},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Report: config.ReportConfig{RateLimit: 2, RateWindow: time.Minute},
		API:    config.APIConfig{Title: "Finance API", Version: "1.0.0"},
	}

	injector := NewInjector(cfg, tdb.DB, redisClient)
	_, err := injector.SeedDefaultCategories.Execute(context.Background())
	require.NoError(t, err)

	return &apiClient{t: t, handler: injector.Handler()}, tdb
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:5000"

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAPI_RootAndHealth(t *testing.T) {
	api, _ := newAPI(t, config.EnvTest, nil)

	root := decode[dto.MessageResponse](t, api.do(http.MethodGet, "/", nil))
	assert.Equal(t, "Welcome to Finance API", root.Message)
	assert.Equal(t, "1.0.0", root.Version)
	assert.Equal(t, "/docs", root.Docs)

	health := decode[map[string]string](t, api.do(http.MethodGet, "/health", nil))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "connected", health["database"])

	rec := api.do(http.MethodGet, "/docs", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/transactions/reports/download")
}

func TestAPI_HealthReportsLostDatabase(t *testing.T) {
	api, tdb := newAPI(t, config.EnvTest, nil)

	sqlDB, err := tdb.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "disconnected", decode[map[string]string](t, rec)["database"])
}

func TestAPI_CategoryLifecycle(t *testing.T) {
	api, _ := newAPI(t, config.EnvTest, nil)

	rec := api.do(http.MethodPost, "/categories", map[string]any{"name": "Pets", "is_income": false})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.CategoryResponse](t, rec)
	assert.Equal(t, "Pets", created.Name)
	assert.False(t, created.IsDefault)

	rec = api.do(http.MethodPost, "/categories", map[string]any{"name": "Pets"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CAT-010002", decode[dto.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodPut, fmt.Sprintf("/categories/%d", created.ID), map[string]any{"description": "Vet and food"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[dto.CategoryResponse](t, rec)
	assert.Equal(t, "Pets", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Vet and food", *updated.Description)

	// A PUT without the key keeps the description, an explicit null clears it
	rec = api.do(http.MethodPut, fmt.Sprintf("/categories/%d", created.ID), map[string]any{"is_income": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decode[dto.CategoryResponse](t, rec).Description)

	rec = api.do(http.MethodPut, fmt.Sprintf("/categories/%d", created.ID), map[string]any{"description": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[dto.CategoryResponse](t, rec).Description)

	rec = api.do(http.MethodPut, fmt.Sprintf("/categories/%d", created.ID), map[string]any{"name": "Food"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, fmt.Sprintf("/categories/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/categories/%d", created.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, fmt.Sprintf("/categories/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CAT-010001", decode[dto.ErrorResponse](t, rec).Code)
}

func TestAPI_CategoryListAndValidation(t *testing.T) {
	api, _ := newAPI(t, config.EnvTest, nil)

	all := decode[[]dto.CategoryResponse](t, api.do(http.MethodGet, "/categories", nil))
	assert.Len(t, all, 13)

	income := decode[[]dto.CategoryResponse](t, api.do(http.MethodGet, "/categories?is_income=true", nil))
	assert.Len(t, income, 5)

	page := decode[[]dto.CategoryResponse](t, api.do(http.MethodGet, "/categories?skip=2&limit=3", nil))
	require.Len(t, page, 3)
	assert.Equal(t, all[2].ID, page[0].ID)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"limit too large", http.MethodGet, "/categories?limit=5000", nil},
		{"zero limit", http.MethodGet, "/categories?limit=0", nil},
		{"zero transaction limit", http.MethodGet, "/transactions?limit=0", nil},
		{"negative skip", http.MethodGet, "/categories?skip=-1", nil},
		{"missing name", http.MethodPost, "/categories", map[string]any{"is_income": true}},
		{"blank name", http.MethodPost, "/categories", map[string]any{"name": "   "}},
		{"non numeric id", http.MethodGet, "/categories/abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		})
	}
}

func TestAPI_DeleteGuards(t *testing.T) {
	api, tdb := newAPI(t, config.EnvTest, nil)

	food := decode[dto.CategoryResponse](t, api.do(http.MethodPost, "/categories", map[string]any{"name": "Snacks"}))
	tdb.CreateTransaction(3.5, food.ID, false, "2024-01-02")

	rec := api.do(http.MethodDelete, fmt.Sprintf("/categories/%d", food.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CAT-020001", decode[dto.ErrorResponse](t, rec).Code)

	defaults := decode[[]dto.CategoryResponse](t, api.do(http.MethodGet, "/categories?is_default=true&limit=1", nil))
	require.Len(t, defaults, 1)
	rec = api.do(http.MethodDelete, fmt.Sprintf("/categories/%d", defaults[0].ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CAT-020002", decode[dto.ErrorResponse](t, rec).Code)
}

func TestAPI_TransactionsAndReports(t *testing.T) {
	api, _ := newAPI(t, config.EnvTest, nil)

	rec := api.do(http.MethodPost, "/transactions", map[string]any{
		"amount": 100.50, "category": "Food", "is_income": false, "date": "2024-01-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	food := decode[dto.TransactionResponse](t, rec)
	assert.Equal(t, "Food", food.CategoryName)
	assert.Equal(t, "Food", food.Category)

	rec = api.do(http.MethodPost, "/transactions", map[string]any{
		"amount": 5000.0, "category": "Salary", "is_income": true, "date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	aggregate := decode[dto.AggregateResponse](t, api.do(http.MethodGet, "/transactions/reports/aggregate", nil))
	assert.Equal(t, 5000.0, aggregate.TotalIncome)
	assert.Equal(t, 100.50, aggregate.TotalExpense)
	assert.Equal(t, 4899.50, aggregate.Balance)
	assert.Equal(t, 2, aggregate.Count)

	list := decode[[]dto.TransactionResponse](t, api.do(http.MethodGet, "/transactions?is_income=false", nil))
	require.Len(t, list, 1)
	assert.Equal(t, food.ID, list[0].ID)

	rec = api.do(http.MethodPut, fmt.Sprintf("/transactions/%d", food.ID), map[string]any{"amount": 80.0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 80.0, decode[dto.TransactionResponse](t, rec).Amount)

	rec = api.do(http.MethodGet, "/transactions/reports/download?start_date=2024-01-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="transactions_2024-01-10_all.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "id,amount,category_id,category_name,description,is_income,date\n")

	rec = api.do(http.MethodGet, "/transactions/reports/download?file_type=pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = api.do(http.MethodGet, "/transactions/reports/download?file_type=xlsx", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "RPT-010001", decode[dto.ErrorResponse](t, rec).Code)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/transactions/%d", food.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, fmt.Sprintf("/transactions/%d", food.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "TXN-010001", decode[dto.ErrorResponse](t, rec).Code)
}

func TestAPI_TransactionValidation(t *testing.T) {
	api, _ := newAPI(t, config.EnvTest, nil)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"zero amount", map[string]any{"amount": 0, "category": "Food", "date": "2024-01-01"}, http.StatusUnprocessableEntity},
		{"negative amount", map[string]any{"amount": -3, "category": "Food", "date": "2024-01-01"}, http.StatusUnprocessableEntity},
		{"bad date", map[string]any{"amount": 3, "category": "Food", "date": "2024-13-01"}, http.StatusUnprocessableEntity},
		{"missing date", map[string]any{"amount": 3, "category": "Food"}, http.StatusUnprocessableEntity},
		{"unknown category id", map[string]any{"amount": 3, "category_id": 9999, "date": "2024-01-01"}, http.StatusNotFound},
		{"no category", map[string]any{"amount": 3, "date": "2024-01-01"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/transactions", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	rec := api.do(http.MethodGet, "/transactions/reports/aggregate?end_date=31-01-2024", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "TXN-010003", decode[dto.ErrorResponse](t, rec).Code)
}

func TestAPI_TransactionDescriptionCanBeCleared(t *testing.T) {
	api, _ := newAPI(t, config.EnvTest, nil)

	rec := api.do(http.MethodPost, "/transactions", map[string]any{
		"amount": 12.5, "category": "Food", "description": "Lunch", "date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.TransactionResponse](t, rec)
	path := fmt.Sprintf("/transactions/%d", created.ID)

	rec = api.do(http.MethodPut, path, map[string]any{"amount": 13})
	require.Equal(t, http.StatusOK, rec.Code)
	kept := decode[dto.TransactionResponse](t, rec)
	require.NotNil(t, kept.Description)
	assert.Equal(t, "Lunch", *kept.Description)

	rec = api.do(http.MethodPut, path, map[string]any{"description": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[dto.TransactionResponse](t, rec).Description)

	rec = api.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[dto.TransactionResponse](t, rec)
	assert.Nil(t, stored.Description)
	assert.Equal(t, 13.0, stored.Amount)

	rec = api.do(http.MethodPut, path, map[string]any{"description": 42})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAPI_AggregateRejectsBadDate(t *testing.T) {
	api, _ := newAPI(t, config.EnvTest, nil)

	rec := api.do(http.MethodGet, "/transactions/reports/aggregate?end_date=31-01-2024", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "TXN-010003", decode[dto.ErrorResponse](t, rec).Code)
}

func TestAPI_ReportDownloadIsRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	api, _ := newAPI(t, config.EnvDevelopment, client)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/transactions/reports/download", nil).Code)
	}

	rec := api.do(http.MethodGet, "/transactions/reports/download", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "REQ-020001", decode[dto.ErrorResponse](t, rec).Code)

	// Other routes are not limited
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/transactions/reports/aggregate", nil).Code)

	metrics := api.do(http.MethodGet, "/metrics", nil)
	assert.Contains(t, metrics.Body.String(), `rate_limit_exceeded_total{route="/transactions/reports/download"} 1`)
	assert.Contains(t, metrics.Body.String(), `reports_generated_total{degraded="false",file_type="csv"} 2`)
}

func TestAPI_CORS(t *testing.T) {
	api, _ := newAPI(t, config.EnvTest, nil)

	req := httptest.NewRequest(http.MethodOptions, "/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
