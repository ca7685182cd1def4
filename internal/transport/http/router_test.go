package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/JonathanThomaz/catalogo-produtos/internal/domain"
	"github.com/JonathanThomaz/catalogo-produtos/internal/repository"
	"github.com/JonathanThomaz/catalogo-produtos/internal/schema"
	"github.com/JonathanThomaz/catalogo-produtos/internal/service"
	httpTransport "github.com/JonathanThomaz/catalogo-produtos/internal/transport/http"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRouter builds the full stack over a private in-memory SQLite database.
func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := hclog.NewNullLogger()

	db, err := repository.Open(repository.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(db) })

	ps := service.NewProductService(repository.NewProductRepository(db), logger)
	ph := httpTransport.NewProductHandler(ps, logger)

	return httpTransport.NewRouter(ph, schema.NewSchemas(domain.NewValidation()), logger, nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func create(t *testing.T, h http.Handler, body string) domain.Product {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[domain.Product](t, rec)
}

func TestStatus(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	status := decode[httpTransport.StatusResponse](t, rec)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "API Catálogo de Produtos funcionando!", status.Message)
	assert.False(t, status.Timestamp.IsZero())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCreateProduct(t *testing.T) {
	h := setupRouter(t)

	t.Run("created", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/products", `{"title":" Phone ","description":"Nice","price":100.5}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Phone", body["title"])
		assert.Equal(t, "100.50", body["price"])
		assert.NotZero(t, body["id"])
		assert.NotEmpty(t, body["createdAt"])
		assert.NotEmpty(t, body["updatedAt"])
	})

	tests := []struct {
		name    string
		body    string
		status  int
		want    string
		details []string
	}{
		{"three decimals", `{"title":"a","description":"b","price":999.999}`,
			http.StatusBadRequest, httpTransport.CategoryInvalidData,
			[]string{"price: Preço deve ter no máximo 2 casas decimais"}},
		{"unknown field", `{"title":"a","description":"b","price":1,"sku":"x"}`,
			http.StatusBadRequest, httpTransport.CategoryInvalidData,
			[]string{"Campo(s) não reconhecido(s): 'sku'"}},
		{"negative price with three decimals", `{"title":"a","description":"b","price":-0.001}`,
			http.StatusBadRequest, httpTransport.CategoryInvalidData,
			[]string{
				"price: Preço deve ser um valor positivo",
				"price: Preço deve ter no máximo 2 casas decimais",
			}},
		{"empty body", ``,
			http.StatusBadRequest, httpTransport.CategoryInvalidData,
			[]string{
				"title: Título deve ser uma string",
				"description: Descrição deve ser uma string",
				"price: Preço deve ser um número",
			}},
		{"array body", `[]`,
			http.StatusBadRequest, httpTransport.CategoryInvalidData,
			[]string{"Esperado um objeto JSON"}},
		{"malformed json", `{"title":`,
			http.StatusBadRequest, httpTransport.CategoryValidation, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/products", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			resp := decode[httpTransport.ErrorResponse](t, rec)
			assert.Equal(t, tt.want, resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, tt.details, resp.Details)
		})
	}
}

func TestListProducts(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	a := create(t, h, `{"title":"A","description":"first","price":1}`)
	b := create(t, h, `{"title":"B","description":"second","price":2}`)

	rec = do(t, h, http.MethodGet, "/api/products?page=1&limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	products := decode[[]domain.Product](t, rec)
	require.Len(t, products, 2)
	assert.Equal(t, b.ID, products[0].ID)
	assert.Equal(t, a.ID, products[1].ID)

	rec = do(t, h, http.MethodGet, "/api/products?limit=101", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"limit: Limite deve ser entre 1 e 100"},
		decode[httpTransport.ErrorResponse](t, rec).Details)
}

func TestGetProduct(t *testing.T) {
	h := setupRouter(t)
	p := create(t, h, `{"title":"Phone","description":"Nice","price":10}`)

	rec := do(t, h, http.MethodGet, "/api/products/"+strconv.Itoa(p.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Phone", decode[domain.Product](t, rec).Title)

	rec = do(t, h, http.MethodGet, "/api/products/999999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httpTransport.ErrorResponse{
		Error:   "Produto não encontrado",
		Message: "Produto com ID 999999 não foi encontrado",
	}, decode[httpTransport.ErrorResponse](t, rec))
}

func TestInvalidID(t *testing.T) {
	h := setupRouter(t)

	tests := []struct {
		method string
		id     string
		want   string
	}{
		{http.MethodGet, "12a", "id: ID deve conter apenas números"},
		{http.MethodGet, "-5", "id: ID deve conter apenas números"},
		{http.MethodDelete, "1.5", "id: ID deve conter apenas números"},
		{http.MethodPut, "0", "id: ID deve ser um número positivo"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.id, func(t *testing.T) {
			rec := do(t, h, tt.method, "/api/products/"+tt.id, `{}`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[httpTransport.ErrorResponse](t, rec)
			assert.Equal(t, httpTransport.CategoryInvalidData, resp.Error)
			assert.Equal(t, []string{tt.want}, resp.Details)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	h := setupRouter(t)
	p := create(t, h, `{"title":"Phone","description":"Nice","price":10}`)
	path := "/api/products/" + strconv.Itoa(p.ID)

	t.Run("partial update", func(t *testing.T) {
		time.Sleep(10 * time.Millisecond)

		rec := do(t, h, http.MethodPut, path, `{"price":100.50}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "100.50", body["price"])
		assert.Equal(t, "Phone", body["title"])
		assert.Equal(t, "Nice", body["description"])

		updated := decode[domain.Product](t, rec)
		assert.Equal(t, p.ID, updated.ID)
		assert.True(t, updated.UpdatedAt.After(p.UpdatedAt),
			"updatedAt %s should be after %s", updated.UpdatedAt, p.UpdatedAt)
		assert.WithinDuration(t, p.CreatedAt, updated.CreatedAt, time.Millisecond)
	})

	t.Run("no fields", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, path, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[httpTransport.ErrorResponse](t, rec)
		assert.Equal(t, "Nenhum campo para atualizar", resp.Error)
		assert.Equal(t, "Pelo menos um campo deve ser fornecido para atualização", resp.Message)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[httpTransport.ErrorResponse](t, rec)
		assert.Equal(t, httpTransport.CategoryNoFields, resp.Error)
		assert.Empty(t, resp.Details)
	})

	t.Run("invalid field", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, path, `{"title":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{"title: Título não pode estar vazio"},
			decode[httpTransport.ErrorResponse](t, rec).Details)
	})

	t.Run("missing product", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, "/api/products/999999", `{"title":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, httpTransport.CategoryNotFound, decode[httpTransport.ErrorResponse](t, rec).Error)
	})
}

func TestDeleteProduct(t *testing.T) {
	h := setupRouter(t)
	p := create(t, h, `{"title":"Phone","description":"Nice","price":10}`)
	path := "/api/products/" + strconv.Itoa(p.ID)

	rec := do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httpTransport.CategoryNotFound, decode[httpTransport.ErrorResponse](t, rec).Error)

	rec = do(t, h, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoutes(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httpTransport.CategoryRouteNotFound, decode[httpTransport.ErrorResponse](t, rec).Error)

	rec = do(t, h, http.MethodPatch, "/api/products/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, httpTransport.CategoryMethodNotAllowed, decode[httpTransport.ErrorResponse](t, rec).Error)
}

func TestDocs(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodGet, "/swagger.yaml", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "basePath: /api")

	rec = do(t, h, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/swagger.yaml")
}

func TestCORS(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCompression(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestRecoveryMiddleware(t *testing.T) {
	mw := httpTransport.NewMiddleware(hclog.NewNullLogger())
	h := mw.RecoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, httpTransport.CategoryInternal, decode[httpTransport.ErrorResponse](t, rec).Error)
}

func TestBodyTooLarge(t *testing.T) {
	mw := httpTransport.NewMiddleware(hclog.NewNullLogger())
	mw.MaxBodyBytes = 16

	s := schema.NewSchemas(domain.NewValidation())
	h := mw.Validate(schema.Target{Body: s.CreateProduct})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := do(t, h, http.MethodPost, "/", `{"title":"a very long title","description":"b","price":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httpTransport.CategoryValidation, decode[httpTransport.ErrorResponse](t, rec).Error)
}
