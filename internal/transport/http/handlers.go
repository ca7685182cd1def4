package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/JonathanThomaz/catalogo-produtos/internal/domain"
	"github.com/JonathanThomaz/catalogo-produtos/internal/schema"
	"github.com/JonathanThomaz/catalogo-produtos/internal/service"
	"github.com/hashicorp/go-hclog"
)

type ProductHandler struct {
	productService service.ProductService
	logger         hclog.Logger
}

func NewProductHandler(ps service.ProductService, log hclog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: ps,
		logger:         log,
	}
}

// GetProducts handles GET /products
//
// swagger:route GET /products products listProducts
//
// Returns every product, newest first.
//
// Responses:
//
//	200: productsResponse
//	400: validationErrorResponse
//	500: errorResponse
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	// page, limit and search are validated by the route but not applied yet
	products, err := h.productService.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Error getting products", "error", err)
		writeJSON(w, http.StatusInternalServerError,
			internalError("Não foi possível buscar os produtos"), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products, h.logger)
}

// GetProductByID handles GET /products/{id}
//
// swagger:route GET /products/{id} products getProductByID
//
// Returns a product by ID.
//
// Responses:
//
//	200: productResponse
//	400: validationErrorResponse
//	404: errorResponse
//	500: errorResponse
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := h.productID(r)

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundError(id), h.logger)
			return
		}

		h.logger.Error("Error getting product", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError,
			internalError("Não foi possível buscar o produto"), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// AddProduct handles POST /products
//
// swagger:route POST /products products addProduct
//
// Creates a new product.
//
// Responses:
//
//	201: productResponse
//	400: validationErrorResponse
//	500: errorResponse
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	in, ok := schema.Value[domain.ProductInput](r.Context(), schema.Body)
	if !ok {
		h.missingValue(w, r, schema.Body)
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), in)
	if err != nil {
		h.logger.Error("Error adding product", "error", err)
		writeJSON(w, http.StatusInternalServerError,
			internalError("Não foi possível criar o produto"), h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product, h.logger)
}

// UpdateProduct handles PUT /products/{id}
//
// swagger:route PUT /products/{id} products updateProduct
//
// Updates the supplied fields of an existing product.
//
// Responses:
//
//	200: productResponse
//	400: validationErrorResponse
//	404: errorResponse
//	500: errorResponse
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := h.productID(r)

	patch, ok := schema.Value[domain.ProductPatch](r.Context(), schema.Body)
	if !ok {
		h.missingValue(w, r, schema.Body)
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundError(id), h.logger)
			return
		}
		h.logger.Error("Error updating product", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError,
			internalError("Não foi possível atualizar o produto"), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// DeleteProduct handles DELETE /products/{id}
//
// swagger:route DELETE /products/{id} products deleteProduct
//
// Deletes a product.
//
// Responses:
//
//	204: noContentResponse
//	400: validationErrorResponse
//	404: errorResponse
//	500: errorResponse
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := h.productID(r)

	err := h.productService.DeleteProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundError(id), h.logger)
			return
		}
		h.logger.Error("Error deleting product", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError,
			internalError("Não foi possível deletar o produto"), h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// productID reads the id normalized by the validation middleware. Routes
// without it are a wiring bug and panic into the recovery middleware.
func (h *ProductHandler) productID(r *http.Request) int {
	p, ok := schema.Value[schema.ProductID](r.Context(), schema.Params)
	if !ok {
		panic("product route registered without id validation")
	}
	return p.ID
}

func (h *ProductHandler) missingValue(w http.ResponseWriter, r *http.Request, part schema.Part) {
	h.logger.Error("Route registered without validation", "part", part.String(), "url", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, internalError("Ocorreu um erro inesperado"), h.logger)
}

// StatusResponse reports that the API is up
//
// swagger:model
type StatusResponse struct {
	// example: ok
	Status string `json:"status"`
	// example: API Catálogo de Produtos funcionando!
	Message string `json:"message"`
	// example: 2024-01-15T10:30:00Z
	Timestamp time.Time `json:"timestamp"`
}

// Status handles GET /
//
// swagger:route GET / status getStatus
//
// Reports the API status.
//
// Responses:
//
//	200: statusResponse
func Status(logger hclog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, StatusResponse{
			Status:    "ok",
			Message:   "API Catálogo de Produtos funcionando!",
			Timestamp: time.Now().UTC(),
		}, logger)
	}
}
