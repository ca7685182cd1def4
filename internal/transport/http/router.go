package http

import (
	_ "embed"
	"net/http"

	"github.com/JonathanThomaz/catalogo-produtos/internal/schema"
	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
)

// APIBasePath prefixes every product route.
const APIBasePath = "/api"

//go:embed swagger.yaml
var swaggerSpec []byte

// CORSConfig holds configuration for CORS middleware
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	MaxAge           int  // Cache preflight requests
	AllowCredentials bool // Allow credentials like cookies
}

func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:         86400, // 24 hours
	}
}

func (c *CORSConfig) handler() func(http.Handler) http.Handler {
	opts := []handlers.CORSOption{
		handlers.AllowedOrigins(c.AllowedOrigins),
		handlers.AllowedMethods(c.AllowedMethods),
		handlers.AllowedHeaders(c.AllowedHeaders),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
		handlers.MaxAge(c.MaxAge),
	}
	if c.AllowCredentials {
		opts = append(opts, handlers.AllowCredentials())
	}
	return handlers.CORS(opts...)
}

// NewRouter wires the product routes, their validation and the documentation
// endpoints. A nil corsConfig selects DefaultCORSConfig.
func NewRouter(
	ph *ProductHandler,
	schemas *schema.Schemas,
	logger hclog.Logger,
	corsConfig *CORSConfig,
) http.Handler {
	if corsConfig == nil {
		corsConfig = DefaultCORSConfig()
	}

	router := mux.NewRouter()
	mw := NewMiddleware(logger)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   CategoryRouteNotFound,
			Message: "A rota " + r.Method + " " + r.URL.Path + " não existe",
		}, logger)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error:   CategoryMethodNotAllowed,
			Message: "O método " + r.Method + " não é suportado em " + r.URL.Path,
		}, logger)
	})

	router.HandleFunc("/", Status(logger)).Methods(http.MethodGet)

	byID := schema.Target{Params: schemas.ProductID}

	api := router.PathPrefix(APIBasePath).Subrouter()
	api.Handle("/products",
		mw.Validate(schema.Target{Query: schemas.ProductQuery})(http.HandlerFunc(ph.GetProducts)),
	).Methods(http.MethodGet)
	api.Handle("/products/{id}",
		mw.Validate(byID)(http.HandlerFunc(ph.GetProductByID)),
	).Methods(http.MethodGet)
	api.Handle("/products",
		mw.Validate(schema.Target{Body: schemas.CreateProduct})(http.HandlerFunc(ph.AddProduct)),
	).Methods(http.MethodPost)
	api.Handle("/products/{id}",
		mw.ValidateUpdate(schema.Target{Params: schemas.ProductID, Body: schemas.UpdateProduct})(http.HandlerFunc(ph.UpdateProduct)),
	).Methods(http.MethodPut)
	api.Handle("/products/{id}",
		mw.Validate(byID)(http.HandlerFunc(ph.DeleteProduct)),
	).Methods(http.MethodDelete)

	// Serve the OpenAPI document and render it with Redoc
	router.HandleFunc("/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(swaggerSpec)
	}).Methods(http.MethodGet)

	redoc := middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/swagger.yaml",
		Title:   "API Catálogo de Produtos",
	}, nil)
	router.Handle("/docs", redoc).Methods(http.MethodGet)

	var h http.Handler = router
	h = mw.RecoveryMiddleware(h)
	h = handlers.CompressHandler(h)
	h = corsConfig.handler()(h)
	h = mw.LoggingMiddleware(h)

	return h
}
