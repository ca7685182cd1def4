package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/JonathanThomaz/catalogo-produtos/internal/schema"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
)

// DefaultMaxBodyBytes caps the size of request bodies read by the validation
// middleware.
const DefaultMaxBodyBytes int64 = 1 << 20

type requestIDKey struct{}

// RequestID returns the id assigned to the request by LoggingMiddleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Middleware struct holds dependencies for middleware functions
type Middleware struct {
	Logger       hclog.Logger
	MaxBodyBytes int64
}

// NewMiddleware creates a new Middleware instance
func NewMiddleware(logger hclog.Logger) *Middleware {
	return &Middleware{
		Logger:       logger,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// LoggingMiddleware tags every request with an id and logs its outcome
func (m *Middleware) LoggingMiddleware(next http.Handler) http.Handler {
	logged := handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, p handlers.LogFormatterParams) {
		m.Logger.Info("Completed request",
			"method", p.Request.Method,
			"url", p.URL.Path,
			"status", p.StatusCode,
			"size", p.Size,
			"request_id", RequestID(p.Request.Context()),
			"duration", time.Since(p.TimeStamp),
		)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()

		m.Logger.Debug("Incoming request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
		)

		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		logged.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RecoveryMiddleware turns a panic in a handler into a generic 500 response
func (m *Middleware) RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				m.Logger.Error("Recovered from panic",
					"request_id", RequestID(r.Context()),
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				writeJSON(w, http.StatusInternalServerError,
					internalError("Ocorreu um erro inesperado"), m.Logger)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Validate runs the schemas declared in t against params, query and body, in
// that order. The first failing part ends the request with 400; otherwise the
// normalized values are stored in the request context for the handler.
func (m *Middleware) Validate(t schema.Target) mux.MiddlewareFunc {
	return m.validate(t, false)
}

// ValidateUpdate behaves like Validate and additionally rejects a body that
// normalizes to an empty patch, so no empty write reaches the store.
func (m *Middleware) ValidateUpdate(t schema.Target) mux.MiddlewareFunc {
	return m.validate(t, true)
}

func (m *Middleware) validate(t schema.Target, requireFields bool) mux.MiddlewareFunc {
	parts := []struct {
		part   schema.Part
		schema schema.Schema
	}{
		{schema.Params, t.Params},
		{schema.Query, t.Query},
		{schema.Body, t.Body},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			for _, p := range parts {
				if p.schema == nil {
					continue
				}

				v, err := m.parse(w, r, p.part, p.schema)
				if err != nil {
					m.Logger.Debug("Request validation failed",
						"part", p.part.String(),
						"request_id", RequestID(ctx),
						"error", err,
					)
					writeJSON(w, http.StatusBadRequest, validationError(err), m.Logger)
					return
				}

				if requireFields && p.part == schema.Body {
					if patch, ok := v.(schema.Patch); ok && patch.Empty() {
						m.Logger.Debug("Update without fields", "request_id", RequestID(ctx))
						writeJSON(w, http.StatusBadRequest, noFieldsError(), m.Logger)
						return
					}
				}

				ctx = schema.WithValue(ctx, p.part, v)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) parse(w http.ResponseWriter, r *http.Request, part schema.Part, s schema.Schema) (any, error) {
	var fields schema.Fields

	switch part {
	case schema.Params:
		fields = schema.FieldsFromStrings(mux.Vars(r))
	case schema.Query:
		fields = schema.FieldsFromValues(r.URL.Query())
	case schema.Body:
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, m.MaxBodyBytes))
		if err != nil {
			return nil, err
		}
		fields, err = schema.FieldsFromJSON(body)
		if err != nil {
			return nil, err
		}
	}

	return s.Parse(fields)
}
