package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/JonathanThomaz/catalogo-produtos/internal/schema"
	"github.com/hashicorp/go-hclog"
)

// Error categories. Clients may rely on these strings as coarse error codes.
const (
	CategoryInvalidData      = "Dados inválidos"
	CategoryValidation       = "Erro de validação"
	CategoryNoFields         = "Nenhum campo para atualizar"
	CategoryNotFound         = "Produto não encontrado"
	CategoryInternal         = "Erro interno do servidor"
	CategoryRouteNotFound    = "Rota não encontrada"
	CategoryMethodNotAllowed = "Método não permitido"
)

// ErrorResponse is the body of every error response
//
// swagger:model
type ErrorResponse struct {
	// Short, stable error category
	//
	// required: true
	// example: Produto não encontrado
	Error string `json:"error"`

	// Human readable detail
	//
	// required: true
	// example: Produto com ID 1 não foi encontrado
	Message string `json:"message"`

	// Per-field messages, only present for schema violations
	Details []string `json:"details,omitempty"`
}

// validationError formats a failure raised while validating a request part.
func validationError(err error) ErrorResponse {
	var ve *schema.ViolationError
	if errors.As(err, &ve) {
		return ErrorResponse{
			Error:   CategoryInvalidData,
			Message: "Os dados fornecidos não são válidos",
			Details: ve.Details(),
		}
	}

	message := "Erro desconhecido na validação"
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, schema.ErrMalformedJSON):
		message = "O corpo da requisição não é um JSON válido"
	case errors.As(err, &tooLarge):
		message = fmt.Sprintf("O corpo da requisição excede %d bytes", tooLarge.Limit)
	}

	return ErrorResponse{
		Error:   CategoryValidation,
		Message: message,
	}
}

func noFieldsError() ErrorResponse {
	return ErrorResponse{
		Error:   CategoryNoFields,
		Message: "Pelo menos um campo deve ser fornecido para atualização",
	}
}

func notFoundError(id int) ErrorResponse {
	return ErrorResponse{
		Error:   CategoryNotFound,
		Message: fmt.Sprintf("Produto com ID %d não foi encontrado", id),
	}
}

func internalError(message string) ErrorResponse {
	return ErrorResponse{
		Error:   CategoryInternal,
		Message: message,
	}
}

// writeJSON writes v with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}, logger hclog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding response", "error", err)
	}
}
