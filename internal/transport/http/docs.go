// Package classification of Catalog API
//
// # Documentation for the product catalog API
//
// Schemes: http
// BasePath: /api
// Version: 1.0.0
//
// Consumes:
// - application/json
//
// Produces:
// - application/json
//
// swagger:meta
package http

import "github.com/JonathanThomaz/catalogo-produtos/internal/domain"

// NOTE: Types defined here are purely for documentation purposes
// These types are not used by any of the handlers

// Generic error with a category and a message
// swagger:response errorResponse
type errorResponseWrapper struct {
	// Description of the error
	// in: body
	Body ErrorResponse
}

// Invalid request data, with one detail per violated rule
// swagger:response validationErrorResponse
type validationErrorResponseWrapper struct {
	// Category, message and details
	// in: body
	Body ErrorResponse
}

// A list of products
// swagger:response productsResponse
type productsResponseWrapper struct {
	// All current products, newest first
	// in: body
	Body []domain.Product
}

// Data structure representing a single product
// swagger:response productResponse
type productResponseWrapper struct {
	// A single product
	// in: body
	Body domain.Product
}

// API status
// swagger:response statusResponse
type statusResponseWrapper struct {
	// in: body
	Body StatusResponse
}

// No content response for endpoints that return 204
// swagger:response noContentResponse
type noContentResponseWrapper struct{}

// swagger:parameters getProductByID deleteProduct updateProduct
type productIDParamsWrapper struct {
	// The ID of the product, digits only
	// in: path
	// required: true
	// pattern: ^\d+$
	ID string `json:"id"`
}

// swagger:parameters listProducts
type productQueryParamsWrapper struct {
	// Page number
	// in: query
	// minimum: 1
	// default: 1
	Page int `json:"page"`

	// Page size
	// in: query
	// minimum: 1
	// maximum: 100
	// default: 10
	Limit int `json:"limit"`

	// Free text filter
	// in: query
	Search string `json:"search"`
}

// ProductBody is the payload to create a product. Every field is optional
// when updating, but at least one must be present. Unknown fields are rejected.
//
// swagger:model
type ProductBody struct {
	// required: true
	// max length: 255
	// example: iPhone 15 Pro
	Title string `json:"title"`

	// required: true
	// example: O mais avançado iPhone com chip A17 Pro
	Description string `json:"description"`

	// Positive, at most two decimal places
	//
	// required: true
	// example: 7999.99
	Price float64 `json:"price"`
}

// swagger:parameters addProduct updateProduct
type productBodyParamsWrapper struct {
	// Product data to create or update.
	// in: body
	// required: true
	Body ProductBody
}
