package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/JonathanThomaz/catalogo-produtos/internal/domain"
	"github.com/shopspring/decimal"
)

// Query defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ProductID is the normalized identifier path parameter.
type ProductID struct {
	ID int
}

// ProductQuery is the normalized query string of the list route.
type ProductQuery struct {
	Page   int
	Limit  int
	Search string
}

type productFields struct {
	Title       *string      `json:"title" validate:"required,notblank,trimmax=255"`
	Description *string      `json:"description" validate:"required,notblank"`
	Price       *json.Number `json:"price" validate:"required,positive,cents"`
}

type productPatchFields struct {
	Title       *string      `json:"title" validate:"omitempty,notblank,trimmax=255"`
	Description *string      `json:"description" validate:"omitempty,notblank"`
	Price       *json.Number `json:"price" validate:"omitempty,positive,cents"`
}

type idFields struct {
	ID *string `json:"id" validate:"required,digits,posint"`
}

type queryFields struct {
	Page   *string `json:"page" validate:"omitempty,pageno"`
	Limit  *string `json:"limit" validate:"omitempty,limitno"`
	Search *string `json:"search"`
}

var productKeys = []string{"title", "description", "price"}

// Schemas holds the request schemas of the product API.
type Schemas struct {
	CreateProduct Pipeline[productFields, domain.ProductInput]
	UpdateProduct Pipeline[productPatchFields, domain.ProductPatch]
	ProductID     Pipeline[idFields, ProductID]
	ProductQuery  Pipeline[queryFields, ProductQuery]
}

// NewSchemas wires every schema to the given rule engine.
func NewSchemas(v *domain.Validation) *Schemas {
	return &Schemas{
		CreateProduct: Pipeline[productFields, domain.ProductInput]{
			Decode:    decodeProduct,
			Validate:  func(r productFields) []Issue { return fromValidation(v.Validate(&r)) },
			Normalize: normalizeProduct,
		},
		UpdateProduct: Pipeline[productPatchFields, domain.ProductPatch]{
			Decode:    decodeProductPatch,
			Validate:  func(r productPatchFields) []Issue { return fromValidation(v.Validate(&r)) },
			Normalize: normalizeProductPatch,
		},
		ProductID: Pipeline[idFields, ProductID]{
			Decode:    decodeID,
			Validate:  func(r idFields) []Issue { return fromValidation(v.Validate(&r)) },
			Normalize: normalizeID,
		},
		ProductQuery: Pipeline[queryFields, ProductQuery]{
			Decode:    decodeQuery,
			Validate:  func(r queryFields) []Issue { return fromValidation(v.Validate(&r)) },
			Normalize: normalizeQuery,
		},
	}
}

func decodeProduct(f Fields) (productFields, []Issue) {
	var (
		r      productFields
		issues []Issue
	)

	if i := unknownFields(f, productKeys...); i != nil {
		issues = append(issues, *i)
	}

	var i *Issue
	if r.Title, i = stringField(f, "title"); i != nil {
		issues = append(issues, *i)
	}
	if r.Description, i = stringField(f, "description"); i != nil {
		issues = append(issues, *i)
	}
	if r.Price, i = numberField(f, "price"); i != nil {
		issues = append(issues, *i)
	}

	return r, issues
}

func decodeProductPatch(f Fields) (productPatchFields, []Issue) {
	// same members and type rules; only the validate tags differ
	r, issues := decodeProduct(f)
	return productPatchFields(r), issues
}

func normalizeProduct(r productFields) (domain.ProductInput, error) {
	price, err := parsePrice(*r.Price)
	if err != nil {
		return domain.ProductInput{}, err
	}

	return domain.ProductInput{
		Title:       strings.TrimSpace(*r.Title),
		Description: strings.TrimSpace(*r.Description),
		Price:       price,
	}, nil
}

func normalizeProductPatch(r productPatchFields) (domain.ProductPatch, error) {
	var p domain.ProductPatch

	if r.Title != nil {
		p.Title = domain.Some(strings.TrimSpace(*r.Title))
	}
	if r.Description != nil {
		p.Description = domain.Some(strings.TrimSpace(*r.Description))
	}
	if r.Price != nil {
		price, err := parsePrice(*r.Price)
		if err != nil {
			return domain.ProductPatch{}, err
		}
		p.Price = domain.Some(price)
	}

	return p, nil
}

func parsePrice(n json.Number) (domain.Price, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return domain.Price{}, fmt.Errorf("normalize price %q: %w", n, err)
	}
	return domain.NewPrice(d), nil
}

func decodeID(f Fields) (idFields, []Issue) {
	var r idFields
	id, i := stringField(f, "id")
	if i != nil {
		return r, []Issue{*i}
	}
	r.ID = id
	return r, nil
}

func normalizeID(r idFields) (ProductID, error) {
	id, err := strconv.ParseInt(*r.ID, 10, 64)
	if err != nil {
		return ProductID{}, fmt.Errorf("normalize id %q: %w", *r.ID, err)
	}
	return ProductID{ID: int(id)}, nil
}

func decodeQuery(f Fields) (queryFields, []Issue) {
	var (
		r      queryFields
		issues []Issue
		i      *Issue
	)

	// unknown parameters are ignored
	if r.Page, i = stringField(f, "page"); i != nil {
		issues = append(issues, *i)
	}
	if r.Limit, i = stringField(f, "limit"); i != nil {
		issues = append(issues, *i)
	}
	if r.Search, i = stringField(f, "search"); i != nil {
		issues = append(issues, *i)
	}

	return r, issues
}

func normalizeQuery(r queryFields) (ProductQuery, error) {
	q := ProductQuery{Page: DefaultPage, Limit: DefaultLimit}

	if r.Page != nil && *r.Page != "" {
		n, err := strconv.Atoi(*r.Page)
		if err != nil {
			return ProductQuery{}, fmt.Errorf("normalize page %q: %w", *r.Page, err)
		}
		q.Page = n
	}
	if r.Limit != nil && *r.Limit != "" {
		n, err := strconv.Atoi(*r.Limit)
		if err != nil {
			return ProductQuery{}, fmt.Errorf("normalize limit %q: %w", *r.Limit, err)
		}
		q.Limit = n
	}
	if r.Search != nil {
		q.Search = strings.TrimSpace(*r.Search)
	}

	return q, nil
}
