package domain

import "time"

// Product represents a catalog product
//
// swagger:model
type Product struct {
	// The ID of the product
	//
	// required: true
	// min: 1
	// example: 1
	ID int `json:"id" gorm:"primaryKey;autoIncrement"`

	// The title of the product
	//
	// required: true
	// max length: 255
	// example: iPhone 15 Pro
	Title string `json:"title" gorm:"size:255;not null"`

	// The description of the product
	//
	// required: true
	// example: O mais avançado iPhone com chip A17 Pro
	Description string `json:"description" gorm:"type:text;not null"`

	// The price of the product with two decimal places
	//
	// required: true
	// example: 7999.99
	Price Price `json:"price" gorm:"type:decimal(10,2);not null"`

	// Creation time, assigned by the store
	//
	// example: 2024-01-15T10:30:00Z
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;index"`

	// Last update time, assigned by the store
	//
	// example: 2024-01-15T10:30:00Z
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName pins the table name used by GORM.
func (Product) TableName() string {
	return "products"
}

// ProductInput is a normalized create request.
type ProductInput struct {
	Title       string
	Description string
	Price       Price
}

// Product builds the entity to persist. ID and timestamps are left to the store.
func (in ProductInput) Product() *Product {
	return &Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
	}
}

// ProductPatch is a normalized partial update. Only present fields are written.
type ProductPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Price       Optional[Price]
}

// Empty reports whether the patch carries no field at all.
func (p ProductPatch) Empty() bool {
	return !p.Title.Present && !p.Description.Present && !p.Price.Present
}

// Apply copies the present fields onto product and returns the names of the
// columns it touched.
func (p ProductPatch) Apply(product *Product) []string {
	var columns []string

	if v, ok := p.Title.Get(); ok {
		product.Title = v
		columns = append(columns, "title")
	}
	if v, ok := p.Description.Get(); ok {
		product.Description = v
		columns = append(columns, "description")
	}
	if v, ok := p.Price.Get(); ok {
		product.Price = v
		columns = append(columns, "price")
	}

	return columns
}
