package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonathanThomaz/catalogo-produtos/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository is the persistence collaborator of the product service.
// Lookups and mutations on a missing row return domain.ErrProductNotFound.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
}

type gormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository returns a GORM backed ProductRepository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

// GetAll returns every product, newest first.
func (r *gormProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

func (r *gormProductRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts product and fills in its ID and timestamps.
func (r *gormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes only the columns present in patch, refreshes updated_at and
// returns the stored row.
func (r *gormProductRepository) Update(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error) {
	var changes domain.Product
	columns := patch.Apply(&changes)
	if len(columns) == 0 {
		return r.GetByID(ctx, id)
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Select(append(columns, "updated_at")).
		Updates(&changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the row permanently.
func (r *gormProductRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return nil
}
