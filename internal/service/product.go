package service

import (
	"context"
	"fmt"

	"github.com/JonathanThomaz/catalogo-produtos/internal/domain"
	"github.com/JonathanThomaz/catalogo-produtos/internal/repository"
	"github.com/hashicorp/go-hclog"
)

// ProductService orchestrates the product operations over a repository.
// Update and Delete check for existence first so a missing product is
// reported as domain.ErrProductNotFound instead of a store failure. The check
// and the write are separate statements.
type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type productService struct {
	repo   repository.ProductRepository
	logger hclog.Logger
}

func NewProductService(repo repository.ProductRepository, logger hclog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger,
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.logger.Debug("Getting all products")

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Unable to get products", "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	s.logger.Debug("Getting product by ID", "id", id)

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Debug("Unable to get the product by ID", "id", id, "error", err)
		return nil, err
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	s.logger.Debug("Adding new product", "title", in.Title)

	product := in.Product()
	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Unable to add product", "title", in.Title, "error", err)
		return nil, err
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error) {
	s.logger.Debug("Updating product", "id", id)

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		s.logger.Debug("Existence check before update failed", "id", id, "error", err)
		return nil, err
	}

	// past the existence check every failure, a vanished row included, is a
	// store failure for the caller
	product, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error("Unable to update product", "id", id, "error", err)
		return nil, fmt.Errorf("update product %d: %v", id, err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int) error {
	s.logger.Debug("Deleting product", "id", id)

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		s.logger.Debug("Existence check before delete failed", "id", id, "error", err)
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Unable to delete product", "id", id, "error", err)
		return fmt.Errorf("delete product %d: %v", id, err)
	}

	return nil
}
