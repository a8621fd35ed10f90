// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/abgdnv/catalog/internal/product/store"
	"github.com/shopspring/decimal"
)

// ProductService defines the operations on product records.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// Create persists a transient product and assigns the generated ID to it.
	Create(ctx context.Context, product *model.Product) error

	// Update persists the changes of an existing product.
	// Returns a DataValidationError if the product has no ID and
	// ErrProductNotFound if no product exists with that ID.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes the given product.
	// Returns a DataValidationError if the product has no ID.
	Delete(ctx context.Context, product *model.Product) error

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// All returns every product ordered by ID.
	// Returns an empty slice if no products exist.
	All(ctx context.Context) ([]model.Product, error)

	// Find retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Find(ctx context.Context, id int64) (*model.Product, error)

	FindByName(ctx context.Context, name string) ([]model.Product, error)
	FindByAvailability(ctx context.Context, available bool) ([]model.Product, error)
	FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error)

	// FindByPrice returns the products with the given price. The price is given as text;
	// surrounding blanks and double quotes are ignored.
	FindByPrice(ctx context.Context, price string) ([]model.Product, error)
}

// Service implements ProductService on top of a ProductStore.
type Service struct {
	repository store.ProductStore
}

// NewService returns a Service reading and writing products through repo.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// Create validates the product, stores it and sets its ID.
// The price is rounded to model.PriceScale before it is stored.
func (s *Service) Create(ctx context.Context, product *model.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	product.Price = product.Price.Round(model.PriceScale)
	created, err := s.repository.Create(ctx, *product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = created.ID
	return nil
}

// Update validates the product and replaces the stored record with the same ID.
func (s *Service) Update(ctx context.Context, product *model.Product) error {
	if product.ID == nil {
		return model.EmptyIDError("Update")
	}
	if err := product.Validate(); err != nil {
		return err
	}
	product.Price = product.Price.Round(model.PriceScale)
	updated, err := s.repository.Update(ctx, *product.ID, *product)
	if err != nil {
		return fmt.Errorf("failed to update product with ID %d: %w", *product.ID, err)
	}
	*product = *updated
	return nil
}

func (s *Service) Delete(ctx context.Context, product *model.Product) error {
	if product.ID == nil {
		return model.EmptyIDError("Delete")
	}
	return s.DeleteByID(ctx, *product.ID)
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	return nil
}

func (s *Service) All(ctx context.Context) ([]model.Product, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *Service) Find(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return product, nil
}

func (s *Service) FindByName(ctx context.Context, name string) ([]model.Product, error) {
	products, err := s.repository.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products by name %q: %w", name, err)
	}
	return products, nil
}

func (s *Service) FindByAvailability(ctx context.Context, available bool) ([]model.Product, error) {
	products, err := s.repository.FindByAvailability(ctx, available)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products by availability %t: %w", available, err)
	}
	return products, nil
}

func (s *Service) FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	if !category.Valid() {
		return nil, model.NewValidationError("Invalid attribute: %s", category)
	}
	products, err := s.repository.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products by category %s: %w", category, err)
	}
	return products, nil
}

// FindByPrice compares prices numerically, so "12.5" matches a stored 12.50.
// Input is not rounded: a price with more fraction digits than stored ones matches nothing.
func (s *Service) FindByPrice(ctx context.Context, price string) ([]model.Product, error) {
	value, err := decimal.NewFromString(strings.Trim(price, ` "`))
	if err != nil {
		return nil, &model.DataValidationError{
			Msg: fmt.Sprintf("Invalid price: %s", price),
			Err: err,
		}
	}
	products, err := s.repository.FindByPrice(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products by price %s: %w", value, err)
	}
	return products, nil
}
