// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/shopspring/decimal"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
// Products returned by a store are detached copies; mutating them does not affect stored data.
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*model.Product, error)

	// FindAll returns every stored product ordered by ID.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]model.Product, error)

	// FindByName returns the products whose name equals name.
	FindByName(ctx context.Context, name string) ([]model.Product, error)

	// FindByAvailability returns the products whose availability flag equals available.
	FindByAvailability(ctx context.Context, available bool) ([]model.Product, error)

	// FindByCategory returns the products in the given category.
	FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error)

	// FindByPrice returns the products whose price is numerically equal to price.
	FindByPrice(ctx context.Context, price decimal.Decimal) ([]model.Product, error)

	// Create stores a new product and returns it with its assigned ID.
	// The ID of the argument is ignored.
	Create(ctx context.Context, product model.Product) (*model.Product, error)

	// Update replaces the stored fields of the product with the given ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product model.Product) (*model.Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}
