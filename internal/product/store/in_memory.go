package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/shopspring/decimal"
)

// inMemory implements ProductStore using an in-memory map.
// Prices are rounded to model.PriceScale on write, as the SQL stores do.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]model.Product
	nextID   int64
}

// NewInMemoryStore returns an empty map-backed store. IDs start at 1.
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]model.Product),
		nextID:   1,
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	return detach(p), nil
}

// FindAll retrieves all products.
func (s *inMemory) FindAll(_ context.Context) ([]model.Product, error) {
	return s.filter(func(model.Product) bool { return true }), nil
}

func (s *inMemory) FindByName(_ context.Context, name string) ([]model.Product, error) {
	return s.filter(func(p model.Product) bool { return p.Name == name }), nil
}

func (s *inMemory) FindByAvailability(_ context.Context, available bool) ([]model.Product, error) {
	return s.filter(func(p model.Product) bool { return p.Available == available }), nil
}

func (s *inMemory) FindByCategory(_ context.Context, category model.Category) ([]model.Product, error) {
	return s.filter(func(p model.Product) bool { return p.Category == category }), nil
}

func (s *inMemory) FindByPrice(_ context.Context, price decimal.Decimal) ([]model.Product, error) {
	return s.filter(func(p model.Product) bool { return p.Price.Equal(price) }), nil
}

// Create creates a new product and returns it.
func (s *inMemory) Create(_ context.Context, product model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	product.ID = &id
	product.Price = product.Price.Round(model.PriceScale)
	s.products[id] = product

	return detach(product), nil
}

// Update replaces the stored product with the given ID.
func (s *inMemory) Update(_ context.Context, id int64, product model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return nil, errors.ErrProductNotFound
	}
	product.ID = &id
	product.Price = product.Price.Round(model.PriceScale)
	s.products[id] = product

	return detach(product), nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return errors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *inMemory) filter(match func(model.Product) bool) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if match(p) {
			list = append(list, *detach(p))
		}
	}
	slices.SortFunc(list, func(a, b model.Product) int {
		return cmp.Compare(*a.ID, *b.ID)
	})
	return list
}

// detach copies p so that callers cannot reach the stored ID pointer.
func detach(p model.Product) *model.Product {
	id := *p.ID
	p.ID = &id
	return &p
}
