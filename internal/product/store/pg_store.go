package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const pgColumns = `id, name, description, price::text AS price, available, category`

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	rows, _ := p.db.Query(ctx, `SELECT `+pgColumns+` FROM products WHERE id = $1`, id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	product, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAll retrieves every product ordered by ID.
func (p *PgStore) FindAll(ctx context.Context) ([]model.Product, error) {
	products, err := p.query(ctx, `SELECT `+pgColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return products, nil
}

// FindByName retrieves the products with the given name.
func (p *PgStore) FindByName(ctx context.Context, name string) ([]model.Product, error) {
	products, err := p.query(ctx, `SELECT `+pgColumns+` FROM products WHERE name = $1 ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by name: %w", err)
	}
	return products, nil
}

// FindByAvailability retrieves the products with the given availability.
func (p *PgStore) FindByAvailability(ctx context.Context, available bool) ([]model.Product, error) {
	products, err := p.query(ctx, `SELECT `+pgColumns+` FROM products WHERE available = $1 ORDER BY id`, available)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by availability: %w", err)
	}
	return products, nil
}

// FindByCategory retrieves the products in the given category.
func (p *PgStore) FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	products, err := p.query(ctx, `SELECT `+pgColumns+` FROM products WHERE category = $1 ORDER BY id`, category.String())
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}
	return products, nil
}

// FindByPrice retrieves the products whose price equals the given one.
// The comparison is done on NUMERIC values.
func (p *PgStore) FindByPrice(ctx context.Context, price decimal.Decimal) ([]model.Product, error) {
	products, err := p.query(ctx, `SELECT `+pgColumns+` FROM products WHERE price = $1::numeric ORDER BY id`, price.String())
	if err != nil {
		return nil, fmt.Errorf("failed to find products by price: %w", err)
	}
	return products, nil
}

// Create adds a new product and returns it with the generated ID.
func (p *PgStore) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	r := newProductRow(product)
	rows, _ := p.db.Query(ctx, `
		INSERT INTO products (name, description, price, available, category)
		VALUES ($1, $2, $3::numeric, $4, $5)
		RETURNING `+pgColumns,
		r.Name, r.Description, r.Price, r.Available, r.Category)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	created, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the fields of an existing product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, id int64, product model.Product) (*model.Product, error) {
	r := newProductRow(product)
	rows, _ := p.db.Query(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4::numeric, available = $5, category = $6
		WHERE id = $1
		RETURNING `+pgColumns,
		id, r.Name, r.Description, r.Price, r.Available, r.Category)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	updated, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

func (p *PgStore) query(ctx context.Context, sql string, args ...any) ([]model.Product, error) {
	rows, _ := p.db.Query(ctx, sql, args...)
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, err
	}
	return rowsToModels(collected)
}
