package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT    NOT NULL,
	description TEXT    NOT NULL DEFAULT '',
	price       TEXT    NOT NULL,
	available   BOOLEAN NOT NULL DEFAULT 1,
	category    TEXT    NOT NULL DEFAULT 'UNKNOWN'
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`

const sqlColumns = `id, name, description, price, available, category`

// SQLStore implements ProductStore on top of database/sql through sqlx.
// It is used with SQLite for local runs without PostgreSQL. Prices are kept as
// fixed two-digit text, so equality on the text is equality on the value.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open sqlx database and makes sure the products table exists.
func NewSQLStore(ctx context.Context, db *sqlx.DB) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create products schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// OpenSQLite opens a SQLite database at dsn, e.g. "catalog.db" or ":memory:".
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	s, err := NewSQLStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *SQLStore) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var row productRow
	err := s.db.GetContext(ctx, &row, `SELECT `+sqlColumns+` FROM products WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
func (s *SQLStore) FindAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.selectProducts(ctx, `SELECT `+sqlColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return products, nil
}

// FindByName retrieves the products with the given name.
func (s *SQLStore) FindByName(ctx context.Context, name string) ([]model.Product, error) {
	products, err := s.selectProducts(ctx, `SELECT `+sqlColumns+` FROM products WHERE name = ? ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by name: %w", err)
	}
	return products, nil
}

// FindByAvailability retrieves the products with the given availability.
func (s *SQLStore) FindByAvailability(ctx context.Context, available bool) ([]model.Product, error) {
	products, err := s.selectProducts(ctx, `SELECT `+sqlColumns+` FROM products WHERE available = ? ORDER BY id`, available)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by availability: %w", err)
	}
	return products, nil
}

// FindByCategory retrieves the products in the given category.
func (s *SQLStore) FindByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	products, err := s.selectProducts(ctx, `SELECT `+sqlColumns+` FROM products WHERE category = ? ORDER BY id`, category.String())
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}
	return products, nil
}

// FindByPrice retrieves the products whose price equals the given one.
func (s *SQLStore) FindByPrice(ctx context.Context, price decimal.Decimal) ([]model.Product, error) {
	if !price.Equal(price.Round(model.PriceScale)) {
		// stored prices never carry more fraction digits than PriceScale
		return []model.Product{}, nil
	}
	products, err := s.selectProducts(ctx, `SELECT `+sqlColumns+` FROM products WHERE price = ? ORDER BY id`,
		price.StringFixed(model.PriceScale))
	if err != nil {
		return nil, fmt.Errorf("failed to find products by price: %w", err)
	}
	return products, nil
}

// Create adds a new product and returns it with the generated ID.
func (s *SQLStore) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	row := newProductRow(product)
	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO products (name, description, price, available, category)
		VALUES (:name, :description, :price, :available, :category)`, row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read generated product ID: %w", err)
	}
	row.ID = id
	created, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the fields of an existing product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *SQLStore) Update(ctx context.Context, id int64, product model.Product) (*model.Product, error) {
	row := newProductRow(product)
	row.ID = id
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE products
		SET name = :name, description = :description, price = :price, available = :available, category = :category
		WHERE id = :id`, row)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	updated, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *SQLStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLStore) selectProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rowsToModels(rows)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}
