package store

import (
	"fmt"

	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/shopspring/decimal"
)

// productRow is the persisted shape of a product. Prices travel as text so that
// no driver converts them through floating point.
type productRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Price       string `db:"price"`
	Available   bool   `db:"available"`
	Category    string `db:"category"`
}

func newProductRow(p model.Product) productRow {
	return productRow{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(model.PriceScale),
		Available:   p.Available,
		Category:    p.Category.String(),
	}
}

func (r productRow) toModel() (model.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid stored price %q for product %d: %w", r.Price, r.ID, err)
	}
	category, ok := model.ParseCategory(r.Category)
	if !ok {
		return model.Product{}, fmt.Errorf("invalid stored category %q for product %d", r.Category, r.ID)
	}
	id := r.ID
	return model.Product{
		ID:          &id,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Available:   r.Available,
		Category:    category,
	}, nil
}

func rowsToModels(rows []productRow) ([]model.Product, error) {
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toModel()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}
