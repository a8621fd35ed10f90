// Package model defines the Product record together with its validation and
// the mapping used to exchange it with callers.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fraction digits a price is stored with.
const PriceScale = 2

// Product is a catalog entry. ID is nil until the record has been persisted.
type Product struct {
	ID          *int64          `json:"id"`
	Name        string          `json:"name"        validate:"required,max=100"`
	Description string          `json:"description" validate:"max=250"`
	Price       decimal.Decimal `json:"price"       validate:"gte=0"`
	Available   bool            `json:"available"`
	Category    Category        `json:"category"    validate:"category"`
}

func (p Product) String() string {
	id := "None"
	if p.ID != nil {
		id = strconv.FormatInt(*p.ID, 10)
	}
	return fmt.Sprintf("<Product %s id=[%s]>", p.Name, id)
}

// Serialize returns the product as a plain mapping. The price is rendered with
// two fraction digits and the category by its enumeration name.
func (p Product) Serialize() map[string]any {
	var id any
	if p.ID != nil {
		id = *p.ID
	}
	return map[string]any{
		"id":          id,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.StringFixed(PriceScale),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
}

// MarshalJSON encodes the serialized mapping.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Serialize())
}

// Deserialize replaces name, description, price, availability and category
// with the values in data. The ID is left untouched. On error p is not modified.
func (p *Product) Deserialize(data map[string]any) error {
	if data == nil {
		return badData(errors.New("no data"))
	}
	out := Product{ID: p.ID}

	raw, err := lookup(data, "name")
	if err != nil {
		return err
	}
	name, ok := raw.(string)
	if !ok {
		return badData(fmt.Errorf("name must be a string, got %T", raw))
	}
	out.Name = name

	if raw, err = lookup(data, "description"); err != nil {
		return err
	}
	if out.Description, ok = raw.(string); !ok {
		return badData(fmt.Errorf("description must be a string, got %T", raw))
	}

	if raw, err = lookup(data, "price"); err != nil {
		return err
	}
	if out.Price, err = ParsePrice(raw); err != nil {
		return badData(err)
	}

	if raw, err = lookup(data, "available"); err != nil {
		return err
	}
	if out.Available, ok = raw.(bool); !ok {
		return NewValidationError("Invalid type for boolean [available]: %T", raw)
	}

	if raw, err = lookup(data, "category"); err != nil {
		return err
	}
	categoryName, ok := raw.(string)
	if !ok {
		return badData(fmt.Errorf("category must be a string, got %T", raw))
	}
	if out.Category, ok = ParseCategory(categoryName); !ok {
		return NewValidationError("Invalid attribute: %s", categoryName)
	}

	if err := out.Validate(); err != nil {
		return err
	}
	*p = out
	return nil
}

// ParsePrice converts a textual or numeric value into a price rounded to PriceScale.
// Surrounding blanks and double quotes are ignored in textual input.
func ParsePrice(v any) (decimal.Decimal, error) {
	var (
		price decimal.Decimal
		err   error
	)
	switch t := v.(type) {
	case string:
		price, err = decimal.NewFromString(strings.Trim(t, ` "`))
	case json.Number:
		price, err = decimal.NewFromString(t.String())
	case float64:
		price = decimal.NewFromFloat(t)
	case int:
		price = decimal.NewFromInt(int64(t))
	case int64:
		price = decimal.NewFromInt(t)
	case decimal.Decimal:
		price = t
	default:
		return decimal.Zero, fmt.Errorf("price must be a number or numeric string, got %T", v)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %v: %w", v, err)
	}
	return price.Round(PriceScale), nil
}

func lookup(data map[string]any, key string) (any, error) {
	v, ok := data[key]
	if !ok {
		return nil, NewValidationError("Invalid product: missing %s", key)
	}
	return v, nil
}

func badData(err error) *DataValidationError {
	return &DataValidationError{
		Msg: "Invalid product: body of request contained bad or no data " + err.Error(),
		Err: err,
	}
}
