package store

import (
	"context"
	"testing"

	perrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleProducts returns a batch with repeated names, prices, categories and availability
// so that every finder has more than one match and more than one miss.
func sampleProducts() []model.Product {
	mk := func(name, price string, available bool, category model.Category) model.Product {
		return model.Product{
			Name:        name,
			Description: name + " description",
			Price:       decimal.RequireFromString(price),
			Available:   available,
			Category:    category,
		}
	}
	return []model.Product{
		mk("Fedora", "12.50", true, model.CategoryCloths),
		mk("Hammer", "25.00", true, model.CategoryTools),
		mk("Fedora", "12.50", false, model.CategoryCloths),
		mk("Bread", "3.99", true, model.CategoryFood),
		mk("Wrench", "12.50", false, model.CategoryTools),
		mk("Pan", "40.10", true, model.CategoryHousewares),
		mk("Tire", "99.99", true, model.CategoryAutomotive),
		mk("Fedora", "15.00", true, model.CategoryCloths),
		mk("Apple", "0.50", false, model.CategoryFood),
		mk("Mystery", "1.00", true, model.CategoryUnknown),
	}
}

// runProductStoreContract runs the behaviour every ProductStore implementation must share.
// newStore must return an empty store.
func runProductStoreContract(t *testing.T, newStore func(t *testing.T) ProductStore) {
	t.Helper()
	ctx := context.Background()

	createAll := func(t *testing.T, s ProductStore, products []model.Product) []model.Product {
		t.Helper()
		created := make([]model.Product, 0, len(products))
		for _, p := range products {
			c, err := s.Create(ctx, p)
			require.NoError(t, err)
			created = append(created, *c)
		}
		return created
	}

	t.Run("Create assigns an ID and the product is listed", func(t *testing.T) {
		s := newStore(t)
		products, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Empty(t, products)

		toCreate := sampleProducts()[0]
		created, err := s.Create(ctx, toCreate)

		require.NoError(t, err)
		require.NotNil(t, created.ID)
		products, err = s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, *created.ID, *products[0].ID)
		assert.Equal(t, toCreate.Name, products[0].Name)
		assert.Equal(t, toCreate.Description, products[0].Description)
		assert.True(t, toCreate.Price.Equal(products[0].Price))
		assert.Equal(t, toCreate.Available, products[0].Available)
		assert.Equal(t, toCreate.Category, products[0].Category)
	})

	t.Run("Create assigns unique IDs", func(t *testing.T) {
		s := newStore(t)
		created := createAll(t, s, sampleProducts())

		seen := make(map[int64]bool)
		for _, p := range created {
			require.NotNil(t, p.ID)
			assert.False(t, seen[*p.ID], "duplicate ID %d", *p.ID)
			seen[*p.ID] = true
		}
	})

	t.Run("FindByID reads a product", func(t *testing.T) {
		s := newStore(t)
		created := createAll(t, s, sampleProducts()[:3])[1]

		found, err := s.FindByID(ctx, *created.ID)

		require.NoError(t, err)
		assert.Equal(t, *created.ID, *found.ID)
		assert.Equal(t, created.Name, found.Name)
		assert.Equal(t, created.Description, found.Description)
		assert.True(t, created.Price.Equal(found.Price))
		assert.Equal(t, created.Available, found.Available)
		assert.Equal(t, created.Category, found.Category)
	})

	t.Run("FindByID of a missing product", func(t *testing.T) {
		s := newStore(t)

		_, err := s.FindByID(ctx, 424242)

		require.ErrorIs(t, err, perrors.ErrProductNotFound)
	})

	t.Run("Update persists changes and keeps the ID", func(t *testing.T) {
		s := newStore(t)
		created := createAll(t, s, sampleProducts()[:1])[0]
		created.Description = "updated"
		created.Price = decimal.RequireFromString("13.75")

		updated, err := s.Update(ctx, *created.ID, created)

		require.NoError(t, err)
		assert.Equal(t, *created.ID, *updated.ID)
		assert.Equal(t, "updated", updated.Description)
		products, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, *created.ID, *products[0].ID)
		assert.Equal(t, "updated", products[0].Description)
		assert.Equal(t, "13.75", products[0].Price.StringFixed(2))
	})

	t.Run("Update of a missing product", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Update(ctx, 424242, sampleProducts()[0])

		require.ErrorIs(t, err, perrors.ErrProductNotFound)
	})

	t.Run("DeleteByID removes exactly one product", func(t *testing.T) {
		s := newStore(t)
		created := createAll(t, s, sampleProducts()[:3])

		err := s.DeleteByID(ctx, *created[1].ID)

		require.NoError(t, err)
		products, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		_, err = s.FindByID(ctx, *created[1].ID)
		require.ErrorIs(t, err, perrors.ErrProductNotFound)
	})

	t.Run("DeleteByID of a missing product", func(t *testing.T) {
		s := newStore(t)

		err := s.DeleteByID(ctx, 424242)

		require.ErrorIs(t, err, perrors.ErrProductNotFound)
	})

	t.Run("FindAll lists every product in ID order", func(t *testing.T) {
		s := newStore(t)
		created := createAll(t, s, sampleProducts()[:5])

		products, err := s.FindAll(ctx)

		require.NoError(t, err)
		require.Len(t, products, 5)
		for i := range created {
			assert.Equal(t, *created[i].ID, *products[i].ID)
		}
	})

	t.Run("FindByName returns exactly the matching subset", func(t *testing.T) {
		s := newStore(t)
		created := createAll(t, s, sampleProducts())
		expected := idsWhere(created, func(p model.Product) bool { return p.Name == "Fedora" })

		found, err := s.FindByName(ctx, "Fedora")

		require.NoError(t, err)
		assert.Equal(t, expected, ids(found))
		for _, p := range found {
			assert.Equal(t, "Fedora", p.Name)
		}
	})

	t.Run("FindByAvailability returns exactly the matching subset", func(t *testing.T) {
		s := newStore(t)
		created := createAll(t, s, sampleProducts())

		for _, available := range []bool{true, false} {
			expected := idsWhere(created, func(p model.Product) bool { return p.Available == available })

			found, err := s.FindByAvailability(ctx, available)

			require.NoError(t, err)
			assert.Equal(t, expected, ids(found))
		}
	})

	t.Run("FindByCategory returns exactly the matching subset", func(t *testing.T) {
		s := newStore(t)
		created := createAll(t, s, sampleProducts())

		for _, category := range model.Categories() {
			expected := idsWhere(created, func(p model.Product) bool { return p.Category == category })

			found, err := s.FindByCategory(ctx, category)

			require.NoError(t, err)
			assert.Equal(t, expected, ids(found), category.String())
		}
	})

	t.Run("FindByPrice compares numerically", func(t *testing.T) {
		s := newStore(t)
		created := createAll(t, s, sampleProducts())
		expected := idsWhere(created, func(p model.Product) bool {
			return p.Price.Equal(decimal.RequireFromString("12.5"))
		})

		found, err := s.FindByPrice(ctx, decimal.RequireFromString("12.5"))

		require.NoError(t, err)
		require.Len(t, expected, 3)
		assert.Equal(t, expected, ids(found))
	})

	t.Run("Create and Update store prices with two fraction digits", func(t *testing.T) {
		s := newStore(t)
		toCreate := sampleProducts()[0]
		toCreate.Price = decimal.RequireFromString("1.005")

		created, err := s.Create(ctx, toCreate)

		require.NoError(t, err)
		assert.Equal(t, "1.01", created.Price.String())
		found, err := s.FindByID(ctx, *created.ID)
		require.NoError(t, err)
		assert.Equal(t, "1.01", found.Price.String())
		hits, err := s.FindByPrice(ctx, decimal.RequireFromString("1.005"))
		require.NoError(t, err)
		assert.Empty(t, hits)
		hits, err = s.FindByPrice(ctx, decimal.RequireFromString("1.01"))
		require.NoError(t, err)
		assert.Equal(t, []int64{*created.ID}, ids(hits))

		// when
		created.Price = decimal.RequireFromString("2.345")
		updated, err := s.Update(ctx, *created.ID, *created)

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.35", updated.Price.String())
		found, err = s.FindByID(ctx, *created.ID)
		require.NoError(t, err)
		assert.Equal(t, "2.35", found.Price.String())
	})

	t.Run("Finders return an empty result when nothing matches", func(t *testing.T) {
		s := newStore(t)
		createAll(t, s, sampleProducts())

		found, err := s.FindByName(ctx, "Nothing")

		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("Returned products are detached copies", func(t *testing.T) {
		s := newStore(t)
		created := createAll(t, s, sampleProducts()[:1])[0]

		found, err := s.FindByID(ctx, *created.ID)
		require.NoError(t, err)
		found.Name = "changed"
		*found.ID = 999

		again, err := s.FindByID(ctx, *created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Name, again.Name)
		assert.Equal(t, *created.ID, *again.ID)
	})
}

func ids(products []model.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, *p.ID)
	}
	return out
}

func idsWhere(products []model.Product, match func(model.Product) bool) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		if match(p) {
			out = append(out, *p.ID)
		}
	}
	return out
}
