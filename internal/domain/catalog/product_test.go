package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(1, "Fresh Tomatoes", decimal.NewFromInt(120), "https://example.com/t.jpg", CategoryVegetables, UnitKg, "Vine ripened")
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, int64(1), product.ID)
		assert.Equal(t, "Fresh Tomatoes", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(120)))
		assert.Equal(t, CategoryVegetables, product.Category)
		assert.Equal(t, UnitKg, product.Unit)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(1, "", decimal.NewFromInt(10), "", CategoryFruits, UnitPiece, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct(1, "Apples", decimal.NewFromInt(-5), "", CategoryFruits, UnitKg, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price cannot be negative")
	})

	t.Run("fails with unknown category", func(t *testing.T) {
		_, err := NewProduct(1, "Apples", decimal.NewFromInt(5), "", Category("Dairy"), UnitKg, "")
		require.Error(t, err)
	})

	t.Run("fails with unknown unit", func(t *testing.T) {
		_, err := NewProduct(1, "Apples", decimal.NewFromInt(5), "", CategoryFruits, Unit("dozen"), "")
		require.Error(t, err)
	})
}

func TestUnitQuantityStep(t *testing.T) {
	assert.Equal(t, 0.25, UnitKg.QuantityStep())
	assert.Equal(t, 1.0, UnitPiece.QuantityStep())
	assert.Equal(t, 1.0, UnitBundle.QuantityStep())
}

func TestRoundQuantity(t *testing.T) {
	t.Run("keeps two decimal places", func(t *testing.T) {
		assert.Equal(t, 0.8, RoundQuantity(0.5+0.3))
	})

	t.Run("removes accumulated float drift", func(t *testing.T) {
		q := 0.0
		for i := 0; i < 3; i++ {
			q = RoundQuantity(q + 0.1)
		}
		assert.Equal(t, 0.3, q)
	})
}

func TestCartItemSubtotal(t *testing.T) {
	item := CartItem{
		Product:  Product{ID: 1, Name: "Tomatoes", Price: decimal.NewFromInt(120), Category: CategoryVegetables, Unit: UnitKg},
		Quantity: 0.5,
	}
	assert.True(t, item.Subtotal().Equal(decimal.NewFromInt(60)))
}

func TestDefaultProducts(t *testing.T) {
	products := DefaultProducts()
	require.Len(t, products, 10)

	t.Run("all entries are valid", func(t *testing.T) {
		for _, p := range products {
			assert.True(t, p.Category.IsValid(), "category of %s", p.Name)
			assert.True(t, p.Unit.IsValid(), "unit of %s", p.Name)
			assert.False(t, p.Price.IsNegative(), "price of %s", p.Name)
		}
	})

	t.Run("returns an independent copy", func(t *testing.T) {
		products[0].Name = "mutated"
		assert.Equal(t, "Fresh Tomatoes", DefaultProducts()[0].Name)
	})
}
