package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazamart/backend/internal/domain/catalog"
)

func testItems() []catalog.CartItem {
	return []catalog.CartItem{
		{
			Product:  catalog.Product{ID: 1, Name: "Fresh Tomatoes", Price: decimal.NewFromInt(120), Category: catalog.CategoryVegetables, Unit: catalog.UnitKg},
			Quantity: 0.5,
		},
		{
			Product:  catalog.Product{ID: 7, Name: "Weekly Veggie Box", Price: decimal.NewFromInt(800), Category: catalog.CategoryBundles, Unit: catalog.UnitBundle},
			Quantity: 1,
		},
	}
}

func testCustomer() Customer {
	return Customer{Name: "Ayesha Khan", Address: "House 12, Street 4, Lahore", Phone: "0300-1234567"}
}

func TestNewID(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "TM-1700000000000", NewID(now))
}

func TestNew(t *testing.T) {
	now := time.Now()

	t.Run("assembles a pending order", func(t *testing.T) {
		o, err := New(NewID(now), testCustomer(), testItems(), PaymentEasypaisa, "data:image/png;base64,AAAA", now)
		require.NoError(t, err)

		assert.Equal(t, StatusPending, o.Status)
		assert.True(t, o.Total.Equal(decimal.NewFromInt(860)))
		assert.Equal(t, now, o.OrderDate)
		require.Len(t, o.Items, 2)
	})

	t.Run("snapshots the cart items", func(t *testing.T) {
		items := testItems()
		o, err := New(NewID(now), testCustomer(), items, PaymentJazzCash, "proof", now)
		require.NoError(t, err)

		items[0].Quantity = 99
		assert.Equal(t, 0.5, o.Items[0].Quantity)
	})

	t.Run("fails with missing customer fields", func(t *testing.T) {
		c := testCustomer()
		c.Phone = "  "
		_, err := New(NewID(now), c, testItems(), PaymentEasypaisa, "proof", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Phone number is required")
	})

	t.Run("fails with empty cart", func(t *testing.T) {
		_, err := New(NewID(now), testCustomer(), nil, PaymentEasypaisa, "proof", now)
		require.Error(t, err)
	})

	t.Run("fails without payment proof", func(t *testing.T) {
		_, err := New(NewID(now), testCustomer(), testItems(), PaymentEasypaisa, "", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Payment proof is required")
	})

	t.Run("fails with unknown payment method", func(t *testing.T) {
		_, err := New(NewID(now), testCustomer(), testItems(), PaymentMethod("Cash"), "proof", now)
		require.Error(t, err)
	})
}

func TestSetStatus(t *testing.T) {
	now := time.Now()
	o, err := New(NewID(now), testCustomer(), testItems(), PaymentEasypaisa, "proof", now)
	require.NoError(t, err)

	require.NoError(t, o.SetStatus(StatusPacked))
	assert.Equal(t, StatusPacked, o.Status)

	require.Error(t, o.SetStatus(Status("Shipped")))
	assert.Equal(t, StatusPacked, o.Status)
}

func TestTotal(t *testing.T) {
	t.Run("sums fractional quantities exactly", func(t *testing.T) {
		items := []catalog.CartItem{
			{Product: catalog.Product{ID: 1, Price: decimal.NewFromInt(120)}, Quantity: 0.3},
			{Product: catalog.Product{ID: 2, Price: decimal.NewFromInt(80)}, Quantity: 0.25},
		}
		assert.True(t, Total(items).Equal(decimal.NewFromInt(56)))
	})

	t.Run("empty cart totals zero", func(t *testing.T) {
		assert.True(t, Total(nil).IsZero())
	})
}
