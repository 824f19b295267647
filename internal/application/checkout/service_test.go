package checkout

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazamart/backend/internal/application/store"
	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
	"github.com/tazamart/backend/internal/domain/shared"
)

func testCustomer() order.Customer {
	return order.Customer{Name: "Ayesha Khan", Address: "12 Canal Road, Lahore", Phone: "0300-1234567"}
}

func storeWithCart(t *testing.T, cache store.Cache) *store.Store {
	t.Helper()
	st := store.New(store.NewState(catalog.DefaultProducts(), nil, nil, nil, order.Customer{}, "en", "light"), cache, nil)
	p := st.State().Products[0]
	require.NoError(t, st.Dispatch(store.AddToCart{Product: p, Quantity: 2}))
	return st
}

func TestPlaceOrderHappyPath(t *testing.T) {
	st := storeWithCart(t, nil)
	svc := New(st, nil, nil)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	o, err := svc.PlaceOrder(context.Background(), Input{
		Customer:      testCustomer(),
		PaymentMethod: order.PaymentEasypaisa,
		PaymentProof:  "data:image/png;base64,abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "TM-1700000000000", o.ID)
	assert.Equal(t, order.StatusPending, o.Status)
	require.Len(t, o.Items, 1)
	assert.True(t, o.Total.Equal(o.Items[0].Price.Mul(decimal.NewFromInt(2))))

	state := st.State()
	assert.Empty(t, state.Cart, "cart is cleared after checkout")
	require.Len(t, state.Orders(), 1)
	assert.Equal(t, o.ID, state.Orders()[0].ID)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	st := store.New(store.NewState(nil, nil, nil, nil, order.Customer{}, "en", "light"), nil, nil)
	svc := New(st, nil, nil)

	_, err := svc.PlaceOrder(context.Background(), Input{
		Customer:      testCustomer(),
		PaymentMethod: order.PaymentJazzCash,
		PaymentProof:  "proof",
	})
	assert.ErrorIs(t, err, shared.ErrEmptyCart)
}

func TestPlaceOrderValidation(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"missing name", Input{Customer: order.Customer{Address: "a", Phone: "p"}, PaymentMethod: order.PaymentEasypaisa, PaymentProof: "x"}},
		{"missing address", Input{Customer: order.Customer{Name: "n", Phone: "p"}, PaymentMethod: order.PaymentEasypaisa, PaymentProof: "x"}},
		{"missing phone", Input{Customer: order.Customer{Name: "n", Address: "a"}, PaymentMethod: order.PaymentEasypaisa, PaymentProof: "x"}},
		{"unknown payment method", Input{Customer: testCustomer(), PaymentMethod: "Cash", PaymentProof: "x"}},
		{"missing proof", Input{Customer: testCustomer(), PaymentMethod: order.PaymentJazzCash}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := storeWithCart(t, nil)
			_, err := New(st, nil, nil).PlaceOrder(context.Background(), tc.in)
			require.Error(t, err)
			assert.Len(t, st.State().Cart, 1, "failed checkout leaves the cart alone")
			assert.Empty(t, st.State().Orders())
		})
	}
}

// failingOrderCache rejects order writes but accepts everything else
type failingOrderCache struct{}

func (c *failingOrderCache) SaveProducts(products []catalog.Product) error { return nil }
func (c *failingOrderCache) SaveOrders(orders []order.Order) error         { return shared.ErrStorageFailed }
func (c *failingOrderCache) SaveRemoteOrders(orders []order.Order) error   { return nil }
func (c *failingOrderCache) SaveFavorites(ids []int64) error               { return nil }
func (c *failingOrderCache) SaveProfile(profile order.Customer) error      { return nil }
func (c *failingOrderCache) SavePreferences(language, theme string) error  { return nil }

func TestPlaceOrderStorageFailureIsRetryableButOrderStands(t *testing.T) {
	st := storeWithCart(t, &failingOrderCache{})
	svc := New(st, nil, nil)

	o, err := svc.PlaceOrder(context.Background(), Input{
		Customer:      testCustomer(),
		PaymentMethod: order.PaymentEasypaisa,
		PaymentProof:  strings.Repeat("A", 1<<16),
	})
	require.ErrorIs(t, err, shared.ErrStorageFailed)
	require.NotNil(t, o)

	state := st.State()
	assert.Len(t, state.Orders(), 1, "in-memory state keeps the order")
	assert.Empty(t, state.Cart)
}
