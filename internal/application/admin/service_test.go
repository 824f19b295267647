package admin

import (
	"context"
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

func newTestStore(remoteOrders []order.Order) *store.Store {
	return store.New(store.NewState(catalog.DefaultProducts(), nil, remoteOrders, nil, order.Customer{}, "en", "light"), nil, nil)
}

func newTestService(st *store.Store) *Service {
	return New(st, nil, Config{Password: "hunter2"}, nil)
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestService(newTestStore(nil))

	token, err := svc.Login("hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, svc.Authenticate(token))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(newTestStore(nil))

	_, err := svc.Login("letmein")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestLoginDisabledWithoutPassword(t *testing.T) {
	svc := New(newTestStore(nil), nil, Config{}, nil)

	_, err := svc.Login("")
	require.Error(t, err)
}

func TestSessionExpires(t *testing.T) {
	svc := New(newTestStore(nil), nil, Config{Password: "hunter2", SessionTTL: time.Minute}, nil)
	base := time.Now()
	svc.now = func() time.Time { return base }

	token, err := svc.Login("hunter2")
	require.NoError(t, err)
	assert.True(t, svc.Authenticate(token))

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	assert.False(t, svc.Authenticate(token))
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc := newTestService(newTestStore(nil))

	token, err := svc.Login("hunter2")
	require.NoError(t, err)
	svc.Logout(token)
	assert.False(t, svc.Authenticate(token))
}

func TestAddProductAssignsNextID(t *testing.T) {
	st := newTestStore(nil)
	svc := newTestService(st)

	added, err := svc.AddProduct(context.Background(), catalog.Product{
		Name:     "Organic Honey",
		Price:    decimal.NewFromInt(950),
		Category: catalog.CategorySeasonal,
		Unit:     catalog.UnitPiece,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), added.ID, "id continues past the default catalog")

	_, ok := st.State().Product(added.ID)
	assert.True(t, ok)
}

func TestAddProductRejectsInvalid(t *testing.T) {
	svc := newTestService(newTestStore(nil))

	_, err := svc.AddProduct(context.Background(), catalog.Product{
		Name:     "",
		Price:    decimal.NewFromInt(10),
		Category: catalog.CategoryFruits,
		Unit:     catalog.UnitKg,
	})
	require.Error(t, err)
}

func TestUpdateProductUnknownID(t *testing.T) {
	svc := newTestService(newTestStore(nil))

	_, err := svc.UpdateProduct(context.Background(), catalog.Product{
		ID:       999,
		Name:     "Ghost",
		Price:    decimal.NewFromInt(1),
		Category: catalog.CategoryFruits,
		Unit:     catalog.UnitKg,
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateProductReplacesEntry(t *testing.T) {
	st := newTestStore(nil)
	svc := newTestService(st)
	existing := st.State().Products[0]
	existing.Price = decimal.NewFromInt(777)

	updated, err := svc.UpdateProduct(context.Background(), existing)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(777)))

	got, ok := st.State().Product(existing.ID)
	require.True(t, ok)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(777)))
}

func TestDeleteProduct(t *testing.T) {
	st := newTestStore(nil)
	svc := newTestService(st)
	id := st.State().Products[0].ID

	require.NoError(t, svc.DeleteProduct(context.Background(), id))
	_, ok := st.State().Product(id)
	assert.False(t, ok)

	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), id), shared.ErrNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	remote := []order.Order{{ID: "TM-100", Status: order.StatusPending, OrderDate: time.Now()}}
	st := newTestStore(remote)
	svc := newTestService(st)

	require.NoError(t, svc.UpdateOrderStatus(context.Background(), "TM-100", order.StatusPacked))
	orders := svc.ListOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, order.StatusPacked, orders[0].Status)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	svc := newTestService(newTestStore(nil))

	err := svc.UpdateOrderStatus(context.Background(), "TM-404", order.StatusPacked)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateOrderStatusInvalidStatus(t *testing.T) {
	remote := []order.Order{{ID: "TM-100", Status: order.StatusPending, OrderDate: time.Now()}}
	svc := newTestService(newTestStore(remote))

	err := svc.UpdateOrderStatus(context.Background(), "TM-100", "Shipped")
	require.Error(t, err)
}
