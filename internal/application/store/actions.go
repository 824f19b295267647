package store

import (
	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
)

// Action is a state transition request processed by the reducer. Unknown
// action types are a safe no-op, never an error.
type Action interface {
	isAction()
}

// AddToCart merges a quantity into the cart entry for the product,
// creating the entry if absent. Merged quantities are rounded to two
// decimal places.
type AddToCart struct {
	Product  catalog.Product
	Quantity float64
}

// RemoveFromCart drops the cart entry for the product id, if any
type RemoveFromCart struct {
	ProductID int64
}

// UpdateQuantity sets a cart entry's quantity exactly. A quantity of zero
// or less removes the entry.
type UpdateQuantity struct {
	ProductID int64
	Quantity  float64
}

// PlaceOrder appends an order to the local customer history. Callers
// always follow it with ClearCart.
type PlaceOrder struct {
	Order order.Order
}

// ClearCart empties the cart
type ClearCart struct{}

// UpdateOrderStatus updates an order's status wherever the id is known;
// an id present in no view leaves the state unchanged.
type UpdateOrderStatus struct {
	OrderID string
	Status  order.Status
}

// AddProduct appends a product to the catalog. Used only when remote sync
// is disabled; with sync enabled, product CRUD goes through the sync
// client and the catalog is overwritten wholesale by the next fetch.
type AddProduct struct {
	Product catalog.Product
}

// UpdateProduct replaces the catalog entry with a matching id
type UpdateProduct struct {
	Product catalog.Product
}

// DeleteProduct removes the catalog entry with a matching id
type DeleteProduct struct {
	ProductID int64
}

// ToggleFavorite flips membership of the product id in the favorites set
type ToggleFavorite struct {
	ProductID int64
}

// SetProfile replaces the stored user profile
type SetProfile struct {
	Profile order.Customer
}

// SetLanguage sets the UI language preference
type SetLanguage struct {
	Language string
}

// SetTheme sets the UI theme preference
type SetTheme struct {
	Theme string
}

// SetLoading toggles the catalog loading flag; persisted slices are
// untouched.
type SetLoading struct {
	Loading bool
}

// ReplaceData merge-overwrites named top-level slices. A nil field leaves
// the corresponding slice untouched, so hydration and fetch results never
// reset state they did not carry.
type ReplaceData struct {
	Products     *[]catalog.Product
	Orders       *[]order.Order
	RemoteOrders *[]order.Order
	Favorites    *map[int64]bool
	Profile      *order.Customer
	Language     *string
	Theme        *string
}

func (AddToCart) isAction()         {}
func (RemoveFromCart) isAction()    {}
func (UpdateQuantity) isAction()    {}
func (PlaceOrder) isAction()        {}
func (ClearCart) isAction()         {}
func (UpdateOrderStatus) isAction() {}
func (AddProduct) isAction()        {}
func (UpdateProduct) isAction()     {}
func (DeleteProduct) isAction()     {}
func (ToggleFavorite) isAction()    {}
func (SetProfile) isAction()        {}
func (SetLanguage) isAction()       {}
func (SetTheme) isAction()          {}
func (SetLoading) isAction()        {}
func (ReplaceData) isAction()       {}
