package store

import (
	"sort"

	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
)

// AppState is the single source of truth for the storefront: catalog,
// session cart, orders, favorites, profile and UI preferences.
//
// Orders are held once in a canonical collection keyed by id; the customer
// history and the admin/remote list are ordered views over that collection.
// A status change therefore shows up in every view containing the id
// without any fan-out logic in the reducer.
type AppState struct {
	Products  []catalog.Product
	Cart      []catalog.CartItem
	Favorites map[int64]bool
	Profile   order.Customer
	Language  string
	Theme     string
	IsLoading bool

	orders    map[string]order.Order
	localIDs  []string
	remoteIDs []string
}

// NewState builds an AppState from hydrated slices. Orders appearing in
// both lists are stored once; the remote copy wins on conflicting fields
// since the remote source is the source of truth for admin-visible data.
func NewState(products []catalog.Product, localOrders, remoteOrders []order.Order, favorites map[int64]bool, profile order.Customer, language, theme string) AppState {
	s := AppState{
		Products:  products,
		Favorites: favorites,
		Profile:   profile,
		Language:  language,
		Theme:     theme,
		orders:    make(map[string]order.Order),
	}
	if s.Favorites == nil {
		s.Favorites = make(map[int64]bool)
	}
	for _, o := range localOrders {
		s.orders[o.ID] = o
		s.localIDs = append(s.localIDs, o.ID)
	}
	for _, o := range remoteOrders {
		s.orders[o.ID] = o
		s.remoteIDs = append(s.remoteIDs, o.ID)
	}
	return s
}

// Orders returns the customer's local order history view
func (s AppState) Orders() []order.Order {
	return s.view(s.localIDs)
}

// RemoteOrders returns the admin-visible order list view
func (s AppState) RemoteOrders() []order.Order {
	return s.view(s.remoteIDs)
}

// Order looks up a single order by id across the canonical collection
func (s AppState) Order(id string) (order.Order, bool) {
	o, ok := s.orders[id]
	return o, ok
}

// CartItem looks up a cart entry by product id
func (s AppState) CartItem(productID int64) (catalog.CartItem, bool) {
	for _, item := range s.Cart {
		if item.ID == productID {
			return item, true
		}
	}
	return catalog.CartItem{}, false
}

// Product looks up a catalog entry by id
func (s AppState) Product(id int64) (catalog.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// FavoriteIDs returns the favorite product ids in ascending order
func (s AppState) FavoriteIDs() []int64 {
	ids := make([]int64, 0, len(s.Favorites))
	for id, on := range s.Favorites {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CartCount returns the summed quantity across all cart entries
func (s AppState) CartCount() float64 {
	var n float64
	for _, item := range s.Cart {
		n += item.Quantity
	}
	return catalog.RoundQuantity(n)
}

func (s AppState) view(ids []string) []order.Order {
	out := make([]order.Order, 0, len(ids))
	for _, id := range ids {
		if o, ok := s.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

// clone returns a deep copy suitable for mutation by the reducer. Order
// item slices are snapshots frozen at checkout and are shared, never
// mutated in place.
func (s AppState) clone() AppState {
	next := s

	next.Products = append([]catalog.Product(nil), s.Products...)
	next.Cart = append([]catalog.CartItem(nil), s.Cart...)
	next.localIDs = append([]string(nil), s.localIDs...)
	next.remoteIDs = append([]string(nil), s.remoteIDs...)

	next.Favorites = make(map[int64]bool, len(s.Favorites))
	for id, on := range s.Favorites {
		next.Favorites[id] = on
	}

	next.orders = make(map[string]order.Order, len(s.orders))
	for id, o := range s.orders {
		next.orders[id] = o
	}

	return next
}

// dropOrphanedOrders removes canonical entries referenced by neither view
func (s *AppState) dropOrphanedOrders() {
	referenced := make(map[string]bool, len(s.localIDs)+len(s.remoteIDs))
	for _, id := range s.localIDs {
		referenced[id] = true
	}
	for _, id := range s.remoteIDs {
		referenced[id] = true
	}
	for id := range s.orders {
		if !referenced[id] {
			delete(s.orders, id)
		}
	}
}
