package store

import (
	"github.com/tazamart/backend/internal/domain/catalog"
)

// Reduce is the pure state transition function. It never fails and never
// mutates its input; unknown actions return the state unchanged.
func Reduce(state AppState, action Action) AppState {
	switch a := action.(type) {
	case AddToCart:
		return reduceAddToCart(state, a)
	case RemoveFromCart:
		return reduceRemoveFromCart(state, a.ProductID)
	case UpdateQuantity:
		return reduceUpdateQuantity(state, a)
	case PlaceOrder:
		return reducePlaceOrder(state, a)
	case ClearCart:
		next := state.clone()
		next.Cart = nil
		return next
	case UpdateOrderStatus:
		return reduceUpdateOrderStatus(state, a)
	case AddProduct:
		next := state.clone()
		next.Products = append(next.Products, a.Product)
		return next
	case UpdateProduct:
		next := state.clone()
		for i, p := range next.Products {
			if p.ID == a.Product.ID {
				next.Products[i] = a.Product
			}
		}
		return next
	case DeleteProduct:
		next := state.clone()
		kept := next.Products[:0]
		for _, p := range next.Products {
			if p.ID != a.ProductID {
				kept = append(kept, p)
			}
		}
		next.Products = kept
		return next
	case ToggleFavorite:
		next := state.clone()
		if next.Favorites[a.ProductID] {
			delete(next.Favorites, a.ProductID)
		} else {
			next.Favorites[a.ProductID] = true
		}
		return next
	case SetProfile:
		next := state.clone()
		next.Profile = a.Profile
		return next
	case SetLanguage:
		next := state.clone()
		next.Language = a.Language
		return next
	case SetTheme:
		next := state.clone()
		next.Theme = a.Theme
		return next
	case SetLoading:
		next := state.clone()
		next.IsLoading = a.Loading
		return next
	case ReplaceData:
		return reduceReplaceData(state, a)
	default:
		return state
	}
}

func reduceAddToCart(state AppState, a AddToCart) AppState {
	next := state.clone()
	for i, item := range next.Cart {
		if item.ID == a.Product.ID {
			next.Cart[i].Quantity = catalog.RoundQuantity(item.Quantity + a.Quantity)
			return next
		}
	}
	next.Cart = append(next.Cart, catalog.CartItem{Product: a.Product, Quantity: catalog.RoundQuantity(a.Quantity)})
	return next
}

func reduceRemoveFromCart(state AppState, productID int64) AppState {
	next := state.clone()
	kept := next.Cart[:0]
	for _, item := range next.Cart {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	next.Cart = kept
	return next
}

func reduceUpdateQuantity(state AppState, a UpdateQuantity) AppState {
	if a.Quantity <= 0 {
		return reduceRemoveFromCart(state, a.ProductID)
	}
	next := state.clone()
	for i, item := range next.Cart {
		if item.ID == a.ProductID {
			next.Cart[i].Quantity = a.Quantity
		}
	}
	return next
}

func reducePlaceOrder(state AppState, a PlaceOrder) AppState {
	next := state.clone()
	if _, known := next.orders[a.Order.ID]; !known {
		next.localIDs = append(next.localIDs, a.Order.ID)
	} else {
		present := false
		for _, id := range next.localIDs {
			if id == a.Order.ID {
				present = true
				break
			}
		}
		if !present {
			next.localIDs = append(next.localIDs, a.Order.ID)
		}
	}
	next.orders[a.Order.ID] = a.Order
	return next
}

func reduceUpdateOrderStatus(state AppState, a UpdateOrderStatus) AppState {
	o, ok := state.orders[a.OrderID]
	if !ok || !a.Status.IsValid() {
		return state
	}
	next := state.clone()
	o.Status = a.Status
	next.orders[a.OrderID] = o
	return next
}

func reduceReplaceData(state AppState, a ReplaceData) AppState {
	next := state.clone()

	if a.Products != nil {
		next.Products = append([]catalog.Product(nil), (*a.Products)...)
	}
	if a.Orders != nil {
		next.localIDs = next.localIDs[:0]
		for _, o := range *a.Orders {
			next.localIDs = append(next.localIDs, o.ID)
			next.orders[o.ID] = o
		}
	}
	if a.RemoteOrders != nil {
		next.remoteIDs = next.remoteIDs[:0]
		for _, o := range *a.RemoteOrders {
			next.remoteIDs = append(next.remoteIDs, o.ID)
			next.orders[o.ID] = o
		}
	}
	if a.Orders != nil || a.RemoteOrders != nil {
		next.dropOrphanedOrders()
	}
	if a.Favorites != nil {
		next.Favorites = make(map[int64]bool, len(*a.Favorites))
		for id, on := range *a.Favorites {
			if on {
				next.Favorites[id] = true
			}
		}
	}
	if a.Profile != nil {
		next.Profile = *a.Profile
	}
	if a.Language != nil {
		next.Language = *a.Language
	}
	if a.Theme != nil {
		next.Theme = *a.Theme
	}

	return next
}
