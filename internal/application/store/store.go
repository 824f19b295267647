package store

import (
	"sync"

	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
	"github.com/tazamart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Cache mirrors persisted state slices into durable local storage. The
// cart is session-only and deliberately has no save method.
type Cache interface {
	SaveProducts(products []catalog.Product) error
	SaveOrders(orders []order.Order) error
	SaveRemoteOrders(orders []order.Order) error
	SaveFavorites(ids []int64) error
	SaveProfile(profile order.Customer) error
	SavePreferences(language, theme string) error
}

type sliceMask uint8

const (
	sliceProducts sliceMask = 1 << iota
	sliceOrders
	sliceRemoteOrders
	sliceFavorites
	sliceProfile
	slicePrefs
)

// Store serializes dispatches through the reducer and mirrors every
// transition's affected persisted slices to the cache. Dispatches are
// processed one at a time to completion; network results re-enter as
// ordinary actions and are subject to the same serialization.
type Store struct {
	mu    sync.Mutex
	state AppState
	cache Cache
	log   *zap.Logger
	subs  []func(AppState)
}

// New creates a store seeded with the given state. cache may be nil, in
// which case transitions are memory-only.
func New(initial AppState, cache Cache, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		state: initial,
		cache: cache,
		log:   log.Named("store"),
	}
}

// State returns a snapshot of the current state
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers a callback invoked with a snapshot after every
// dispatch. Callbacks run outside the store lock and may dispatch.
func (s *Store) Subscribe(fn func(AppState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Dispatch runs the action through the reducer and mirrors affected
// slices to the cache. The in-memory transition always succeeds; a
// non-nil error reports that one or more slices could not be persisted
// and the in-memory state remains authoritative.
func (s *Store) Dispatch(action Action) error {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	snapshot := s.state.clone()
	subs := s.subs
	err := s.persist(snapshot, affectedSlices(action))
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	return err
}

// persist mirrors the slices named in the mask. Failures are logged and
// folded into a single storage error; they never block the transition.
func (s *Store) persist(snapshot AppState, mask sliceMask) error {
	if s.cache == nil || mask == 0 {
		return nil
	}

	failed := false
	save := func(name string, fn func() error) {
		if err := fn(); err != nil {
			failed = true
			s.log.Error("failed to persist state slice", zap.String("slice", name), zap.Error(err))
		}
	}

	if mask&sliceProducts != 0 {
		save("products", func() error { return s.cache.SaveProducts(snapshot.Products) })
	}
	if mask&sliceOrders != 0 {
		save("orders", func() error { return s.cache.SaveOrders(snapshot.Orders()) })
	}
	if mask&sliceRemoteOrders != 0 {
		save("remote_orders", func() error { return s.cache.SaveRemoteOrders(snapshot.RemoteOrders()) })
	}
	if mask&sliceFavorites != 0 {
		save("favorites", func() error { return s.cache.SaveFavorites(snapshot.FavoriteIDs()) })
	}
	if mask&sliceProfile != 0 {
		save("profile", func() error { return s.cache.SaveProfile(snapshot.Profile) })
	}
	if mask&slicePrefs != 0 {
		save("preferences", func() error { return s.cache.SavePreferences(snapshot.Language, snapshot.Theme) })
	}

	if failed {
		return shared.ErrStorageFailed
	}
	return nil
}

// affectedSlices maps an action to the persisted slices it can touch.
// Cart-only actions map to zero: the cart is never persisted.
func affectedSlices(action Action) sliceMask {
	switch a := action.(type) {
	case AddToCart, RemoveFromCart, UpdateQuantity, ClearCart, SetLoading:
		return 0
	case PlaceOrder:
		return sliceOrders
	case UpdateOrderStatus:
		return sliceOrders | sliceRemoteOrders
	case AddProduct, UpdateProduct, DeleteProduct:
		return sliceProducts
	case ToggleFavorite:
		return sliceFavorites
	case SetProfile:
		return sliceProfile
	case SetLanguage, SetTheme:
		return slicePrefs
	case ReplaceData:
		var mask sliceMask
		if a.Products != nil {
			mask |= sliceProducts
		}
		if a.Orders != nil {
			mask |= sliceOrders
		}
		if a.RemoteOrders != nil {
			mask |= sliceRemoteOrders
		}
		if a.Favorites != nil {
			mask |= sliceFavorites
		}
		if a.Profile != nil {
			mask |= sliceProfile
		}
		if a.Language != nil || a.Theme != nil {
			mask |= slicePrefs
		}
		return mask
	default:
		return 0
	}
}
