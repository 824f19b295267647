// Package admin implements the management console operations: a shared
// password gate, product catalog maintenance and order fulfilment.
package admin

import (
	"context"
	"crypto/subtle"
	"sort"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/tazamart/backend/internal/application/store"
	"github.com/tazamart/backend/internal/application/sync"
	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
	"github.com/tazamart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Config holds the admin gate settings
type Config struct {
	// Password is the shared console password. Empty disables the console.
	Password string
	// SessionTTL bounds how long an issued token stays valid
	SessionTTL time.Duration
}

func (c *Config) applyDefaults() {
	if c.SessionTTL <= 0 {
		c.SessionTTL = 12 * time.Hour
	}
}

// Service exposes the admin console operations
type Service struct {
	store *store.Store
	sync  *sync.Service
	cfg   Config
	log   *zap.Logger
	now   func() time.Time

	mu       gosync.Mutex
	sessions map[string]time.Time
}

// New creates an admin service. syncer may be nil when no remote
// endpoint is configured; product and status changes then stay local.
func New(st *store.Store, syncer *sync.Service, cfg Config, log *zap.Logger) *Service {
	cfg.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    st,
		sync:     syncer,
		cfg:      cfg,
		log:      log.Named("admin"),
		now:      time.Now,
		sessions: map[string]time.Time{},
	}
}

// Login checks the shared password and issues a session token
func (s *Service) Login(password string) (string, error) {
	if s.cfg.Password == "" {
		return "", shared.NewDomainError("ADMIN_DISABLED", "Admin console is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) != 1 {
		s.log.Warn("admin login rejected")
		return "", shared.ErrUnauthorized
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.pruneLocked()
	s.sessions[token] = s.now().Add(s.cfg.SessionTTL)
	s.mu.Unlock()

	s.log.Info("admin session issued")
	return token, nil
}

// Authenticate reports whether the token belongs to a live session
func (s *Service) Authenticate(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.sessions, token)
		return false
	}
	return true
}

// Logout discards the session token
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *Service) pruneLocked() {
	now := s.now()
	for token, expiry := range s.sessions {
		if now.After(expiry) {
			delete(s.sessions, token)
		}
	}
}

// AddProduct validates and registers a new product. The id is assigned
// from the current catalog when the caller leaves it zero.
func (s *Service) AddProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID == 0 {
		p.ID = s.nextProductID()
	}
	valid, err := catalog.NewProduct(p.ID, p.Name, p.Price, p.Image, p.Category, p.Unit, p.Description)
	if err != nil {
		return catalog.Product{}, err
	}

	if err := s.store.Dispatch(store.AddProduct{Product: *valid}); err != nil {
		s.log.Warn("product added but not persisted", zap.Int64("product_id", valid.ID), zap.Error(err))
	}
	if s.sync != nil && s.sync.Enabled() {
		if _, err := s.sync.PushProductAdd(ctx, *valid); err != nil {
			s.logPushFailure(valid.ID, "add", err)
		}
	}
	return *valid, nil
}

// UpdateProduct validates and replaces an existing product
func (s *Service) UpdateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if _, ok := s.store.State().Product(p.ID); !ok {
		return catalog.Product{}, shared.ErrNotFound
	}
	valid, err := catalog.NewProduct(p.ID, p.Name, p.Price, p.Image, p.Category, p.Unit, p.Description)
	if err != nil {
		return catalog.Product{}, err
	}

	if err := s.store.Dispatch(store.UpdateProduct{Product: *valid}); err != nil {
		s.log.Warn("product updated but not persisted", zap.Int64("product_id", valid.ID), zap.Error(err))
	}
	if s.sync != nil && s.sync.Enabled() {
		if _, err := s.sync.PushProductEdit(ctx, *valid); err != nil {
			s.logPushFailure(valid.ID, "edit", err)
		}
	}
	return *valid, nil
}

// DeleteProduct removes a product from the catalog
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if _, ok := s.store.State().Product(id); !ok {
		return shared.ErrNotFound
	}

	if err := s.store.Dispatch(store.DeleteProduct{ProductID: id}); err != nil {
		s.log.Warn("product deleted but not persisted", zap.Int64("product_id", id), zap.Error(err))
	}
	if s.sync != nil && s.sync.Enabled() {
		if _, err := s.sync.PushProductDelete(ctx, id); err != nil {
			s.logPushFailure(id, "delete", err)
		}
	}
	return nil
}

// ListOrders returns the admin view of all fetched orders
func (s *Service) ListOrders() []order.Order {
	return s.store.State().RemoteOrders()
}

// UpdateOrderStatus moves an order to a new status locally, then writes
// the change remotely when sync is enabled
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if _, ok := s.store.State().Order(orderID); !ok {
		return shared.ErrNotFound
	}

	if err := s.store.Dispatch(store.UpdateOrderStatus{OrderID: orderID, Status: status}); err != nil {
		s.log.Warn("order status updated but not persisted", zap.String("order_id", orderID), zap.Error(err))
	}

	if s.sync != nil && s.sync.Enabled() {
		if _, err := s.sync.PushOrderStatus(ctx, orderID, status); err != nil {
			s.log.Warn("remote status write failed in transport",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// logPushFailure records a product write that failed in transport. The
// failure is logged, not returned: the write is opaque and the scheduled
// reconciliation decides the real outcome.
func (s *Service) logPushFailure(id int64, action string, err error) {
	s.log.Warn("remote product write failed in transport",
		zap.Int64("product_id", id),
		zap.String("action", action),
		zap.Error(err),
	)
}

// nextProductID picks the lowest id above the current catalog maximum
func (s *Service) nextProductID() int64 {
	products := s.store.State().Products
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) == 0 {
		return 1
	}
	return ids[len(ids)-1] + 1
}
