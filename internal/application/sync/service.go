// Package sync reconciles the local state store with the remote script
// endpoint: hydrating fetches on startup, and the write → settle →
// reconciliation-fetch cycle that follows every mutating admin action.
package sync

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tazamart/backend/internal/application/store"
	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
	"github.com/tazamart/backend/internal/infrastructure/sheets"
	"go.uber.org/zap"
)

// Remote is the transport surface the service needs; *sheets.Client
// satisfies it.
type Remote interface {
	Fetch(ctx context.Context) (*sheets.FetchResult, error)
	AddProduct(ctx context.Context, p catalog.Product) (sheets.Operation, error)
	EditProduct(ctx context.Context, p catalog.Product) (sheets.Operation, error)
	DeleteProduct(ctx context.Context, id int64) (sheets.Operation, error)
	AddOrder(ctx context.Context, o order.Order) (sheets.Operation, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (sheets.Operation, error)
	MarkReconciled(id uuid.UUID)
	MarkReconcileFailed(id uuid.UUID)
	Operation(id uuid.UUID) (sheets.Operation, bool)
}

// Config holds reconciliation tuning
type Config struct {
	// SettleDelay is the wait after a write before the reconciliation
	// fetch, giving the script time to finish processing
	SettleDelay time.Duration
	// ReconcileRetries bounds how often a failed reconciliation fetch is
	// retried before the operation is marked reconcile-failed
	ReconcileRetries int
	// RetryDelay is the wait between reconciliation attempts
	RetryDelay time.Duration
	// FetchTimeout bounds each reconciliation fetch
	FetchTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.SettleDelay <= 0 {
		c.SettleDelay = time.Second
	}
	if c.ReconcileRetries <= 0 {
		c.ReconcileRetries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 2 * time.Second
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
}

// Service drives the fetch/write/reconcile cycle against the store
type Service struct {
	store  *store.Store
	remote Remote
	cfg    Config
	log    *zap.Logger
	sleep  func(time.Duration)

	mu          sync.Mutex
	lastApplied uint64

	wg sync.WaitGroup
}

// New creates a sync service. remote may be nil, which disables sync.
func New(st *store.Store, remote Remote, cfg Config, log *zap.Logger) *Service {
	cfg.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  st,
		remote: remote,
		cfg:    cfg,
		log:    log.Named("sync"),
		sleep:  time.Sleep,
	}
}

// Enabled reports whether a remote endpoint is configured
func (s *Service) Enabled() bool {
	return s.remote != nil
}

// Refresh fetches remote state and applies it to the store. Responses
// arriving out of issuance order are discarded by sequence number. On
// any failure the loading flag is cleared and existing state is left
// untouched, so the storefront shows stale-but-consistent data instead
// of hanging or crashing.
func (s *Service) Refresh(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}

	result, err := s.remote.Fetch(ctx)
	if err != nil {
		s.log.Warn("remote fetch failed, keeping last known-good state", zap.Error(err))
		_ = s.store.Dispatch(store.SetLoading{Loading: false})
		return err
	}

	s.mu.Lock()
	if result.Seq <= s.lastApplied {
		s.mu.Unlock()
		s.log.Info("discarding stale fetch response",
			zap.Uint64("seq", result.Seq),
			zap.Uint64("last_applied", s.lastApplied),
		)
		_ = s.store.Dispatch(store.SetLoading{Loading: false})
		return nil
	}
	s.lastApplied = result.Seq
	s.mu.Unlock()

	replace := store.ReplaceData{Products: &result.Products}
	if result.HasOrders {
		replace.RemoteOrders = &result.Orders
	}
	if err := s.store.Dispatch(replace); err != nil {
		s.log.Warn("fetched state applied but not fully persisted", zap.Error(err))
	}
	_ = s.store.Dispatch(store.SetLoading{Loading: false})
	return nil
}

// PushProductAdd writes a new product and schedules reconciliation
func (s *Service) PushProductAdd(ctx context.Context, p catalog.Product) (sheets.Operation, error) {
	if !s.Enabled() {
		return sheets.Operation{}, nil
	}
	op, err := s.remote.AddProduct(ctx, p)
	s.scheduleReconcile(op)
	return op, err
}

// PushProductEdit writes a product update and schedules reconciliation
func (s *Service) PushProductEdit(ctx context.Context, p catalog.Product) (sheets.Operation, error) {
	if !s.Enabled() {
		return sheets.Operation{}, nil
	}
	op, err := s.remote.EditProduct(ctx, p)
	s.scheduleReconcile(op)
	return op, err
}

// PushProductDelete writes a product removal and schedules reconciliation
func (s *Service) PushProductDelete(ctx context.Context, id int64) (sheets.Operation, error) {
	if !s.Enabled() {
		return sheets.Operation{}, nil
	}
	op, err := s.remote.DeleteProduct(ctx, id)
	s.scheduleReconcile(op)
	return op, err
}

// PushOrder writes a placed order and schedules reconciliation
func (s *Service) PushOrder(ctx context.Context, o order.Order) (sheets.Operation, error) {
	if !s.Enabled() {
		return sheets.Operation{}, nil
	}
	op, err := s.remote.AddOrder(ctx, o)
	s.scheduleReconcile(op)
	return op, err
}

// PushOrderStatus writes a status change and schedules reconciliation
func (s *Service) PushOrderStatus(ctx context.Context, orderID string, status order.Status) (sheets.Operation, error) {
	if !s.Enabled() {
		return sheets.Operation{}, nil
	}
	op, err := s.remote.UpdateOrderStatus(ctx, orderID, status)
	s.scheduleReconcile(op)
	return op, err
}

// Operation returns a snapshot of a tracked write operation
func (s *Service) Operation(id uuid.UUID) (sheets.Operation, bool) {
	if !s.Enabled() {
		return sheets.Operation{}, false
	}
	return s.remote.Operation(id)
}

// Wait blocks until every scheduled reconciliation has finished. Used on
// shutdown and in tests.
func (s *Service) Wait() {
	s.wg.Wait()
}

// scheduleReconcile runs the settle-delay + bounded-retry fetch cycle in
// the background. The reconcile happens after successful and attempted
// writes alike: an opaque write that failed in transport may still have
// reached the remote side.
func (s *Service) scheduleReconcile(op sheets.Operation) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.reconcile(op)
	}()
}

func (s *Service) reconcile(op sheets.Operation) {
	s.sleep(s.cfg.SettleDelay)

	for attempt := 1; attempt <= s.cfg.ReconcileRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FetchTimeout)
		err := s.Refresh(ctx)
		cancel()
		if err == nil {
			s.remote.MarkReconciled(op.ID)
			return
		}
		s.log.Warn("reconciliation fetch failed",
			zap.String("op_id", op.ID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < s.cfg.ReconcileRetries {
			s.sleep(s.cfg.RetryDelay)
		}
	}
	s.remote.MarkReconcileFailed(op.ID)
}
