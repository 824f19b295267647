// Package checkout assembles orders from the current cart and runs the
// place-order flow: validate, snapshot, persist, then hand the order to
// the sync layer for the remote write.
package checkout

import (
	"context"
	"time"

	"github.com/tazamart/backend/internal/application/store"
	"github.com/tazamart/backend/internal/application/sync"
	"github.com/tazamart/backend/internal/domain/order"
	"github.com/tazamart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Input carries everything the checkout form collects
type Input struct {
	Customer      order.Customer
	PaymentMethod order.PaymentMethod
	PaymentProof  string
}

// Service runs the checkout flow against the store
type Service struct {
	store *store.Store
	sync  *sync.Service
	now   func() time.Time
	log   *zap.Logger
}

// New creates a checkout service. syncer may be nil when no remote
// endpoint is configured.
func New(st *store.Store, syncer *sync.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store: st,
		sync:  syncer,
		now:   time.Now,
		log:   log.Named("checkout"),
	}
}

// PlaceOrder validates the input, snapshots the cart into a new pending
// order, persists it and clears the cart, then pushes the order to the
// remote when sync is enabled. A storage failure is returned after the
// order is already in memory; the caller may retry persistence-sensitive
// flows, but the in-memory order stands either way.
func (s *Service) PlaceOrder(ctx context.Context, in Input) (*order.Order, error) {
	state := s.store.State()
	cart := state.Cart
	if len(cart) == 0 {
		return nil, shared.ErrEmptyCart
	}

	placedAt := s.now()
	o, err := order.New(order.NewID(placedAt), in.Customer, cart, in.PaymentMethod, in.PaymentProof, placedAt)
	if err != nil {
		return nil, err
	}

	persistErr := s.store.Dispatch(store.PlaceOrder{Order: *o})
	_ = s.store.Dispatch(store.ClearCart{})

	s.log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total.String()),
	)

	if s.sync != nil && s.sync.Enabled() {
		if _, err := s.sync.PushOrder(ctx, *o); err != nil {
			// The write is opaque and may have landed anyway; reconciliation
			// is already scheduled, so the checkout still completes.
			s.log.Warn("remote order write failed in transport",
				zap.String("order_id", o.ID),
				zap.Error(err),
			)
		}
	}

	if persistErr != nil {
		return o, persistErr
	}
	return o, nil
}
