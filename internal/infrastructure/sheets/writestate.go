package sheets

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// OpStatus is the lifecycle state of a remote write. The transport never
// exposes success or failure, so a write moves from pending straight to
// presumed-applied; only a later reconciliation fetch settles it.
type OpStatus string

const (
	// OpPending means the write has not yet been handed to the transport
	OpPending OpStatus = "pending"
	// OpPresumedApplied means the write was sent; the response is
	// unreadable, so success is assumed until a fetch says otherwise
	OpPresumedApplied OpStatus = "presumed_applied"
	// OpReconciled means a fetch after the write completed, making its
	// result the new truth
	OpReconciled OpStatus = "reconciled"
	// OpReconcileFailed means every reconciliation fetch after the write
	// failed; state is frozen at the last known-good fetch
	OpReconcileFailed OpStatus = "reconcile_failed"
)

// Operation is a snapshot of one remote write's lifecycle
type Operation struct {
	ID           uuid.UUID  `json:"id"`
	Action       string     `json:"action"`
	Status       OpStatus   `json:"status"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	ReconciledAt *time.Time `json:"reconciledAt,omitempty"`
}

// opRegistry tracks in-flight and settled write operations
type opRegistry struct {
	mu  sync.Mutex
	ops map[uuid.UUID]Operation
}

func newOpRegistry() *opRegistry {
	return &opRegistry{ops: make(map[uuid.UUID]Operation)}
}

func (r *opRegistry) create(action string) Operation {
	op := Operation{
		ID:          uuid.New(),
		Action:      action,
		Status:      OpPending,
		SubmittedAt: time.Now(),
	}
	r.mu.Lock()
	r.ops[op.ID] = op
	r.mu.Unlock()
	return op
}

func (r *opRegistry) setStatus(id uuid.UUID, status OpStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.ops[id]
	if !ok {
		return
	}
	op.Status = status
	if status == OpReconciled || status == OpReconcileFailed {
		now := time.Now()
		op.ReconciledAt = &now
	}
	r.ops[id] = op
}

func (r *opRegistry) get(id uuid.UUID) (Operation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.ops[id]
	return op, ok
}
