package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/shared"
)

// OrderIDPrefix prefixes every generated order id
const OrderIDPrefix = "TM-"

// Status is the fulfilment state of an order. Only an admin moves an
// order between statuses; everything else on an order is immutable after
// checkout.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPacked    Status = "Packed"
	StatusDelivered Status = "Delivered"
)

// Statuses lists all valid order statuses
func Statuses() []Status {
	return []Status{StatusPending, StatusPacked, StatusDelivered}
}

// IsValid returns true if the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPacked, StatusDelivered:
		return true
	}
	return false
}

// PaymentMethod identifies the wallet the customer paid with
type PaymentMethod string

const (
	PaymentEasypaisa PaymentMethod = "Easypaisa"
	PaymentJazzCash  PaymentMethod = "JazzCash"
)

// IsValid returns true if the payment method is one of the known values
func (m PaymentMethod) IsValid() bool {
	return m == PaymentEasypaisa || m == PaymentJazzCash
}

// Customer holds the delivery details collected at checkout. The same
// shape doubles as the locally persisted user profile that prefills the
// checkout form.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Validate checks that every delivery field is present
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if strings.TrimSpace(c.Address) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Delivery address is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Phone number is required")
	}
	return nil
}

// Order is a placed order. Items are a snapshot of the cart at the moment
// of purchase; later cart mutations never reach back into an order.
type Order struct {
	ID            string             `json:"id"`
	Customer      Customer           `json:"customer"`
	Items         []catalog.CartItem `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	Status        Status             `json:"status"`
	PaymentMethod PaymentMethod      `json:"paymentMethod"`
	PaymentProof  string             `json:"paymentProof"`
	OrderDate     time.Time          `json:"orderDate"`
}

// NewID generates an order id from the current wall clock. Two submissions
// within the same millisecond collide; the storefront accepts that risk.
func NewID(now time.Time) string {
	return fmt.Sprintf("%s%d", OrderIDPrefix, now.UnixMilli())
}

// New assembles a pending order from a cart snapshot
func New(id string, customer Customer, items []catalog.CartItem, method PaymentMethod, proof string, placedAt time.Time) (*Order, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if proof == "" {
		return nil, shared.NewDomainError("MISSING_PAYMENT_PROOF", "Payment proof is required")
	}

	snapshot := make([]catalog.CartItem, len(items))
	copy(snapshot, items)

	return &Order{
		ID:            id,
		Customer:      customer,
		Items:         snapshot,
		Total:         Total(snapshot),
		Status:        StatusPending,
		PaymentMethod: method,
		PaymentProof:  proof,
		OrderDate:     placedAt,
	}, nil
}

// Total sums the subtotals of the given cart items
func Total(items []catalog.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// SetStatus moves the order to a new fulfilment status
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	o.Status = status
	return nil
}
