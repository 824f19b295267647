package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tazamart/backend/internal/application/checkout"
	"github.com/tazamart/backend/internal/application/store"
	"github.com/tazamart/backend/internal/domain/order"
)

// CheckoutHandler handles order placement and the customer order history
type CheckoutHandler struct {
	BaseHandler
	store    *store.Store
	checkout *checkout.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(st *store.Store, svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{store: st, checkout: svc}
}

// CheckoutRequest carries the checkout form fields. The payment proof is
// a base64 data URL of the uploaded screenshot.
type CheckoutRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PaymentProof  string `json:"paymentProof" binding:"required"`
}

// PlaceOrder validates the form and places the order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	placed, err := h.checkout.PlaceOrder(c.Request.Context(), checkout.Input{
		Customer: order.Customer{
			Name:    req.Name,
			Address: req.Address,
			Phone:   req.Phone,
		},
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
		PaymentProof:  req.PaymentProof,
	})
	if err != nil {
		// A storage failure still leaves the order in memory; the error
		// is reported so the caller can decide whether to retry.
		h.HandleError(c, err)
		return
	}

	h.Created(c, placed)
}

// ListOrders returns the customer's order history, newest last
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	orders := h.store.State().Orders()
	if orders == nil {
		orders = []order.Order{}
	}
	h.Success(c, orders)
}

// GetOrder returns a single order from the history
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	o, ok := h.store.State().Order(c.Param("id"))
	if !ok {
		h.NotFound(c, "Order not found")
		return
	}
	h.Success(c, o)
}
