package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tazamart/backend/internal/application/store"
	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
)

// CartHandler handles shopping cart endpoints
type CartHandler struct {
	BaseHandler
	store *store.Store
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(st *store.Store) *CartHandler {
	return &CartHandler{store: st}
}

// AddItemRequest adds a quantity of a product to the cart
type AddItemRequest struct {
	ProductID int64   `json:"product_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
}

// UpdateItemRequest sets a cart line's quantity exactly. Zero or a
// negative value removes the line.
type UpdateItemRequest struct {
	Quantity float64 `json:"quantity"`
}

// CartResponse is the cart view payload
type CartResponse struct {
	Items []catalog.CartItem `json:"items"`
	Count float64            `json:"count"`
	Total decimal.Decimal    `json:"total"`
}

// View returns the current cart contents
func (h *CartHandler) View(c *gin.Context) {
	h.respondWithCart(c)
}

// AddItem merges a quantity into the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, ok := h.store.State().Product(req.ProductID)
	if !ok {
		h.NotFound(c, "Product not found")
		return
	}

	if err := h.store.Dispatch(store.AddToCart{Product: product, Quantity: req.Quantity}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondWithCart(c)
}

// UpdateItem sets a cart line's quantity
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if _, ok := h.store.State().CartItem(id); !ok {
		h.NotFound(c, "Product not in cart")
		return
	}

	if err := h.store.Dispatch(store.UpdateQuantity{ProductID: id, Quantity: req.Quantity}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondWithCart(c)
}

// RemoveItem drops a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.store.Dispatch(store.RemoveFromCart{ProductID: id}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondWithCart(c)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.store.Dispatch(store.ClearCart{}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *CartHandler) respondWithCart(c *gin.Context) {
	state := h.store.State()
	items := state.Cart
	if items == nil {
		items = []catalog.CartItem{}
	}
	h.Success(c, CartResponse{
		Items: items,
		Count: state.CartCount(),
		Total: order.Total(items),
	})
}
