package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	adminapp "github.com/tazamart/backend/internal/application/admin"
	"github.com/tazamart/backend/internal/application/sync"
	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
	"github.com/tazamart/backend/internal/interfaces/http/dto"
)

// AdminHandler handles the management console endpoints
type AdminHandler struct {
	BaseHandler
	admin *adminapp.Service
	sync  *sync.Service
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin *adminapp.Service, syncer *sync.Service) *AdminHandler {
	return &AdminHandler{admin: admin, sync: syncer}
}

// LoginRequest carries the shared console password
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token string `json:"token"`
}

// ProductRequest creates or updates a catalog product. The image is a
// base64 data URL.
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"gt=0"`
	Image       string          `json:"image"`
	Category    string          `json:"category" binding:"required"`
	Unit        string          `json:"unit" binding:"required"`
	Description string          `json:"description"`
}

// StatusRequest moves an order to a new fulfilment status
type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Packed Delivered"`
}

// Login checks the console password and issues a session token
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	token, err := h.admin.Login(req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, LoginResponse{Token: token})
}

// Logout discards the session token
func (h *AdminHandler) Logout(c *gin.Context) {
	h.admin.Logout(c.GetString("admin_token"))
	h.NoContent(c)
}

// CreateProduct adds a product to the catalog
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	added, err := h.admin.AddProduct(c.Request.Context(), productFromRequest(0, req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, added)
}

// UpdateProduct replaces an existing catalog product
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.admin.UpdateProduct(c.Request.Context(), productFromRequest(id, req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// DeleteProduct removes a catalog product
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.admin.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListOrders returns every fetched order for fulfilment
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders := h.admin.ListOrders()
	if orders == nil {
		orders = []order.Order{}
	}
	h.Success(c, orders)
}

// UpdateOrderStatus moves an order through the fulfilment pipeline
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.admin.UpdateOrderStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Refresh triggers an immediate remote fetch
func (h *AdminHandler) Refresh(c *gin.Context) {
	if h.sync == nil || !h.sync.Enabled() {
		h.Error(c, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState, "Remote sync is not configured")
		return
	}
	if err := h.sync.Refresh(c.Request.Context()); err != nil {
		h.Error(c, http.StatusBadGateway, dto.ErrCodeInternal, "Remote fetch failed")
		return
	}
	h.NoContent(c)
}

func productFromRequest(id int64, req ProductRequest) catalog.Product {
	return catalog.Product{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Category:    catalog.Category(req.Category),
		Unit:        catalog.Unit(req.Unit),
		Description: req.Description,
	}
}
