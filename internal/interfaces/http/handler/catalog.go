package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tazamart/backend/internal/application/store"
)

// CatalogHandler handles storefront catalog endpoints
type CatalogHandler struct {
	BaseHandler
	store *store.Store
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(st *store.Store) *CatalogHandler {
	return &CatalogHandler{store: st}
}

// CatalogResponse is the product listing payload
type CatalogResponse struct {
	Products  interface{} `json:"products"`
	IsLoading bool        `json:"isLoading"`
}

// List returns the full product catalog plus the loading flag for the
// initial remote fetch
func (h *CatalogHandler) List(c *gin.Context) {
	state := h.store.State()
	h.Success(c, CatalogResponse{
		Products:  state.Products,
		IsLoading: state.IsLoading,
	})
}

// Get returns a single product by id
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, ok := h.store.State().Product(id)
	if !ok {
		h.NotFound(c, "Product not found")
		return
	}
	h.Success(c, product)
}
