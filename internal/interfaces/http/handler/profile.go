package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tazamart/backend/internal/application/store"
	"github.com/tazamart/backend/internal/domain/order"
)

// ProfileHandler handles user profile, favorites and preference endpoints
type ProfileHandler struct {
	BaseHandler
	store *store.Store
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(st *store.Store) *ProfileHandler {
	return &ProfileHandler{store: st}
}

// UpdateProfileRequest replaces the stored delivery profile
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// PreferencesRequest sets UI preferences. Empty fields are left as-is.
type PreferencesRequest struct {
	Language string `json:"language" binding:"omitempty,oneof=en ur"`
	Theme    string `json:"theme" binding:"omitempty,oneof=light dark"`
}

// PreferencesResponse is the preferences payload
type PreferencesResponse struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// GetProfile returns the stored delivery profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	h.Success(c, h.store.State().Profile)
}

// UpdateProfile replaces the stored delivery profile. Partial profiles
// are allowed; validation happens at checkout.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile := order.Customer{Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := h.store.Dispatch(store.SetProfile{Profile: profile}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// ListFavorites returns the favorited product ids
func (h *ProfileHandler) ListFavorites(c *gin.Context) {
	ids := h.store.State().FavoriteIDs()
	if ids == nil {
		ids = []int64{}
	}
	h.Success(c, ids)
}

// ToggleFavorite flips a product's membership in the favorites set
func (h *ProfileHandler) ToggleFavorite(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if _, ok := h.store.State().Product(id); !ok {
		h.NotFound(c, "Product not found")
		return
	}

	if err := h.store.Dispatch(store.ToggleFavorite{ProductID: id}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.store.State().FavoriteIDs())
}

// GetPreferences returns the UI preferences
func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	state := h.store.State()
	h.Success(c, PreferencesResponse{Language: state.Language, Theme: state.Theme})
}

// UpdatePreferences sets UI preferences
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if req.Language != "" {
		if err := h.store.Dispatch(store.SetLanguage{Language: req.Language}); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	if req.Theme != "" {
		if err := h.store.Dispatch(store.SetTheme{Theme: req.Theme}); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	state := h.store.State()
	h.Success(c, PreferencesResponse{Language: state.Language, Theme: state.Theme})
}
