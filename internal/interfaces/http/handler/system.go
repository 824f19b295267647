package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tazamart/backend/internal/application/sync"
)

// SystemHandler handles health and info endpoints
type SystemHandler struct {
	BaseHandler
	version string
	sync    *sync.Service
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string, syncer *sync.Service) *SystemHandler {
	return &SystemHandler{version: version, sync: syncer}
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	SyncEnabled bool   `json:"sync_enabled"`
}

// Health reports liveness and whether remote sync is configured
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status:      "ok",
		Version:     h.version,
		SyncEnabled: h.sync != nil && h.sync.Enabled(),
	})
}
