package handler

import (
	"net/http"

	"geofence-api/internal/models"

	"github.com/gin-gonic/gin"
)

// ClientHandler exposes the zone registry
type ClientHandler struct {
	zones ZoneLister
}

// ZoneLister is satisfied by the zone registry
type ZoneLister interface {
	Zones() []models.Zone
}

// NewClientHandler creates a new client handler
func NewClientHandler(zones ZoneLister) *ClientHandler {
	return &ClientHandler{zones: zones}
}

// Clients handles GET /clients requests
//
//	@Summary	List registered clients
//	@Tags		clients
//	@Produce	json
//	@Success	200	{array}	models.Zone
//	@Router		/clients [get]
func (h *ClientHandler) Clients(c *gin.Context) {
	c.JSON(http.StatusOK, h.zones.Zones())
}
