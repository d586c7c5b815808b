package handler

import (
	"context"
	"errors"
	"net/http"

	"geofence-api/internal/models"
	"geofence-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// LocationHandler handles vehicle location updates and history lookups
type LocationHandler struct {
	service LocationService
}

// Service interface for dependency injection
type LocationService interface {
	UpdateLocation(context.Context, models.LocationUpdate) (models.LocationReport, error)
	LatestFix(context.Context, string) (*models.VehicleFix, error)
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc LocationService) *LocationHandler {
	return &LocationHandler{service: svc}
}

// UpdateLocation handles POST /update-location requests
//
//	@Summary		Report a vehicle position
//	@Description	Decodes a GGA sentence and returns the client zone the vehicle is in or nearest to.
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			update	body		models.LocationUpdate	true	"vehicle id and raw sentence"
//	@Success		200		{object}	models.LocationReport
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/update-location [post]
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	var req models.LocationUpdate
	if err := c.ShouldBindJSON(&req); err != nil || req.VehicleID == "" || req.GPSData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required data"})
		return
	}

	report, err := h.service.UpdateLocation(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingData):
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required data"})
		case errors.Is(err, service.ErrInvalidGPSData):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid GPS data or parsing failed"})
		default:
			log.Error().Err(err).Str("vehicle_id", req.VehicleID).Msg("update location failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// LatestLocation handles GET /vehicles/:vehicle_id/location requests
//
//	@Summary	Last recorded fix of a vehicle
//	@Tags		locations
//	@Produce	json
//	@Param		vehicle_id	path		string	true	"vehicle id"
//	@Success	200			{object}	models.VehicleFix
//	@Failure	404			{object}	map[string]string
//	@Failure	500			{object}	map[string]string
//	@Router		/vehicles/{vehicle_id}/location [get]
func (h *LocationHandler) LatestLocation(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	fix, err := h.service.LatestFix(c.Request.Context(), vehicleID)
	if err != nil {
		log.Error().Err(err).Str("vehicle_id", vehicleID).Msg("latest location failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if fix == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no location recorded for vehicle"})
		return
	}

	c.JSON(http.StatusOK, fix)
}
