package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coldchain/internal/service"
)

// Request DTO for a route evaluation.
type rerouteRequest struct {
	RoadCondition      string  `json:"road_condition" binding:"required"` // Smooth | Traffic | Blocked
	CapPctCenterA      float64 `json:"cap_pct_center_a"`
	CapPctCenterB      float64 `json:"cap_pct_center_b"`
	TravelTimeOriginal float64 `json:"travel_time_original"`
	TravelTimeCenterA  float64 `json:"travel_time_center_a"`
	TravelTimeCenterB  float64 `json:"travel_time_center_b"`
}

// RerouteRequest is an exported model for Swagger docs of the reroute payload.
type RerouteRequest struct {
	// Road condition for the whole request. Allowed: Smooth, Traffic, Blocked
	RoadCondition string `json:"road_condition" example:"Traffic"`
	// Remaining capacity of Center A, percent
	CapPctCenterA float64 `json:"cap_pct_center_a" example:"70"`
	// Remaining capacity of Center B, percent
	CapPctCenterB float64 `json:"cap_pct_center_b" example:"65"`
	// Travel time to the original destination, hours
	TravelTimeOriginal float64 `json:"travel_time_original" example:"12"`
	// Travel time to Center A, hours
	TravelTimeCenterA float64 `json:"travel_time_center_a" example:"8"`
	// Travel time to Center B, hours
	TravelTimeCenterB float64 `json:"travel_time_center_b" example:"10"`
}

// @Summary      Evaluate candidate routes
// @Description  Ranks the original destination and both distribution centers by survival margin; when no candidate is feasible the emergency rescue selector runs and its result is embedded
// @Tags         routing
// @Accept       json
// @Produce      json
// @Param        body  body   RerouteRequest  true  "Route conditions"
// @Success      200   {object}  models.RerouteResult
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/reroute [post]
func (h *Handler) requestReroute(c *gin.Context) {
	var req rerouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	result, err := h.services.Shipment.RequestReroute(ctx, service.RerouteParams{
		RoadCondition:      req.RoadCondition,
		CapPctCenterA:      req.CapPctCenterA,
		CapPctCenterB:      req.CapPctCenterB,
		TravelTimeOriginal: req.TravelTimeOriginal,
		TravelTimeCenterA:  req.TravelTimeCenterA,
		TravelTimeCenterB:  req.TravelTimeCenterB,
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("reroute_failed", "err", err, "road_condition", req.RoadCondition)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
