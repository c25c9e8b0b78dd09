package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coldchain/internal/models"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errGetState        = "failed to load shipment state"
	errGetPrediction   = "failed to compute prediction"
	errToggleChaos     = "failed to toggle chaos mode"
	errGetRescuePoints = "failed to load rescue points"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for a full sensor reading.
type telemetryRequest struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Vibration   float64 `json:"vibration"`
	Distance    float64 `json:"distance"`
}

// SetTelemetryRequest is an exported model for Swagger docs of the telemetry payload.
type SetTelemetryRequest struct {
	// Cargo-hold temperature in Celsius
	Temperature float64 `json:"temperature" example:"25"`
	// Relative humidity percentage [0,100]
	Humidity float64 `json:"humidity" example:"80"`
	// Vibration in G
	Vibration float64 `json:"vibration" example:"0.8"`
	// Remaining distance to destination in km
	Distance float64 `json:"distance" example:"150"`
}

// Request DTO for switching the monitored product.
type productRequest struct {
	ProductType string  `json:"product_type" binding:"required"`
	CargoValue  float64 `json:"cargo_value"`
}

// SetProductRequest is an exported model for Swagger docs of the product payload.
type SetProductRequest struct {
	// Product type. Allowed: Tomato, Potato, Wheat, Apple, Banana
	ProductType string `json:"product_type" example:"Tomato"`
	// Total cargo value in currency units
	CargoValue float64 `json:"cargo_value" example:"1000000"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current shipment snapshot
// @Description  Telemetry, product, prediction, chaos flag and destination in one payload
// @Tags         shipment
// @Produce      json
// @Success      200  {object}  models.ShipmentState
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/telemetry [get]
func (h *Handler) getTelemetry(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Submit a sensor reading
// @Description  Replaces the current telemetry and recomputes the spoilage prediction
// @Tags         shipment
// @Accept       json
// @Produce      json
// @Param        body  body   SetTelemetryRequest  true  "Sensor reading"
// @Success      200   {object}  models.ShipmentState
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/telemetry [post]
func (h *Handler) setTelemetry(c *gin.Context) {
	var req telemetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	st, err := h.services.Shipment.SetTelemetry(ctx, models.TelemetryReading{
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		Vibration:   req.Vibration,
		Distance:    req.Distance,
	})
	if err != nil {
		// Validation failures come back as typed errors from the service.
		if h.log != nil {
			h.log.Errorw("set_telemetry_failed", "err", err, "temperature", req.Temperature)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Spoilage prediction
// @Tags         shipment
// @Produce      json
// @Success      200  {object}  models.PredictionResult
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/prediction [get]
func (h *Handler) getPrediction(c *gin.Context) {
	ctx := c.Request.Context()
	pred, err := h.services.Monitoring.GetPrediction(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetPrediction, "get_prediction_failed", err)
		return
	}
	c.JSON(http.StatusOK, pred)
}

// @Summary      Toggle chaos mode
// @Description  Simulates a cooling failure; under a critical prediction with no reachable route the emergency rescue is embedded in the response
// @Tags         chaos
// @Produce      json
// @Success      200  {object}  service.ChaosResult
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/chaos [post]
func (h *Handler) toggleChaos(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.services.Shipment.ToggleChaos(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errToggleChaos, "toggle_chaos_failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Chaos mode status
// @Tags         chaos
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "chaos_mode, days_left, status"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/chaos/status [get]
func (h *Handler) chaosStatus(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chaos_mode": st.ChaosMode,
		"days_left":  st.DaysLeft,
		"status":     st.Status,
	})
}

// @Summary      Active product profile
// @Tags         product
// @Produce      json
// @Success      200  {object}  models.ProductProfile
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/product [get]
func (h *Handler) getProduct(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st.Product)
}

// @Summary      Switch the monitored product
// @Description  Changes the product profile and recomputes the prediction with its shelf-life sensitivity
// @Tags         product
// @Accept       json
// @Produce      json
// @Param        body  body   SetProductRequest  true  "Product payload"
// @Success      200   {object}  models.ShipmentState
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/product [post]
func (h *Handler) setProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	st, err := h.services.Shipment.SetProduct(ctx, models.ProductProfile{
		ProductType: req.ProductType,
		CargoValue:  req.CargoValue,
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("set_product_failed", "err", err, "product_type", req.ProductType)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Salvage profile for the active product
// @Tags         product
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, rescue_points"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/rescue-points [get]
func (h *Handler) getRescuePoints(c *gin.Context) {
	ctx := c.Request.Context()
	points, err := h.services.Monitoring.RescuePoints(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetRescuePoints, "get_rescue_points_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":         len(points),
		"rescue_points": points,
	})
}
