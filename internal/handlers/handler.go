package handlers

import (
	"coldchain/internal/logger"
	"coldchain/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// Live telemetry push — same port, HTTP upgrade.
	router.GET("/ws/telemetry", h.wsTelemetry)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerShipmentRoutes(api)
		h.registerLogRoutes(api)
		h.registerExportRoutes(api)
	}
}

func (h *Handler) registerShipmentRoutes(api *gin.RouterGroup) {
	api.GET("/telemetry", h.getTelemetry)
	// Body example: {"temperature":25,"humidity":80,"vibration":0.8,"distance":150}
	api.POST("/telemetry", h.setTelemetry)
	api.GET("/prediction", h.getPrediction)

	api.POST("/chaos", h.toggleChaos)
	api.GET("/chaos/status", h.chaosStatus)

	// Body example: {"road_condition":"Traffic","cap_pct_center_a":70,"cap_pct_center_b":65,
	//   "travel_time_original":12,"travel_time_center_a":8,"travel_time_center_b":10}
	api.POST("/reroute", h.requestReroute)

	api.GET("/product", h.getProduct)
	api.POST("/product", h.setProduct)
	api.GET("/rescue-points", h.getRescuePoints)
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}

func (h *Handler) registerExportRoutes(api *gin.RouterGroup) {
	export := api.Group("/export")
	{
		export.GET("/telemetry", h.exportTelemetry)
		export.GET("/report", h.exportReport)
	}
}
