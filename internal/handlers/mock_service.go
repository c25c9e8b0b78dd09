package handlers

import (
	"context"
	"time"

	"coldchain/internal/models"
	"coldchain/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockShipment struct {
	setTelemetryResp models.ShipmentState
	setTelemetryErr  error
	chaosResp        service.ChaosResult
	chaosErr         error
	rerouteResp      models.RerouteResult
	rerouteErr       error
	setProductResp   models.ShipmentState
	setProductErr    error

	lastReading models.TelemetryReading
	lastReroute service.RerouteParams
	lastProduct models.ProductProfile

	setTelemetryCalls int
	chaosCalls        int
	rerouteCalls      int
	setProductCalls   int
}

func (m *mockShipment) SetTelemetry(ctx context.Context, r models.TelemetryReading) (models.ShipmentState, error) {
	m.setTelemetryCalls++
	m.lastReading = r
	return m.setTelemetryResp, m.setTelemetryErr
}

func (m *mockShipment) ToggleChaos(ctx context.Context) (service.ChaosResult, error) {
	m.chaosCalls++
	return m.chaosResp, m.chaosErr
}

func (m *mockShipment) RequestReroute(ctx context.Context, p service.RerouteParams) (models.RerouteResult, error) {
	m.rerouteCalls++
	m.lastReroute = p
	return m.rerouteResp, m.rerouteErr
}

func (m *mockShipment) SetProduct(ctx context.Context, p models.ProductProfile) (models.ShipmentState, error) {
	m.setProductCalls++
	m.lastProduct = p
	return m.setProductResp, m.setProductErr
}

type mockMonitoring struct {
	state     models.ShipmentState
	stateErr  error
	pred      models.PredictionResult
	predErr   error
	points    []models.RescuePoint
	pointsErr error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.ShipmentState, error) {
	return m.state, m.stateErr
}

func (m *mockMonitoring) GetPrediction(ctx context.Context) (models.PredictionResult, error) {
	return m.pred, m.predErr
}

func (m *mockMonitoring) RescuePoints(ctx context.Context) ([]models.RescuePoint, error) {
	return m.points, m.pointsErr
}

type mockEventLog struct {
	resp     []models.ShipmentEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ShipmentEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockExport struct {
	telemetryResp []byte
	telemetryErr  error
	reportResp    []byte
	reportErr     error
	lastFormat    string
}

func (m *mockExport) Telemetry(ctx context.Context, format string) ([]byte, error) {
	m.lastFormat = format
	return m.telemetryResp, m.telemetryErr
}

func (m *mockExport) Report(ctx context.Context, format string) ([]byte, error) {
	m.lastFormat = format
	return m.reportResp, m.reportErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	if s.Stream == nil {
		s.Stream = service.NewHub()
	}
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
