package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"coldchain/internal/catalog"
	"coldchain/internal/models"
	"coldchain/internal/repository"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var ErrUnknownFormat = errors.New("unknown export format: use csv or json")

// ExportService renders the accumulated telemetry history and the full
// shipment report for download.
type ExportService struct {
	snapRepo   repository.SnapshotRepo
	monitoring Monitoring
	catalog    *catalog.Catalog
}

func NewExportService(snapRepo repository.SnapshotRepo, monitoring Monitoring, cat *catalog.Catalog) *ExportService {
	return &ExportService{snapRepo: snapRepo, monitoring: monitoring, catalog: cat}
}

var telemetryHeader = []string{
	"occurred_at", "temperature", "humidity", "vibration", "distance",
	"days_left", "status", "chaos_mode", "destination",
}

// Telemetry renders the snapshot history as CSV or JSON.
func (s *ExportService) Telemetry(ctx context.Context, format string) ([]byte, error) {
	recs, err := s.snapRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(map[string]any{
			"count":   len(recs),
			"records": recs,
		}, "", "  ")
	case FormatCSV:
		return telemetryCSV(recs)
	default:
		return nil, ErrUnknownFormat
	}
}

// Report renders the full shipment report: current state, prediction,
// product, salvage profile, and the telemetry history.
func (s *ExportService) Report(ctx context.Context, format string) ([]byte, error) {
	st, err := s.monitoring.GetState(ctx)
	if err != nil {
		return nil, err
	}
	pred, err := s.monitoring.GetPrediction(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := s.snapRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rescuePoints := s.catalog.RescuePointsFor(st.Product.ProductType)

	switch format {
	case FormatJSON:
		return json.MarshalIndent(map[string]any{
			"generated_at":  time.Now().UTC(),
			"telemetry":     st.Telemetry,
			"prediction":    pred,
			"product":       st.Product,
			"chaos_mode":    st.ChaosMode,
			"destination":   st.Destination,
			"rescue_points": rescuePoints,
			"history_count": len(recs),
			"history":       recs,
		}, "", "  ")
	case FormatCSV:
		return reportCSV(st, pred, rescuePoints, recs)
	default:
		return nil, ErrUnknownFormat
	}
}

func telemetryCSV(recs []models.SnapshotRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(telemetryHeader); err != nil {
		return nil, err
	}
	for _, r := range recs {
		if err := w.Write(snapshotRow(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func reportCSV(st models.ShipmentState, pred models.PredictionResult, points []models.RescuePoint, recs []models.SnapshotRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	summary := [][]string{
		{"field", "value"},
		{"generated_at", time.Now().UTC().Format(time.RFC3339)},
		{"product_type", st.Product.ProductType},
		{"cargo_value", formatFloat(st.Product.CargoValue)},
		{"destination", st.Destination},
		{"chaos_mode", strconv.FormatBool(st.ChaosMode)},
		{"days_left", formatFloat(pred.DaysLeft)},
		{"status", pred.Status},
	}
	for _, row := range summary {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	// Blank separator rows keep the sections readable in spreadsheet tools.
	_ = w.Write([]string{})
	if err := w.Write([]string{"rescue_point", "rescue_type", "distance", "travel_time", "rescue_value_pct"}); err != nil {
		return nil, err
	}
	for _, p := range points {
		if err := w.Write([]string{
			p.Name, p.RescueType,
			formatFloat(p.DistanceKm), formatFloat(p.TravelTimeHours), formatFloat(p.RescueValuePct),
		}); err != nil {
			return nil, err
		}
	}

	_ = w.Write([]string{})
	if err := w.Write(telemetryHeader); err != nil {
		return nil, err
	}
	for _, r := range recs {
		if err := w.Write(snapshotRow(r)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func snapshotRow(r models.SnapshotRecord) []string {
	return []string{
		r.OccurredAt.Format(time.RFC3339),
		formatFloat(r.Temperature),
		formatFloat(r.Humidity),
		formatFloat(r.Vibration),
		formatFloat(r.Distance),
		formatFloat(r.DaysLeft),
		r.Status,
		strconv.FormatBool(r.ChaosMode),
		r.Destination,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
