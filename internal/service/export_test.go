package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"coldchain/internal/models"
)

type fakeMonitoring struct {
	st       models.ShipmentState
	pred     models.PredictionResult
	stateErr error
}

func (f *fakeMonitoring) GetState(ctx context.Context) (models.ShipmentState, error) {
	return f.st, f.stateErr
}

func (f *fakeMonitoring) GetPrediction(ctx context.Context) (models.PredictionResult, error) {
	return f.pred, nil
}

func (f *fakeMonitoring) RescuePoints(ctx context.Context) ([]models.RescuePoint, error) {
	return nil, nil
}

func exportFixtures() (*fakeSnapshotRepo, *fakeMonitoring) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := &fakeSnapshotRepo{recs: []models.SnapshotRecord{
		{OccurredAt: at, Temperature: 4, Humidity: 60, Vibration: 0.2, Distance: 200, DaysLeft: 7, Status: models.StatusNormal, Destination: "Mumbai Premium Supermarket"},
		{OccurredAt: at.Add(time.Minute), Temperature: 42, Humidity: 90, Vibration: 1.8, Distance: 195, DaysLeft: 0.26, Status: models.StatusCritical, ChaosMode: true, Destination: "Nashik Processing Unit"},
	}}
	mon := &fakeMonitoring{
		st: models.ShipmentState{
			ID:          1,
			Telemetry:   models.TelemetryReading{Temperature: 42, Humidity: 90, Vibration: 1.8, Distance: 195},
			Product:     models.ProductProfile{ProductType: models.ProductTomato, CargoValue: 1_000_000, ShelfLifeFactor: 1},
			ChaosMode:   true,
			Destination: "Nashik Processing Unit",
		},
		pred: models.PredictionResult{DaysLeft: 0.26, Status: models.StatusCritical},
	}
	return snap, mon
}

func TestExportTelemetry_JSON(t *testing.T) {
	snap, mon := exportFixtures()
	svc := NewExportService(snap, mon, testCatalog())

	out, err := svc.Telemetry(context.Background(), FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		Count   int                     `json:"count"`
		Records []models.SnapshotRecord `json:"records"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Count != 2 || len(payload.Records) != 2 {
		t.Fatalf("expected 2 records, got %+v", payload)
	}
	if payload.Records[1].Status != models.StatusCritical {
		t.Fatalf("unexpected record: %+v", payload.Records[1])
	}
}

func TestExportTelemetry_CSV(t *testing.T) {
	snap, mon := exportFixtures()
	svc := NewExportService(snap, mon, testCatalog())

	out, err := svc.Telemetry(context.Background(), FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "occurred_at" || rows[0][5] != "days_left" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[2][6] != models.StatusCritical || rows[2][7] != "true" {
		t.Fatalf("unexpected data row: %v", rows[2])
	}
}

func TestExportReport_JSONIncludesSalvageProfile(t *testing.T) {
	snap, mon := exportFixtures()
	svc := NewExportService(snap, mon, testCatalog())

	out, err := svc.Report(context.Background(), FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"generated_at", "telemetry", "prediction", "product", "chaos_mode", "destination", "rescue_points", "history"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("report missing %q", key)
		}
	}

	var points []models.RescuePoint
	if err := json.Unmarshal(payload["rescue_points"], &points); err != nil {
		t.Fatalf("rescue_points: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected the tomato salvage profile, got %+v", points)
	}
}

func TestExportReport_CSVSections(t *testing.T) {
	snap, mon := exportFixtures()
	svc := NewExportService(snap, mon, testCatalog())

	out, err := svc.Report(context.Background(), FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)

	for _, fragment := range []string{"product_type,Tomato", "chaos_mode,true", "rescue_point,rescue_type", "Nashik Processing Unit", "occurred_at,temperature"} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("report CSV missing %q:\n%s", fragment, text)
		}
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	snap, mon := exportFixtures()
	svc := NewExportService(snap, mon, testCatalog())

	if _, err := svc.Telemetry(context.Background(), "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
	if _, err := svc.Report(context.Background(), "yaml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestExport_PropagatesHistoryErrors(t *testing.T) {
	snap, mon := exportFixtures()
	snap.listErr = errors.New("db down")
	svc := NewExportService(snap, mon, testCatalog())

	if _, err := svc.Telemetry(context.Background(), FormatJSON); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, err := svc.Report(context.Background(), FormatCSV); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
