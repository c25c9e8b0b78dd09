package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coldchain/internal/models"
	"coldchain/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.ShipmentEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventTelemetry, Description: "Telemetry updated"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: models.EventReroute, Description: "Reroute to Center A"},
	}
	logs := &mockEventLog{resp: events}
	r := newTestRouter(&service.Service{EventLog: logs})

	// Invalid 'from' → 400
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/?from=notatime", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	// Inverted range → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/logs/?from=2026-03-02T00:00:00Z&to=2026-03-01T00:00:00Z", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 inverted range, got %d", w.Code)
	}

	// Valid range; lowercase type is normalized before the service call
	w = httptest.NewRecorder()
	q := "/api/v1/logs/?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=reroute"
	req = httptest.NewRequest(http.MethodGet, q, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                    `json:"count"`
		Events []models.ShipmentEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != models.EventReroute {
		t.Fatalf("expected normalized type REROUTE, got %q", logs.lastType)
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/?to=2026-03-01", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}

	wantDay := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !logs.lastTo.After(wantDay.Add(23 * time.Hour)) {
		t.Fatalf("expected end-of-day 'to', got %v", logs.lastTo)
	}
	if !logs.lastTo.Before(wantDay.Add(24 * time.Hour)) {
		t.Fatalf("'to' leaked into the next day: %v", logs.lastTo)
	}
}
