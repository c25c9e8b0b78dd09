package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coldchain/internal/service"
)

func TestExportHandlers_FormatsAndHeaders(t *testing.T) {
	exp := &mockExport{
		telemetryResp: []byte(`{"count":0,"records":[]}`),
		reportResp:    []byte("field,value\n"),
	}
	r := newTestRouter(&service.Service{Export: exp})

	// Default format is json
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/telemetry", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export status=%d, body=%s", w.Code, w.Body.String())
	}
	if exp.lastFormat != service.FormatJSON {
		t.Fatalf("expected default json format, got %q", exp.lastFormat)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, contentTypeJSON) {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "telemetry_") {
		t.Fatalf("missing attachment header: %q", cd)
	}

	// CSV report
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/export/report?format=csv", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("report status=%d", w.Code)
	}
	if exp.lastFormat != service.FormatCSV {
		t.Fatalf("expected csv format, got %q", exp.lastFormat)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, contentTypeCSV) {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "shipment_report_") || !strings.Contains(cd, ".csv") {
		t.Fatalf("missing attachment header: %q", cd)
	}
}

func TestExportHandlers_UnknownFormat(t *testing.T) {
	exp := &mockExport{telemetryErr: service.ErrUnknownFormat}
	r := newTestRouter(&service.Service{Export: exp})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/telemetry?format=xml", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on unknown format, got %d", w.Code)
	}
}
