package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ltl-driver-management/backend/internal/models"
	"github.com/ltl-driver-management/backend/internal/service"
	"github.com/ltl-driver-management/backend/internal/tms"
)

type stubStore struct {
	tripByLoadsheet map[int64]int64
	lateReasons     map[int64]models.LateDepartureReason
}

func (s *stubStore) GetTripForLoadsheet(ctx context.Context, loadsheetID int64) (models.Trip, error) {
	tripID, ok := s.tripByLoadsheet[loadsheetID]
	if !ok {
		return models.Trip{}, fmt.Errorf("loadsheet %d not found", loadsheetID)
	}
	return models.Trip{ID: tripID}, nil
}

func (s *stubStore) GetTerminalByCode(ctx context.Context, code string) (models.Terminal, error) {
	return models.Terminal{ID: 1, Code: code}, nil
}

func (s *stubStore) UpdateScheduledDeparture(ctx context.Context, tripID int64, departDate, departTime string) error {
	return nil
}

func (s *stubStore) UpdateActualDeparture(ctx context.Context, tripID int64, departDate, departTime string) error {
	return nil
}

func (s *stubStore) UpsertLateDepartureReason(ctx context.Context, rec models.LateDepartureReason) error {
	if s.lateReasons == nil {
		s.lateReasons = map[int64]models.LateDepartureReason{}
	}
	s.lateReasons[rec.TripID] = rec
	return nil
}

func newTestRouter(store service.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		Dispo: &service.DispositionService{
			Store:   store,
			Gateway: tms.MockGateway{},
			Logger:  zerolog.Nop(),
		},
		Validator: validator.New(),
		Logger:    zerolog.Nop(),
	}
	r := gin.New()
	r.POST("/api/trips/:id/disposition", h.DisposeTrip)
	r.POST("/api/loadsheets/disposition", h.DisposeLoadsheets)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDisposeTripInvalidPayload(t *testing.T) {
	r := newTestRouter(&stubStore{})
	req, _ := http.NewRequest(http.MethodPost, "/api/trips/42/disposition", bytes.NewReader([]byte("{broken")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDisposeTripMissingTerminal(t *testing.T) {
	r := newTestRouter(&stubStore{})
	w := postJSON(t, r, "/api/trips/42/disposition", gin.H{
		"late_reason":                "DOCK_ISSUE",
		"will_cause_service_failure": true,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %s", resp.Error.Code)
	}
}

func TestDisposeTripRecordsLateReason(t *testing.T) {
	store := &stubStore{}
	r := newTestRouter(store)
	w := postJSON(t, r, "/api/trips/42/disposition", gin.H{
		"late_reason":                "DOCK_ISSUE",
		"will_cause_service_failure": true,
		"accountable_terminal_id":    7,
		"scheduled_depart_time":      "08:00",
		"actual_depart_time":         "08:47",
		"new_scheduled_depart_date":  "2026-03-02",
		"creator":                    "dispatcher1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.DispositionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.LateReasonCreated || !result.DelayNotesAdded {
		t.Fatalf("unexpected result: %+v", result)
	}
	rec, ok := store.lateReasons[42]
	if !ok {
		t.Fatal("expected record persisted for trip 42")
	}
	if rec.MinutesLate == nil || *rec.MinutesLate != 47 {
		t.Fatalf("expected 47 minutes late, got %+v", rec.MinutesLate)
	}
}

func TestDisposeTripScheduleCorrection(t *testing.T) {
	r := newTestRouter(&stubStore{})
	w := postJSON(t, r, "/api/trips/42/disposition", gin.H{
		"intent":         "SCHEDULE_CORRECTION",
		"corrected_date": "2026-03-02",
		"corrected_time": "10:30",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result models.DispositionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.ScheduledDepartureUpdated || result.LateReasonCreated {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestDisposeLoadsheetsRequiresIDs(t *testing.T) {
	r := newTestRouter(&stubStore{})
	w := postJSON(t, r, "/api/loadsheets/disposition", gin.H{
		"loadsheet_ids":              []int64{},
		"late_reason":                "WEATHER",
		"will_cause_service_failure": false,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDisposeLoadsheetsBulk(t *testing.T) {
	store := &stubStore{tripByLoadsheet: map[int64]int64{101: 1001, 102: 1002}}
	r := newTestRouter(store)
	w := postJSON(t, r, "/api/loadsheets/disposition", gin.H{
		"loadsheet_ids":              []int64{101, 102},
		"late_reason":                "LATE_INBOUND",
		"will_cause_service_failure": false,
		"notes":                      "inbound linehaul arrived 40 min late",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report models.BulkDispositionReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !report.Success || report.Processed != 2 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Results) != 2 || report.Results[0].LoadsheetID != 101 {
		t.Fatalf("expected ordered results, got %+v", report.Results)
	}
	if len(store.lateReasons) != 2 {
		t.Fatalf("expected 2 records, got %d", len(store.lateReasons))
	}
}
