package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arkodas/banglamart-backend/internal/delivery"
	pkgerrors "github.com/arkodas/banglamart-backend/pkg/errors"
)

type stubDeliveryService struct {
	estimate    *delivery.EstimateDTO
	estimateErr error
	lastInput   delivery.EstimateInput
	saved       *delivery.SavedLocationDTO
	savedErr    error
	clearErr    error
	cleared     []string
}

func (s *stubDeliveryService) EstimateByPincode(ctx context.Context, input delivery.EstimateInput) (*delivery.EstimateDTO, error) {
	s.lastInput = input
	if s.estimateErr != nil {
		return nil, s.estimateErr
	}
	return s.estimate, nil
}

func (s *stubDeliveryService) PreviewPlace(ctx context.Context, input delivery.PreviewInput) (*delivery.EstimateDTO, error) {
	if s.estimateErr != nil {
		return nil, s.estimateErr
	}
	return s.estimate, nil
}

func (s *stubDeliveryService) SavedLocation(ctx context.Context, clientID string) (*delivery.SavedLocationDTO, error) {
	if s.savedErr != nil {
		return nil, s.savedErr
	}
	return s.saved, nil
}

func (s *stubDeliveryService) ClearSavedLocation(ctx context.Context, clientID string) error {
	s.cleared = append(s.cleared, clientID)
	return s.clearErr
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestDeliveryEstimateSuccess(t *testing.T) {
	svc := &stubDeliveryService{estimate: &delivery.EstimateDTO{
		Pincode:      "711102",
		LocationName: "Shibpur, Howrah",
		Tier:         delivery.TierSummary{ID: 1, Name: "Express"},
		DayRangeText: "2-3 days",
	}}
	handler := DeliveryEstimate(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/delivery/estimate",
		strings.NewReader(`{"pincode":"711102","client_id":"c1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastInput.Pincode != "711102" || svc.lastInput.ClientID != "c1" {
		t.Fatalf("unexpected input %+v", svc.lastInput)
	}
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]any)
	if data["day_range_text"] != "2-3 days" {
		t.Fatalf("unexpected payload %v", data)
	}
}

func TestDeliveryEstimateRequiresPincode(t *testing.T) {
	handler := DeliveryEstimate(&stubDeliveryService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/delivery/estimate",
		strings.NewReader(`{"client_id":"c1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeliveryEstimateUnsupportedRegion(t *testing.T) {
	svc := &stubDeliveryService{
		estimateErr: pkgerrors.New(pkgerrors.CodeUnsupportedRegion, "sorry, we only deliver within West Bengal"),
	}
	handler := DeliveryEstimate(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/delivery/estimate",
		strings.NewReader(`{"pincode":"110001"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	errPayload := body["error"].(map[string]any)
	if errPayload["code"] != "UNSUPPORTED_REGION" {
		t.Fatalf("unexpected error payload %v", errPayload)
	}
}

func TestDeliveryLocationRequiresClientID(t *testing.T) {
	handler := DeliveryLocation(&stubDeliveryService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/delivery/location", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeliveryLocationSuccess(t *testing.T) {
	svc := &stubDeliveryService{saved: &delivery.SavedLocationDTO{
		ResolvedLocation: delivery.ResolvedLocation{
			Pincode:      "711102",
			LocationName: "Shibpur, Howrah",
			DeliveryTier: 1,
		},
		Cached: true,
	}}
	handler := DeliveryLocation(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/delivery/location?client_id=c1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]any)
	if data["cached"] != true {
		t.Fatalf("expected cached=true, got %v", data)
	}
}

func TestDeliveryLocationClear(t *testing.T) {
	svc := &stubDeliveryService{}
	handler := DeliveryLocationClear(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/delivery/location?client_id=c1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.cleared) != 1 || svc.cleared[0] != "c1" {
		t.Fatalf("expected clear call for c1, got %v", svc.cleared)
	}
}
