package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arkodas/banglamart-backend/internal/delivery"
	pkgauth "github.com/arkodas/banglamart-backend/pkg/auth"
	"github.com/arkodas/banglamart-backend/pkg/config"
)

type stubDeliveryService struct{}

func (stubDeliveryService) EstimateByPincode(ctx context.Context, input delivery.EstimateInput) (*delivery.EstimateDTO, error) {
	return &delivery.EstimateDTO{
		Pincode:      input.Pincode,
		LocationName: "Shibpur, Howrah",
		Tier:         delivery.TierSummary{ID: 1, Name: "Express"},
		DayRangeText: "2-3 days",
	}, nil
}

func (stubDeliveryService) PreviewPlace(ctx context.Context, input delivery.PreviewInput) (*delivery.EstimateDTO, error) {
	return &delivery.EstimateDTO{Tier: delivery.TierSummary{ID: 3, Name: "Economy"}}, nil
}

func (stubDeliveryService) SavedLocation(ctx context.Context, clientID string) (*delivery.SavedLocationDTO, error) {
	return &delivery.SavedLocationDTO{Cached: false}, nil
}

func (stubDeliveryService) ClearSavedLocation(ctx context.Context, clientID string) error {
	return nil
}

func testRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.AdminJWT = config.AdminJWTConfig{
		Secret:            "router-test-secret",
		Issuer:            "banglamart-test",
		ExpirationMinutes: 60,
	}

	router := NewRouter(cfg, nil, nil, nil, nil, nil, stubDeliveryService{}, nil)
	return router, cfg
}

func TestRouterHealthAndPing(t *testing.T) {
	router, _ := testRouter(t)

	for _, path := range []string{"/health/live", "/health/ready", "/api/public/ping"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouterDeliveryEstimate(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/delivery/estimate",
		strings.NewReader(`{"pincode":"711102"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	router, cfg := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/delivery/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := pkgauth.MintAdminToken(cfg.AdminJWT, time.Now(), "admin-1")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/delivery/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
