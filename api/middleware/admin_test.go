package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/arkodas/banglamart-backend/pkg/auth"
	"github.com/arkodas/banglamart-backend/pkg/config"
)

func adminTestConfig() config.AdminJWTConfig {
	return config.AdminJWTConfig{
		Secret:            "test-secret",
		Issuer:            "banglamart-test",
		ExpirationMinutes: 60,
	}
}

func TestAdminAuthAllowsValidToken(t *testing.T) {
	cfg := adminTestConfig()
	token, err := pkgauth.MintAdminToken(cfg, time.Now(), "admin-1")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var seenAdminID string
	handler := AdminAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAdminID = AdminIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/delivery/tiers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if seenAdminID != "admin-1" {
		t.Fatalf("expected admin id in context, got %q", seenAdminID)
	}
}

func TestAdminAuthRejections(t *testing.T) {
	cfg := adminTestConfig()
	handler := AdminAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	}))

	cases := map[string]string{
		"missing header": "",
		"empty bearer":   "Bearer ",
		"garbage token":  "Bearer not-a-jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/delivery/tiers", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	other := adminTestConfig()
	other.Secret = "different-secret"
	token, err := pkgauth.MintAdminToken(other, time.Now(), "admin-1")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	handler := AdminAuth(adminTestConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/delivery/tiers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
