package controllers

import (
	"net/http"

	"github.com/arkodas/banglamart-backend/api/middleware"
	"github.com/arkodas/banglamart-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func AdminPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "admin", "status": "ok"}
		if adminID := middleware.AdminIDFromContext(r.Context()); adminID != "" {
			payload["admin_id"] = adminID
		}
		responses.WriteSuccess(w, payload)
	}
}
