package controllers

import (
	"net/http"
	"strings"

	"github.com/arkodas/banglamart-backend/api/responses"
	"github.com/arkodas/banglamart-backend/api/validators"
	"github.com/arkodas/banglamart-backend/internal/delivery"
	pkgerrors "github.com/arkodas/banglamart-backend/pkg/errors"
	"github.com/arkodas/banglamart-backend/pkg/logger"
)

type estimateRequest struct {
	Pincode  string `json:"pincode" validate:"required"`
	ClientID string `json:"client_id"`
}

// DeliveryEstimate resolves a pincode into a delivery window.
func DeliveryEstimate(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		var req estimateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.EstimateByPincode(r.Context(), delivery.EstimateInput{
			Pincode:  strings.TrimSpace(req.Pincode),
			ClientID: strings.TrimSpace(req.ClientID),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// DeliveryLocation returns the shopper's saved location, or the service-area
// default when nothing is cached.
func DeliveryLocation(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		clientID, err := validators.RequireQuery(r, "client_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SavedLocation(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// DeliveryLocationClear forgets the shopper's saved location.
func DeliveryLocationClear(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		clientID, err := validators.RequireQuery(r, "client_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ClearSavedLocation(r.Context(), clientID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
