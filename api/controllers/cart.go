package controllers

import (
	"net/http"

	"github.com/swiftkart/checkout-service/api/responses"
	"github.com/swiftkart/checkout-service/api/validators"
	"github.com/swiftkart/checkout-service/internal/cart"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
	"github.com/swiftkart/checkout-service/pkg/logger"
)

// CartFetch returns the caller's current cart snapshot.
func CartFetch(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartReplace overwrites the caller's cart snapshot.
func CartReplace(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartReplaceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stored, err := svc.Replace(r.Context(), userID, payload.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(stored))
	}
}

// CartClear removes the caller's cart snapshot.
func CartClear(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

type cartReplaceRequest struct {
	Items cart.Snapshot `json:"items" validate:"required"`
}

type cartResponse struct {
	Items         cart.Snapshot `json:"items"`
	TotalQuantity int           `json:"total_quantity"`
}

func newCartResponse(snapshot cart.Snapshot) cartResponse {
	if snapshot == nil {
		snapshot = cart.Snapshot{}
	}
	return cartResponse{
		Items:         snapshot,
		TotalQuantity: snapshot.TotalQuantity(),
	}
}
