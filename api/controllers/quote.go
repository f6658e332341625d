package controllers

import (
	"net/http"

	"github.com/swiftkart/checkout-service/api/responses"
	"github.com/swiftkart/checkout-service/api/validators"
	"github.com/swiftkart/checkout-service/internal/cart"
	checkoutsvc "github.com/swiftkart/checkout-service/internal/checkout"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
	"github.com/swiftkart/checkout-service/pkg/logger"
)

// CartQuote prices a cart without submitting anything: inline items when the
// request carries them, the caller's stored cart otherwise.
func CartQuote(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), userID, payload.Items, payload.CouponCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

type quoteRequest struct {
	Items      cart.Snapshot `json:"items,omitempty"`
	CouponCode string        `json:"coupon_code,omitempty" validate:"omitempty,max=64"`
}
