package controllers

import (
	"net/http"

	"github.com/swiftkart/checkout-service/api/responses"
	"github.com/swiftkart/checkout-service/api/validators"
	checkoutsvc "github.com/swiftkart/checkout-service/internal/checkout"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
	"github.com/swiftkart/checkout-service/pkg/logger"
)

// CouponValidate previews a coupon code against the caller's current cart.
func CouponValidate(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload couponValidateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		validation, err := svc.ValidateCoupon(r.Context(), userID, payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, validation)
	}
}

type couponValidateRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}
