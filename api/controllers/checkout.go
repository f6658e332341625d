package controllers

import (
	"net/http"
	"strings"

	"github.com/swiftkart/checkout-service/api/responses"
	"github.com/swiftkart/checkout-service/api/validators"
	checkoutsvc "github.com/swiftkart/checkout-service/internal/checkout"
	"github.com/swiftkart/checkout-service/pkg/enums"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
	"github.com/swiftkart/checkout-service/pkg/logger"
	"github.com/swiftkart/checkout-service/pkg/types"
)

// Checkout submits the caller's cart as an order.
func Checkout(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
		if idempotencyKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header required"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		result, err := svc.Submit(r.Context(), userID, idempotencyKey, checkoutsvc.SubmitRequest{
			PaymentMethod:   method,
			ShippingAddress: payload.ShippingAddress,
			BillingAddress:  payload.BillingAddress,
			CouponCode:      payload.CouponCode,
			CustomerNotes:   payload.CustomerNotes,
			TermsAccepted:   payload.TermsAccepted,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusCreated
		if result.Replayed {
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}

type checkoutRequest struct {
	PaymentMethod   string         `json:"payment_method" validate:"required"`
	ShippingAddress types.Address  `json:"shipping_address" validate:"required"`
	BillingAddress  *types.Address `json:"billing_address,omitempty"`
	CouponCode      string         `json:"coupon_code,omitempty" validate:"omitempty,max=64"`
	CustomerNotes   string         `json:"customer_notes,omitempty" validate:"omitempty,max=500"`
	TermsAccepted   bool           `json:"terms_accepted"`
}
