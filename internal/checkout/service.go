package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftkart/checkout-service/internal/cart"
	"github.com/swiftkart/checkout-service/internal/coupons"
	"github.com/swiftkart/checkout-service/internal/pricing"
	"github.com/swiftkart/checkout-service/pkg/db/models"
	"github.com/swiftkart/checkout-service/pkg/enums"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
	"github.com/swiftkart/checkout-service/pkg/logger"
	"github.com/swiftkart/checkout-service/pkg/metrics"
	"github.com/swiftkart/checkout-service/pkg/types"
)

// Quote is a priced view of the current cart.
type Quote struct {
	Snapshot       cart.Snapshot     `json:"items"`
	Breakdown      pricing.Breakdown `json:"breakdown"`
	FormattedTotal string            `json:"formatted_total"`
}

// CouponValidation previews a coupon against the current cart.
type CouponValidation struct {
	Code           string          `json:"code"`
	Discount       decimal.Decimal `json:"discount"`
	ProjectedTotal decimal.Decimal `json:"projected_total"`
}

// SubmitRequest carries the customer's checkout choices.
type SubmitRequest struct {
	PaymentMethod   enums.PaymentMethod
	ShippingAddress types.Address
	BillingAddress  *types.Address
	CouponCode      string
	CustomerNotes   string
	TermsAccepted   bool
}

// SubmissionResult is the outcome of a checkout attempt.
type SubmissionResult struct {
	OrderID     string            `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	Breakdown   pricing.Breakdown `json:"breakdown"`
	Replayed    bool              `json:"replayed,omitempty"`
}

// Service orchestrates the checkout pipeline: snapshot, coupon, pricing,
// assembly, submission, audit.
type Service struct {
	carts       *cart.Service
	engine      *pricing.Engine
	coupons     coupons.Lookup
	gateway     Gateway
	submissions SubmissionRepository
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
}

func NewService(
	carts *cart.Service,
	engine *pricing.Engine,
	couponLookup coupons.Lookup,
	gateway Gateway,
	submissions SubmissionRepository,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (*Service, error) {
	if carts == nil {
		return nil, errors.New("checkout: cart service is required")
	}
	if engine == nil {
		return nil, errors.New("checkout: pricing engine is required")
	}
	if couponLookup == nil {
		return nil, errors.New("checkout: coupon lookup is required")
	}
	if gateway == nil {
		return nil, errors.New("checkout: order gateway is required")
	}
	if submissions == nil {
		return nil, errors.New("checkout: submission repository is required")
	}
	if logg == nil {
		return nil, errors.New("checkout: logger is required")
	}
	return &Service{
		carts:       carts,
		engine:      engine,
		coupons:     couponLookup,
		gateway:     gateway,
		submissions: submissions,
		metrics:     checkoutMetrics,
		logg:        logg,
	}, nil
}

// Quote prices a snapshot, optionally with a coupon applied. Inline items
// are normalized and priced as-is without touching the stored cart; when nil,
// the stored cart is quoted. An empty cart quotes to zero rather than
// failing; the submit path is the one that rejects it.
func (s *Service) Quote(ctx context.Context, userID uuid.UUID, items cart.Snapshot, couponCode string) (*Quote, error) {
	var snapshot cart.Snapshot
	var err error
	if items != nil {
		snapshot, err = items.Normalize()
	} else {
		snapshot, err = s.carts.Get(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	coupon, err := s.resolveCoupon(ctx, couponCode)
	if err != nil {
		return nil, err
	}

	breakdown := s.engine.Price(snapshot, coupon)
	return &Quote{
		Snapshot:       snapshot,
		Breakdown:      breakdown,
		FormattedTotal: pricing.FormatINR(breakdown.Total),
	}, nil
}

// ValidateCoupon checks a code against the current cart and previews its effect.
func (s *Service) ValidateCoupon(ctx context.Context, userID uuid.UUID, code string) (*CouponValidation, error) {
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	coupon, err := s.coupons.Find(ctx, code)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	breakdown := s.engine.Price(snapshot, coupon)
	return &CouponValidation{
		Code:           coupon.Code,
		Discount:       breakdown.CouponDiscount,
		ProjectedTotal: breakdown.Total,
	}, nil
}

// Submit runs the full pipeline. The idempotency key makes retries safe: a
// key whose attempt already succeeded replays the original result, a key
// still in flight or already failed is rejected.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, idempotencyKey string, req SubmitRequest) (*SubmissionResult, error) {
	start := time.Now()
	ctx = s.logg.WithUserID(ctx, userID.String())

	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" {
		s.metrics.IncRejected("missing_idempotency_key")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "idempotency key is required")
	}

	// Hashed before the cart is loaded: the stored hash must be reproducible
	// on a retry, after the original submission cleared the cart.
	requestHash := PayloadHash(req)

	if replay, err := s.checkExistingSubmission(ctx, userID, idempotencyKey, requestHash); err != nil {
		return nil, err
	} else if replay != nil {
		s.logg.Info(ctx, "checkout replayed from idempotency key")
		return replay, nil
	}

	snapshot, err := s.carts.LoadForCheckout(ctx, userID)
	if err != nil {
		s.metrics.IncRejected(rejectionReason(err, "empty_cart"))
		return nil, err
	}

	coupon, err := s.resolveCoupon(ctx, req.CouponCode)
	if err != nil {
		s.metrics.IncRejected(rejectionReason(err, "invalid_coupon"))
		return nil, err
	}

	breakdown := s.engine.Price(snapshot, coupon)

	orderReq, err := Assemble(CheckoutInput{
		UserID:          userID,
		Snapshot:        snapshot,
		Breakdown:       breakdown,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		CustomerNotes:   req.CustomerNotes,
		TermsAccepted:   req.TermsAccepted,
	})
	if err != nil {
		s.metrics.IncRejected("preconditions")
		return nil, err
	}

	submission, err := s.recordPending(ctx, userID, idempotencyKey, requestHash, orderReq, req)
	if err != nil {
		return nil, err
	}

	receipt, err := s.gateway.SubmitOrder(ctx, orderReq, idempotencyKey)
	if err != nil {
		s.resolveFailed(ctx, submission.ID, err)
		s.metrics.ObserveAttempt("failed", time.Since(start))
		return nil, err
	}

	if err := s.submissions.MarkSucceeded(ctx, submission.ID, receipt.OrderID, receipt.OrderNumber); err != nil {
		s.logg.Error(ctx, "failed to resolve submission after order creation", err)
	}
	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order exists; a stale snapshot is an inconvenience, not a failure.
		s.logg.Error(ctx, "failed to clear cart after checkout", err)
	}

	s.metrics.ObserveAttempt("succeeded", time.Since(start))
	s.logg.Info(ctx, "checkout succeeded")

	return &SubmissionResult{
		OrderID:     receipt.OrderID,
		OrderNumber: receipt.OrderNumber,
		Breakdown:   breakdown,
	}, nil
}

// GetOrder returns an order previously created by this user. Ownership is
// established against the local audit trail before calling the order API.
func (s *Service) GetOrder(ctx context.Context, userID uuid.UUID, orderID string) (*OrderDetails, error) {
	if _, err := s.submissions.FindByOrderID(ctx, userID, orderID); err != nil {
		return nil, err
	}
	return s.gateway.FetchOrder(ctx, userID, orderID)
}

func (s *Service) resolveCoupon(ctx context.Context, code string) (*coupons.Coupon, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}
	coupon, err := s.coupons.Find(ctx, code)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon is invalid or expired")
		}
		return nil, err
	}
	return coupon, nil
}

func (s *Service) checkExistingSubmission(ctx context.Context, userID uuid.UUID, key, requestHash string) (*SubmissionResult, error) {
	existing, err := s.submissions.FindByIdempotencyKey(ctx, userID, key)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}

	if existing.PayloadHash != "" && existing.PayloadHash != requestHash {
		return nil, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with a different checkout payload")
	}

	switch existing.Status {
	case enums.SubmissionStatusSucceeded:
		result := &SubmissionResult{
			Breakdown: pricing.Breakdown{
				Currency:       existing.Currency,
				Subtotal:       existing.Subtotal,
				Tax:            existing.Tax,
				Shipping:       existing.Shipping,
				CouponDiscount: existing.CouponDiscount,
				Total:          existing.Total,
			},
			Replayed: true,
		}
		if existing.CouponCode != nil {
			result.Breakdown.CouponCode = *existing.CouponCode
		}
		if existing.OrderID != nil {
			result.OrderID = *existing.OrderID
		}
		if existing.OrderNumber != nil {
			result.OrderNumber = *existing.OrderNumber
		}
		return result, nil
	case enums.SubmissionStatusPending:
		return nil, pkgerrors.New(pkgerrors.CodeIdempotency, "a checkout with this key is already in flight")
	default:
		return nil, pkgerrors.New(pkgerrors.CodeIdempotency, "a checkout with this key already failed; use a new key")
	}
}

func (s *Service) recordPending(ctx context.Context, userID uuid.UUID, key, requestHash string, orderReq *OrderRequest, req SubmitRequest) (*models.OrderSubmission, error) {
	now := time.Now()
	submission := &models.OrderSubmission{
		ID:              uuid.New(),
		UserID:          userID,
		IdempotencyKey:  key,
		PayloadHash:     requestHash,
		Status:          enums.SubmissionStatusPending,
		Currency:        orderReq.Currency,
		Subtotal:        orderReq.Subtotal,
		Tax:             orderReq.Tax,
		Shipping:        orderReq.Shipping,
		CouponDiscount:  orderReq.CouponDiscount,
		Total:           orderReq.Total,
		PaymentMethod:   orderReq.PaymentMethod,
		ShippingAddress: orderReq.ShippingAddress,
		BillingAddress:  orderReq.BillingAddress,
		SubmittedAt:     &now,
	}
	if orderReq.CouponCode != "" {
		code := orderReq.CouponCode
		submission.CouponCode = &code
	}
	if notes := strings.TrimSpace(req.CustomerNotes); notes != "" {
		submission.CustomerNotes = &notes
	}

	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// rejectionReason keeps infrastructure failures out of the validation
// buckets: only a validation error counts under the named reason.
func rejectionReason(err error, validationReason string) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "internal"
	}
	if typed.Code() == pkgerrors.CodeValidation {
		return validationReason
	}
	return strings.ToLower(string(typed.Code()))
}

func (s *Service) resolveFailed(ctx context.Context, id uuid.UUID, cause error) {
	message := cause.Error()
	if typed := pkgerrors.As(cause); typed != nil {
		message = typed.Message()
	}
	if err := s.submissions.MarkFailed(ctx, id, message); err != nil {
		s.logg.Error(ctx, "failed to mark submission as failed", err)
	}
}
