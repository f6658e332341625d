package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftkart/checkout-service/pkg/db/models"
	"github.com/swiftkart/checkout-service/pkg/enums"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
)

// SubmissionRepository persists the audit trail of checkout attempts.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.OrderSubmission) error
	FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*models.OrderSubmission, error)
	FindByOrderID(ctx context.Context, userID uuid.UUID, orderID string) (*models.OrderSubmission, error)
	MarkSucceeded(ctx context.Context, id uuid.UUID, orderID, orderNumber string) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
}

// GormSubmissionRepository is the database-backed SubmissionRepository.
type GormSubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) (*GormSubmissionRepository, error) {
	if db == nil {
		return nil, errors.New("checkout: db handle is required")
	}
	return &GormSubmissionRepository{db: db}, nil
}

// WithTx returns a repository bound to the supplied transaction.
func (r *GormSubmissionRepository) WithTx(tx *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: tx}
}

// Create inserts a pending submission row. A duplicate idempotency key maps
// to CodeIdempotency so the service can replay or reject.
func (r *GormSubmissionRepository) Create(ctx context.Context, submission *models.OrderSubmission) error {
	if submission == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "submission is required")
	}
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key already used")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order submission")
	}
	return nil
}

func (r *GormSubmissionRepository) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*models.OrderSubmission, error) {
	var submission models.OrderSubmission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order submission")
	}
	return &submission, nil
}

func (r *GormSubmissionRepository) FindByOrderID(ctx context.Context, userID uuid.UUID, orderID string) (*models.OrderSubmission, error) {
	var submission models.OrderSubmission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order submission")
	}
	return &submission, nil
}

// MarkSucceeded resolves a pending submission with the order identity.
func (r *GormSubmissionRepository) MarkSucceeded(ctx context.Context, id uuid.UUID, orderID, orderNumber string) error {
	now := time.Now()
	updates := map[string]any{
		"status":       enums.SubmissionStatusSucceeded,
		"order_id":     orderID,
		"order_number": orderNumber,
		"resolved_at":  &now,
	}
	return r.resolve(ctx, id, updates)
}

// MarkFailed resolves a pending submission with the failure message.
func (r *GormSubmissionRepository) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	now := time.Now()
	updates := map[string]any{
		"status":        enums.SubmissionStatusFailed,
		"error_message": message,
		"resolved_at":   &now,
	}
	return r.resolve(ctx, id, updates)
}

func (r *GormSubmissionRepository) resolve(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderSubmission{}).
		Where("id = ? AND status = ?", id, enums.SubmissionStatusPending).
		Updates(updates)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "resolving order submission")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "submission already resolved")
	}
	return nil
}
