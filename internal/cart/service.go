package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
	"github.com/swiftkart/checkout-service/pkg/logger"
)

// Service exposes snapshot reads and writes to the API layer.
type Service struct {
	repo SnapshotRepository
	logg *logger.Logger
}

func NewService(repo SnapshotRepository, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("cart: snapshot repository is required")
	}
	if logg == nil {
		return nil, errors.New("cart: logger is required")
	}
	return &Service{repo: repo, logg: logg}, nil
}

// Get returns the user's current snapshot, normalized.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	snapshot, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return snapshot.Normalize()
}

// Replace overwrites the user's snapshot after normalizing it. The stored
// snapshot never contains zero-quantity lines.
func (s *Service) Replace(ctx context.Context, userID uuid.UUID, snapshot Snapshot) (Snapshot, error) {
	normalized, err := snapshot.Normalize()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, userID, normalized); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithUserID(ctx, userID.String()), "cart snapshot replaced")
	return normalized, nil
}

// Clear removes the user's snapshot.
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithUserID(ctx, userID.String()), "cart snapshot cleared")
	return nil
}

// LoadForCheckout returns a normalized, non-empty snapshot or a validation error.
func (s *Service) LoadForCheckout(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	snapshot, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snapshot.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return snapshot, nil
}
