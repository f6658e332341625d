package cart

import (
	"context"

	"github.com/google/uuid"
)

// SnapshotRepository persists the cart snapshot between visits. Pricing and
// order assembly never touch storage directly; everything goes through this
// port so the backend can be swapped (Redis in production, memory in tests).
type SnapshotRepository interface {
	Load(ctx context.Context, userID uuid.UUID) (Snapshot, error)
	Save(ctx context.Context, userID uuid.UUID, snapshot Snapshot) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
