package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
)

// snapshotStore is the slice of the redis client the repository needs.
type snapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

// RedisRepository persists cart snapshots as JSON under a per-user key.
type RedisRepository struct {
	store snapshotStore
	ttl   time.Duration
}

// NewRedisRepository wires the snapshot repository against redis.
func NewRedisRepository(store snapshotStore, ttl time.Duration) (*RedisRepository, error) {
	if store == nil {
		return nil, errors.New("cart: redis store is required")
	}
	if ttl <= 0 {
		return nil, errors.New("cart: snapshot ttl must be positive")
	}
	return &RedisRepository{store: store, ttl: ttl}, nil
}

// Load returns the persisted snapshot, or an empty one when nothing is stored.
func (r *RedisRepository) Load(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	raw, err := r.store.Get(ctx, r.store.CartKey(userID.String()))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return Snapshot{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart snapshot")
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		// A corrupt snapshot is treated as absent rather than blocking checkout.
		return Snapshot{}, nil
	}
	return snapshot, nil
}

// Save stores the snapshot, refreshing its TTL.
func (r *RedisRepository) Save(ctx context.Context, userID uuid.UUID, snapshot Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart snapshot")
	}
	if err := r.store.Set(ctx, r.store.CartKey(userID.String()), payload, r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart snapshot")
	}
	return nil
}

// Clear removes the persisted snapshot.
func (r *RedisRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := r.store.Del(ctx, r.store.CartKey(userID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart snapshot")
	}
	return nil
}
