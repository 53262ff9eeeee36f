package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/redis/go-redis/v9"
)

type redisCartSnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartSnapshotRepository keeps snapshots under "cart:<cartID>". A
// zero ttl keeps them until overwritten.
func NewRedisCartSnapshotRepository(client *redis.Client, ttl time.Duration) CartSnapshotRepository {
	return &redisCartSnapshotRepository{client: client, ttl: ttl}
}

func (r *redisCartSnapshotRepository) ReadSnapshot(ctx context.Context, cartID string) ([]byte, error) {
	payload, err := r.client.Get(ctx, snapshotKey(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (r *redisCartSnapshotRepository) WriteSnapshot(ctx context.Context, cartID string, payload []byte) error {
	return r.client.Set(ctx, snapshotKey(cartID), payload, r.ttl).Err()
}

func snapshotKey(cartID string) string {
	if cartID == "" {
		return models.CartStorageKey
	}
	return models.CartStorageKey + ":" + cartID
}
