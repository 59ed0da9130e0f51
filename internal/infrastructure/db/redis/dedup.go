package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker provides booking idempotency backed by Redis. Each seen
// Idempotency-Key maps to the reservation id its first submission created.
// Key format: booking:<idempotency_key>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// Lookup returns the reservation id recorded for this key, or "" when the
// key has not been seen.
func (d *DedupChecker) Lookup(ctx context.Context, key string) (string, error) {
	id, err := d.client.Get(ctx, d.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("dedup lookup: %w", err)
	}
	return id, nil
}

// Mark records the reservation created for this key (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, key, reservationID string) error {
	return d.client.Set(ctx, d.key(key), reservationID, dedupTTL).Err()
}

func (d *DedupChecker) key(key string) string {
	return "booking:" + key
}
