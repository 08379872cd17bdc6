package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Telegram re-sends an update until it gets a 2xx, and can re-send even
// after one on network flakiness. Six hours comfortably outlives the
// provider's retry window.
const dedupTTL = 6 * time.Hour

// UpdateDedup suppresses duplicate webhook updates backed by Redis.
// Key format: webhook:update:<update_id>
type UpdateDedup struct {
	client *redis.Client
}

// NewUpdateDedup creates an UpdateDedup wrapping the given Redis client.
func NewUpdateDedup(client *redis.Client) *UpdateDedup {
	return &UpdateDedup{client: client}
}

// Seen reports whether this update id has already been accepted.
func (d *UpdateDedup) Seen(ctx context.Context, updateID int64) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(updateID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this update has been accepted (expires after dedupTTL).
func (d *UpdateDedup) Mark(ctx context.Context, updateID int64) error {
	return d.client.Set(ctx, d.key(updateID), "1", dedupTTL).Err()
}

func (d *UpdateDedup) key(updateID int64) string {
	return fmt.Sprintf("webhook:update:%d", updateID)
}
