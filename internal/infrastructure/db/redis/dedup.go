package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// BillingDedup provides idempotency checks for billing webhook events backed
// by Redis. Key format: billing:event:<event_id>
type BillingDedup struct {
	client *redis.Client
}

// NewBillingDedup creates a BillingDedup wrapping the given Redis client.
func NewBillingDedup(client *redis.Client) *BillingDedup {
	return &BillingDedup{client: client}
}

// IsDuplicate reports whether this billing event has already been recorded.
func (d *BillingDedup) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("billing dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *BillingDedup) Mark(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, d.key(eventID), "1", dedupTTL).Err()
}

func (d *BillingDedup) key(eventID string) string {
	return "billing:event:" + eventID
}
