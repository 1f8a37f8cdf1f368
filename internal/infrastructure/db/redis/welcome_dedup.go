package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const welcomeTTL = 24 * time.Hour

// WelcomeDedup keeps the at-least-once dispatcher from sending the same
// welcome notification twice. Key format: welcome:<user_id>. Entries expire
// after welcomeTTL, long after any plausible redelivery window.
type WelcomeDedup struct {
	client *redis.Client
}

func NewWelcomeDedup(client *redis.Client) *WelcomeDedup {
	return &WelcomeDedup{client: client}
}

// IsSent reports whether a welcome notification for this user has already
// been delivered.
func (d *WelcomeDedup) IsSent(ctx context.Context, userID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("welcome dedup check: %w", err)
	}
	return n > 0, nil
}

// MarkSent records a successful delivery.
func (d *WelcomeDedup) MarkSent(ctx context.Context, userID string) error {
	return d.client.Set(ctx, d.key(userID), "1", welcomeTTL).Err()
}

func (d *WelcomeDedup) key(userID string) string {
	return "welcome:" + userID
}
