// Package redis keeps short-lived delivery state in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"hawkerflow/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	// keyDedup is dedup:{service}:{message id}.
	keyDedup = "dedup:%s:%s"

	DefaultDedupTTL = 48 * time.Hour
)

var _ ports.DeliveryGuard = (*DeliveryGuard)(nil)

// NewClient connects to addr. A redis:// URL is accepted as well as host:port.
func NewClient(addr string) (*redis.Client, error) {
	if opts, err := redis.ParseURL(addr); err == nil {
		return redis.NewClient(opts), nil
	}
	if addr == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	}), nil
}

// DeliveryGuard records handled broker message ids under
// dedup:{service}:{id} with a TTL. A message is marked only after its handler
// succeeded, so a crash before that point leads to a normal redelivery. The
// database stays the source of truth; an expired key only costs one
// idempotent re-run.
type DeliveryGuard struct {
	client  *redis.Client
	service string
	ttl     time.Duration
}

func NewDeliveryGuard(client *redis.Client, service string, ttl time.Duration) *DeliveryGuard {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &DeliveryGuard{client: client, service: service, ttl: ttl}
}

func (g *DeliveryGuard) IsProcessed(ctx context.Context, id string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("check %s: %w", id, err)
	}
	return n > 0, nil
}

func (g *DeliveryGuard) MarkProcessed(ctx context.Context, id string) error {
	if err := g.client.Set(ctx, g.key(id), "1", g.ttl).Err(); err != nil {
		return fmt.Errorf("mark %s: %w", id, err)
	}
	return nil
}

func (g *DeliveryGuard) key(id string) string {
	return fmt.Sprintf(keyDedup, g.service, id)
}
