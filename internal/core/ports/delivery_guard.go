package ports

import "context"

// DeliveryGuard remembers which broker messages were already handled, so a
// redelivery can be acknowledged without running the handler again.
type DeliveryGuard interface {
	IsProcessed(ctx context.Context, id string) (bool, error)

	// MarkProcessed is called only after the handler succeeded.
	MarkProcessed(ctx context.Context, id string) error
}
