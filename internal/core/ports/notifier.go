package ports

import (
	"context"

	"hawkerflow/internal/events"
)

// Notifier delivers a message to the customer, for example by SMS.
type Notifier interface {
	Notify(ctx context.Context, notification events.Notification) error
}
