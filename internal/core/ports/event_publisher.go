package ports

import (
	"context"

	"hawkerflow/internal/events"
)

// EventPublisher sends order events to the broker. Implementations log
// failures; callers treat a returned error as non-fatal.
type EventPublisher interface {
	// PublishOrderCreated routes to order_exchange with "<orderId>.queue".
	PublishOrderCreated(ctx context.Context, payload events.OrderCreated) error

	// PublishPaymentNotification routes to order_exchange with "<orderId>.notif".
	PublishPaymentNotification(ctx context.Context, payload events.Notification) error

	// PublishCompletion routes the activity record with "<orderId>.log" and the
	// customer notification with "<orderId>.notif", both to queue_exchange.
	PublishCompletion(ctx context.Context, activity events.Activity, notification events.Notification) error
}
