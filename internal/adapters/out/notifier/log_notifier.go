// Package notifier delivers customer notifications.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"hawkerflow/internal/core/ports"
	"hawkerflow/internal/events"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier stands in for an SMS gateway: it renders the text a customer
// would receive and writes it to the log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "sms_notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, notification events.Notification) error {
	n.logger.InfoContext(ctx, "sms sent",
		"order_id", notification.OrderID,
		"user_id", notification.UserID,
		"to", notification.Contact,
		"text", Message(notification))
	return nil
}

// Message renders the SMS body for a notification.
func Message(n events.Notification) string {
	switch n.Status {
	case events.StatusSuccess:
		return fmt.Sprintf("Payment received for order %s. We are sending it to the stalls.", n.OrderID)
	case events.StatusFailed:
		return fmt.Sprintf("Payment for order %s failed. Please try again.", n.OrderID)
	case events.StatusCompleted:
		if n.StallName != "" {
			return fmt.Sprintf("Your order %s from %s is ready for collection.", n.OrderID, n.StallName)
		}
		return fmt.Sprintf("Your order %s is ready for collection.", n.OrderID)
	default:
		return fmt.Sprintf("Order %s: %s", n.OrderID, n.Status)
	}
}
