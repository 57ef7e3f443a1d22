package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hawkerflow/internal/core/application/usecases/commands"
	"hawkerflow/internal/events"
)

type (
	fanOutHandler interface {
		Handle(ctx context.Context, cmd commands.FanOutOrderCommand) (commands.FanOutResult, error)
	}

	notifyHandler interface {
		Handle(ctx context.Context, cmd commands.NotifyCustomerCommand) error
	}

	recordActivityHandler interface {
		Handle(ctx context.Context, cmd commands.RecordActivityCommand) error
	}
)

// FanOut serves O_queue.
func FanOut(h fanOutHandler, logger *slog.Logger) Handler {
	return func(ctx context.Context, env events.Envelope) error {
		var payload events.OrderCreated
		if err := decode(env, events.TypeOrderCreated, &payload); err != nil {
			return err
		}

		cmd, err := commands.NewFanOutOrderCommand(payload)
		if err != nil {
			return permanent(err)
		}

		result, err := h.Handle(ctx, cmd)
		if err != nil {
			return permanent(err)
		}

		logger.InfoContext(ctx, "order fanned out",
			"order_id", payload.OrderID, "created", result.Created, "skipped", result.Skipped)
		return nil
	}
}

// Notify serves O_notif and Q_notif.
func Notify(h notifyHandler) Handler {
	return func(ctx context.Context, env events.Envelope) error {
		var payload events.Notification
		if err := decode(env, events.TypeNotification, &payload); err != nil {
			return err
		}

		cmd, err := commands.NewNotifyCustomerCommand(payload)
		if err != nil {
			return permanent(err)
		}
		return permanent(h.Handle(ctx, cmd))
	}
}

// RecordActivity serves Q_log. The order id travels as the correlation id
// because the activity payload is keyed by dish name only.
func RecordActivity(h recordActivityHandler) Handler {
	return func(ctx context.Context, env events.Envelope) error {
		var payload events.Activity
		if err := decode(env, events.TypeActivity, &payload); err != nil {
			return err
		}

		cmd, err := commands.NewRecordActivityCommand(env.CorrelationID, payload)
		if err != nil {
			return permanent(err)
		}
		return permanent(h.Handle(ctx, cmd))
	}
}

func decode(env events.Envelope, want events.Type, dst any) error {
	if env.Type != want {
		return fmt.Errorf("%w: expected %s, got %s", events.ErrInvalidMessage, want, env.Type)
	}
	return env.Decode(dst)
}

// permanent marks validation failures as unprocessable so the consumer drops
// them instead of requeueing forever.
func permanent(err error) error {
	if errors.Is(err, commands.ErrInvalidOrder) {
		return fmt.Errorf("%w: %w", events.ErrInvalidMessage, err)
	}
	return err
}
