package rabbitmq

import (
	"context"
	"errors"
	"log/slog"

	"hawkerflow/internal/core/ports"
	"hawkerflow/internal/events"
	"hawkerflow/internal/pkg/clock"
)

type publisher interface {
	Publish(ctx context.Context, msg Message) error
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// EventPublisher wraps payloads in versioned envelopes and routes them by order id.
type EventPublisher struct {
	broker   publisher
	producer string
	clock    clock.Clock
	logger   *slog.Logger
}

func NewEventPublisher(broker publisher, producer string, clk clock.Clock, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		broker:   broker,
		producer: producer,
		clock:    clk,
		logger:   logger.With("component", "event_publisher"),
	}
}

func (p *EventPublisher) PublishOrderCreated(ctx context.Context, payload events.OrderCreated) error {
	return p.publish(ctx, events.OrderExchange, events.QueueKey(payload.OrderID),
		events.TypeOrderCreated, payload.OrderID, payload)
}

func (p *EventPublisher) PublishPaymentNotification(ctx context.Context, payload events.Notification) error {
	return p.publish(ctx, events.OrderExchange, events.NotifKey(payload.OrderID),
		events.TypeNotification, payload.OrderID, payload)
}

// PublishCompletion attempts both messages even if the first one fails.
func (p *EventPublisher) PublishCompletion(
	ctx context.Context,
	activity events.Activity,
	notification events.Notification,
) error {
	orderID := notification.OrderID
	errLog := p.publish(ctx, events.QueueExchange, events.LogKey(orderID),
		events.TypeActivity, orderID, activity)
	errNotif := p.publish(ctx, events.QueueExchange, events.NotifKey(orderID),
		events.TypeNotification, orderID, notification)
	return errors.Join(errLog, errNotif)
}

func (p *EventPublisher) publish(
	ctx context.Context,
	exchange, routingKey string,
	t events.Type,
	orderID string,
	payload any,
) error {
	env, err := events.New(t, p.producer, orderID, p.clock.Now(), payload)
	if err != nil {
		return p.fail(ctx, err, t, routingKey)
	}

	body, err := env.Marshal()
	if err != nil {
		return p.fail(ctx, err, t, routingKey)
	}

	err = p.broker.Publish(ctx, Message{
		Exchange:      exchange,
		RoutingKey:    routingKey,
		MessageID:     env.ID,
		CorrelationID: orderID,
		Body:          body,
	})
	if err != nil {
		return p.fail(ctx, err, t, routingKey)
	}

	p.logger.DebugContext(ctx, "event published", "type", t, "routing_key", routingKey, "event_id", env.ID)
	return nil
}

func (p *EventPublisher) fail(ctx context.Context, err error, t events.Type, routingKey string) error {
	p.logger.ErrorContext(ctx, "event publish failed", "type", t, "routing_key", routingKey, "error", err)
	return err
}
