// Package amqp consumes the order queues. Each Consumer owns one queue,
// acknowledges manually and restarts itself after the broker drops the
// channel.
package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hawkerflow/internal/core/ports"
	"hawkerflow/internal/events"

	"github.com/cenkalti/backoff/v4"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultPrefetch     = 16
	defaultRestartDelay = 2 * time.Second

	DefaultRequeueDelay    = 500 * time.Millisecond
	DefaultMaxRequeueDelay = 30 * time.Second
)

var errDeliveriesClosed = errors.New("delivery channel closed")

// Handler processes one validated envelope. Returning an error wrapping
// events.ErrInvalidMessage drops the message; any other error requeues it.
type Handler func(ctx context.Context, env events.Envelope) error

type channelSource interface {
	Channel(ctx context.Context) (*amqp.Channel, error)
}

type Consumer struct {
	queue        string
	source       channelSource
	guard        ports.DeliveryGuard
	handle       Handler
	prefetch     int
	restartDelay time.Duration
	requeue      *backoff.ExponentialBackOff
	logger       *slog.Logger
}

type Option func(*Consumer)

// WithRequeueDelay sets the pause before a failed delivery is requeued. The
// pause doubles with each consecutive failure up to maxDelay and resets after
// a success.
func WithRequeueDelay(delay, maxDelay time.Duration) Option {
	return func(c *Consumer) {
		c.requeue = newRequeueBackOff(delay, maxDelay)
	}
}

// NewConsumer builds a consumer for queue. guard may be nil, in which case
// every delivery reaches the handler.
func NewConsumer(
	queue string,
	source channelSource,
	guard ports.DeliveryGuard,
	handle Handler,
	logger *slog.Logger,
	opts ...Option,
) *Consumer {
	c := &Consumer{
		queue:        queue,
		source:       source,
		guard:        guard,
		handle:       handle,
		prefetch:     defaultPrefetch,
		restartDelay: defaultRestartDelay,
		requeue:      newRequeueBackOff(DefaultRequeueDelay, DefaultMaxRequeueDelay),
		logger:       logger.With("component", "consumer", "queue", queue),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newRequeueBackOff(delay, maxDelay time.Duration) *backoff.ExponentialBackOff {
	return backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(delay),
		backoff.WithMaxInterval(maxDelay),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0),
		backoff.WithMaxElapsedTime(0),
	)
}

// Run consumes until ctx is cancelled. Broker failures are logged and the
// consumer resubscribes after a short pause.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		err := c.consume(ctx)
		if ctx.Err() != nil {
			c.logger.InfoContext(ctx, "consumer stopped")
			return nil
		}

		c.logger.WarnContext(ctx, "consumer interrupted, restarting", "retry_in", c.restartDelay, "error", err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.restartDelay):
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	ch, err := c.source.Channel(ctx)
	if err != nil {
		return err
	}
	defer ch.Close()

	if err = ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("set prefetch: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	closed := ch.NotifyClose(make(chan *amqp.Error, 1))

	c.logger.InfoContext(ctx, "consumer subscribed")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-closed:
			if amqpErr == nil {
				return errDeliveriesClosed
			}
			return amqpErr
		case d, ok := <-deliveries:
			if !ok {
				return errDeliveriesClosed
			}
			c.Process(ctx, d)
		}
	}
}

// Process handles one delivery and settles it. A success or a duplicate is
// acked and a message that can never succeed is rejected. Anything transient
// is nacked with requeue after a pause, so a failing dependency does not turn
// the queue into a busy loop. Process is not safe for concurrent use.
func (c *Consumer) Process(ctx context.Context, d amqp.Delivery) {
	env, err := events.Parse(d.Body)
	if err != nil {
		c.logger.WarnContext(ctx, "dropping invalid message", "message_id", d.MessageId, "error", err)
		c.settle(ctx, d.Reject(false))
		return
	}

	log := c.logger.With("event_id", env.ID, "type", env.Type, "order_id", env.CorrelationID)

	if c.guard != nil {
		seen, guardErr := c.guard.IsProcessed(ctx, env.ID)
		if guardErr != nil {
			log.WarnContext(ctx, "delivery guard unavailable, handling anyway", "error", guardErr)
		}
		if seen {
			log.InfoContext(ctx, "duplicate delivery acknowledged")
			c.settle(ctx, d.Ack(false))
			return
		}
	}

	if err = c.handle(ctx, env); err != nil {
		if errors.Is(err, events.ErrInvalidMessage) {
			log.WarnContext(ctx, "dropping unprocessable message", "error", err)
			c.settle(ctx, d.Reject(false))
			return
		}
		wait := c.requeue.NextBackOff()
		log.ErrorContext(ctx, "handling failed, requeueing",
			"redelivered", d.Redelivered, "requeue_in", wait, "error", err)
		select {
		case <-ctx.Done():
		case <-time.After(wait):
		}
		c.settle(ctx, d.Nack(false, true))
		return
	}
	c.requeue.Reset()

	if c.guard != nil {
		if guardErr := c.guard.MarkProcessed(ctx, env.ID); guardErr != nil {
			log.WarnContext(ctx, "could not mark message processed", "error", guardErr)
		}
	}
	c.settle(ctx, d.Ack(false))
}

func (c *Consumer) settle(ctx context.Context, err error) {
	if err != nil {
		c.logger.ErrorContext(ctx, "settling delivery failed", "error", err)
	}
}
