// Package rabbitmq owns the broker connection. Connect and Channel dial with
// retries and declare the exchanges and queues; Publish never dials and fails
// fast while the connection is down.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hawkerflow/internal/events"

	"github.com/cenkalti/backoff/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/semaphore"
)

// ErrBrokerUnavailable is returned when no connection could be made within the
// configured number of attempts, or by Publish while the connection is down.
var ErrBrokerUnavailable = errors.New("broker unavailable")

const (
	DefaultRetryAttempts = 10
	DefaultRetryInterval = time.Second

	maxRetryInterval = 30 * time.Second
)

// Config sets the dial policy. RetryInterval is the first wait; later waits
// grow exponentially up to 30s.
type Config struct {
	URL           string
	RetryAttempts int
	RetryInterval time.Duration
}

// Message is one publish request. Body is an encoded events.Envelope.
type Message struct {
	Exchange      string
	RoutingKey    string
	MessageID     string
	CorrelationID string
	Body          []byte
}

// Manager is safe for concurrent use. dialMu serializes reconnects, mu guards
// the connection fields and is never held while dialing. Publishing holds a
// one-slot semaphore so callers can give up while waiting for it.
type Manager struct {
	cfg    Config
	logger *slog.Logger

	dialMu     sync.Mutex
	publishing *semaphore.Weighted

	mu        sync.Mutex
	conn      *amqp.Connection
	publishCh *amqp.Channel
}

func NewManager(cfg Config, logger *slog.Logger) *Manager {
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}

	return &Manager{
		cfg:        cfg,
		logger:     logger.With("component", "rabbitmq"),
		publishing: semaphore.NewWeighted(1),
	}
}

// Connect dials the broker and declares the topology. Startup treats its
// error as fatal.
func (m *Manager) Connect(ctx context.Context) error {
	_, err := m.connection(ctx)
	return err
}

// Channel opens a new channel for a consumer, reconnecting first if the
// connection was lost. The consumers' restart loops are what bring the
// connection back after an outage. The caller owns the channel.
func (m *Manager) Channel(ctx context.Context) (*amqp.Channel, error) {
	conn, err := m.connection(ctx)
	if err != nil {
		return nil, err
	}
	return conn.Channel()
}

// Publish sends a persistent JSON message. Calls are serialized because an
// AMQP channel must not be shared between concurrent publishers. Without a
// live connection it returns ErrBrokerUnavailable at once.
func (m *Manager) Publish(ctx context.Context, msg Message) error {
	if err := m.publishing.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("publish to %s with %s: %w", msg.Exchange, msg.RoutingKey, err)
	}
	defer m.publishing.Release(1)

	ch, err := m.publishChannel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, msg.Exchange, msg.RoutingKey, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     msg.MessageID,
		CorrelationId: msg.CorrelationID,
		Timestamp:     time.Now().UTC(),
		Body:          msg.Body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s with %s: %w", msg.Exchange, msg.RoutingKey, err)
	}
	return nil
}

// publishChannel returns the open publish channel, opening one on the live
// connection when needed. It never dials.
func (m *Manager) publishChannel() (*amqp.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil || m.conn.IsClosed() {
		return nil, fmt.Errorf("%w: not connected", ErrBrokerUnavailable)
	}
	if m.publishCh != nil && !m.publishCh.IsClosed() {
		return m.publishCh, nil
	}

	ch, err := m.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: open publish channel: %w", ErrBrokerUnavailable, err)
	}
	m.publishCh = ch
	return ch, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errCh, errConn error
	if m.publishCh != nil {
		errCh = m.publishCh.Close()
		m.publishCh = nil
	}
	if m.conn != nil && !m.conn.IsClosed() {
		errConn = m.conn.Close()
	}
	m.conn = nil
	return errors.Join(errCh, errConn)
}

// current returns the live connection or nil.
func (m *Manager) current() *amqp.Connection {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil && !m.conn.IsClosed() {
		return m.conn
	}
	return nil
}

// connection returns the live connection, dialing a new one if needed.
// Only one caller dials at a time; the others wait and reuse its result.
func (m *Manager) connection(ctx context.Context) (*amqp.Connection, error) {
	if conn := m.current(); conn != nil {
		return conn, nil
	}

	m.dialMu.Lock()
	defer m.dialMu.Unlock()

	if conn := m.current(); conn != nil {
		return conn, nil
	}

	exponential := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(m.cfg.RetryInterval),
		backoff.WithMaxInterval(maxRetryInterval),
		backoff.WithMaxElapsedTime(0),
	)
	policy := backoff.WithContext(
		backoff.WithMaxRetries(exponential, uint64(m.cfg.RetryAttempts-1)),
		ctx,
	)

	attempt := 0
	conn, err := backoff.RetryNotifyWithData(func() (*amqp.Connection, error) {
		attempt++
		return amqp.Dial(m.cfg.URL)
	}, policy, func(err error, wait time.Duration) {
		m.logger.WarnContext(ctx, "broker dial failed",
			"attempt", attempt, "max_attempts", m.cfg.RetryAttempts, "retry_in", wait, "error", err)
	})
	if err != nil {
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrBrokerUnavailable, attempt, err)
	}

	if err = declareTopology(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	m.mu.Lock()
	m.conn = conn
	m.publishCh = nil
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "broker connected", "attempts", attempt)
	return conn, nil
}

// declareTopology declares both topic exchanges, the four durable queues and
// their bindings. Declarations are idempotent.
func declareTopology(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open topology channel: %w", err)
	}
	defer ch.Close()

	for _, exchange := range events.Exchanges() {
		if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange %s: %w", exchange, err)
		}
	}

	for _, b := range events.Bindings() {
		if _, err = ch.QueueDeclare(b.Queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", b.Queue, err)
		}
		if err = ch.QueueBind(b.Queue, b.Pattern, b.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s to %s: %w", b.Queue, b.Exchange, err)
		}
	}

	return nil
}
