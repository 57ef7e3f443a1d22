package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/order"
	"hawkerflow/internal/core/ports"
	"hawkerflow/internal/events"
	"hawkerflow/internal/pkg/clock"
	"hawkerflow/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// DefaultPaymentTimeout bounds the synchronous payment call.
const DefaultPaymentTimeout = 5 * time.Second

const (
	// publishTimeout bounds the publishes that follow a commit. They run on a
	// context detached from the request, so nothing else would end them.
	publishTimeout = 2 * time.Second

	saveOutcomeAttempts = 3
	saveOutcomeInterval = 100 * time.Millisecond
)

// SubmitOrderResult is returned to the customer once the payment outcome is known.
type SubmitOrderResult struct {
	OrderID       kernel.OrderID
	PaymentStatus order.PaymentStatus
}

// SubmitOrderCommandHandler persists a pending order, charges the customer and
// records the outcome. A paid order is published for fulfillment; every
// outcome produces a payment notification.
//
// Resubmitting an orderId that is already stored returns the stored outcome
// without charging again.
type SubmitOrderCommandHandler struct {
	uowFactory     OrderUoWFactory
	payment        ports.PaymentGateway
	publisher      ports.EventPublisher
	clock          clock.Clock
	paymentTimeout time.Duration
	logger         *slog.Logger
}

func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	payment ports.PaymentGateway,
	publisher ports.EventPublisher,
	clk clock.Clock,
	paymentTimeout time.Duration,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	if paymentTimeout <= 0 {
		paymentTimeout = DefaultPaymentTimeout
	}
	return SubmitOrderCommandHandler{
		uowFactory:     uowFactory,
		payment:        payment,
		publisher:      publisher,
		clock:          clk,
		paymentTimeout: paymentTimeout,
		logger:         logger.With("component", "submit_order_handler"),
	}
}

func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.UserID(),
		cmd.Contact(),
		cmd.HawkerCenter(),
		cmd.Items(),
		cmd.Amount(),
		h.clock.Now(),
	)
	if err != nil {
		return SubmitOrderResult{}, invalidOrder(err)
	}

	stored, err := h.addPending(ctx, o)
	if err != nil {
		return SubmitOrderResult{}, err
	}
	if stored != nil {
		h.logger.InfoContext(ctx, "order already submitted",
			"order_id", stored.ID().String(), "payment_status", stored.PaymentStatus().String())
		return SubmitOrderResult{OrderID: stored.ID(), PaymentStatus: stored.PaymentStatus()}, nil
	}

	// The pending order is stored; finish the payment even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	if h.charge(ctx, o, cmd.Token()) {
		err = o.MarkPaid()
	} else {
		err = o.MarkPaymentFailed()
	}
	if err != nil {
		return SubmitOrderResult{}, err
	}

	if err = h.saveOutcome(ctx, o); err != nil {
		return SubmitOrderResult{}, err
	}

	h.publish(ctx, o)

	return SubmitOrderResult{OrderID: o.ID(), PaymentStatus: o.PaymentStatus()}, nil
}

// addPending stores o. When an order with the same id exists it is returned instead.
func (h *SubmitOrderCommandHandler) addPending(ctx context.Context, o *order.Order) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	created, err := repo.AddIfAbsent(ctx, o)
	if err != nil {
		return nil, err
	}

	var stored *order.Order
	if !created {
		if stored, err = repo.Get(ctx, o.ID()); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stored, nil
}

func (h *SubmitOrderCommandHandler) charge(ctx context.Context, o *order.Order, token string) bool {
	ctx, cancel := context.WithTimeout(ctx, h.paymentTimeout)
	defer cancel()

	approved, err := h.payment.Charge(ctx, ports.ChargeRequest{
		OrderID: o.ID(),
		Token:   token,
		Amount:  o.Amount(),
	})

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.WarnContext(ctx, "payment call timed out",
			"order_id", o.ID().String(), "timeout", h.paymentTimeout, "error", fmt.Errorf("%w: %w", ErrPaymentTimeout, err))
		return false
	case err != nil:
		h.logger.WarnContext(ctx, "payment call failed",
			"order_id", o.ID().String(), "error", fmt.Errorf("%w: %w", ErrPaymentFailed, err))
		return false
	case !approved:
		h.logger.InfoContext(ctx, "payment declined", "order_id", o.ID().String(), "error", ErrPaymentFailed)
		return false
	}

	h.logger.InfoContext(ctx, "payment approved", "order_id", o.ID().String(), "amount", o.Amount().String())
	return true
}

// saveOutcome records the payment result, retrying briefly: once the customer
// has been charged a lost write would leave the order pending for good.
func (h *SubmitOrderCommandHandler) saveOutcome(ctx context.Context, o *order.Order) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(backoff.WithInitialInterval(saveOutcomeInterval)),
			saveOutcomeAttempts-1,
		),
		ctx,
	)

	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		err := h.saveOutcomeOnce(ctx, o)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		h.logger.WarnContext(ctx, "failed to save payment outcome",
			"order_id", o.ID().String(), "attempt", attempt, "retry_in", wait, "error", err)
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "payment outcome lost, order left pending",
			"order_id", o.ID().String(),
			"payment_status", o.PaymentStatus().String(),
			"amount", o.Amount().String(),
			"attempts", attempt,
			"error", err)
		return err
	}
	return nil
}

func (h *SubmitOrderCommandHandler) saveOutcomeOnce(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *SubmitOrderCommandHandler) publish(ctx context.Context, o *order.Order) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	status := events.StatusFailed
	if o.PaymentStatus() == order.Success {
		status = events.StatusSuccess
		if err := h.publisher.PublishOrderCreated(ctx, orderCreatedPayload(o)); err != nil {
			h.logger.ErrorContext(ctx, "failed to publish order created", "order_id", o.ID().String(), "error", err)
		}
	}

	notification := events.Notification{
		OrderID:      o.ID().String(),
		UserID:       o.UserID(),
		Contact:      o.Contact(),
		Status:       status,
		HawkerCenter: o.HawkerCenter(),
	}
	if err := h.publisher.PublishPaymentNotification(ctx, notification); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish payment notification", "order_id", o.ID().String(), "error", err)
	}
}

func orderCreatedPayload(o *order.Order) events.OrderCreated {
	stalls := make(map[string][]events.Dish)
	for stallName, items := range o.ItemsByStall() {
		dishes := make([]events.Dish, 0, len(items))
		for _, item := range items {
			dishes = append(dishes, events.Dish{
				Name:     item.DishName(),
				Quantity: item.Quantity(),
				WaitTime: item.WaitTime(),
				Price:    item.Price().Decimal(),
			})
		}
		stalls[stallName] = dishes
	}

	return events.OrderCreated{
		OrderID:      o.ID().String(),
		HawkerCenter: o.HawkerCenter(),
		UserID:       o.UserID(),
		Contact:      o.Contact(),
		Stalls:       stalls,
	}
}
