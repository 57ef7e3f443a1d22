package commands

import (
	"context"
	"log/slog"

	"hawkerflow/internal/core/domain/services"
	"hawkerflow/internal/core/ports"
	"hawkerflow/internal/events"
	"hawkerflow/internal/pkg/clock"
)

// CompleteDishResult tells the vendor what the completion changed.
type CompleteDishResult struct {
	// DishCompleted is false when the dish had already been completed.
	DishCompleted bool
	// OrderCompleted is true when this completion finished the stall's sub-order.
	OrderCompleted bool
}

// CompleteDishCommandHandler completes one dish line.
//
// Everything happens in one transaction that holds a row lock on the
// sub-order: the guarded line update, the stall aggregate adjustment and,
// when the last line completes, the deletion of the sub-order. Completion
// events are published after commit, so each sub-order produces exactly one
// notification and one activity record.
type CompleteDishCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	publisher  ports.EventPublisher
	reporter   services.CompletionReporter
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCompleteDishCommandHandler(
	uowFactory FulfillmentUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CompleteDishCommandHandler {
	return CompleteDishCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		reporter:   services.NewCompletionReporter(),
		clock:      clk,
		logger:     logger.With("component", "complete_dish_handler"),
	}
}

func (h *CompleteDishCommandHandler) Handle(ctx context.Context, cmd CompleteDishCommand) (CompleteDishResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteDishResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteDishResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	subOrders := uow.SubOrderRepository()
	s, err := subOrders.GetForUpdate(ctx, cmd.Stall(), cmd.OrderID())
	if err != nil {
		return CompleteDishResult{}, notFound(ErrOrderNotFound, err)
	}

	line, changed, err := s.CompleteDish(cmd.DishName(), h.clock.Now())
	if err != nil {
		return CompleteDishResult{}, notFound(ErrDishNotFound, err)
	}
	if !changed {
		h.logger.InfoContext(ctx, "dish already completed",
			"order_id", cmd.OrderID().String(), "stall", cmd.Stall().String(), "dish", cmd.DishName())
		return CompleteDishResult{}, nil
	}

	updated, err := subOrders.CompleteLine(ctx, cmd.Stall(), cmd.OrderID(), line.Name(), *line.TimeCompleted())
	if err != nil {
		return CompleteDishResult{}, notFound(ErrDishNotFound, err)
	}
	if !updated {
		return CompleteDishResult{}, nil
	}

	err = uow.StallRepository().AdjustTotals(ctx, cmd.Stall(), -line.WaitContribution(), line.Earnings())
	if err != nil {
		return CompleteDishResult{}, notFound(ErrStallNotFound, err)
	}

	var report *services.CompletionReport
	if s.IsComplete() {
		r, reportErr := h.reporter.Report(s)
		if reportErr != nil {
			return CompleteDishResult{}, reportErr
		}
		if err = subOrders.Delete(ctx, cmd.Stall(), cmd.OrderID()); err != nil {
			return CompleteDishResult{}, err
		}
		report = &r
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteDishResult{}, err
	}

	h.logger.InfoContext(ctx, "dish completed",
		"order_id", cmd.OrderID().String(), "stall", cmd.Stall().String(), "dish", line.Name(),
		"wait_removed", line.WaitContribution(), "earned", line.Earnings().String())

	if report != nil {
		h.publishCompletion(ctx, *report)
	}

	return CompleteDishResult{DishCompleted: true, OrderCompleted: report != nil}, nil
}

// publishCompletion runs after commit, so it is detached from the caller and
// bounded on its own.
func (h *CompleteDishCommandHandler) publishCompletion(ctx context.Context, report services.CompletionReport) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	activity := make(events.Activity, len(report.Dishes))
	for _, d := range report.Dishes {
		activity[d.Name] = events.ActivityDish{
			HawkerCenter:   report.Stall.HawkerCenter(),
			StallName:      report.Stall.StallName(),
			Quantity:       d.Quantity,
			OrderStartTime: d.StartedAt,
			OrderEndTime:   d.CompletedAt,
		}
	}

	notification := events.Notification{
		OrderID:      report.OrderID.String(),
		UserID:       report.UserID,
		Contact:      report.Contact,
		Status:       events.StatusCompleted,
		HawkerCenter: report.Stall.HawkerCenter(),
		StallName:    report.Stall.StallName(),
	}

	if err := h.publisher.PublishCompletion(ctx, activity, notification); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish completion",
			"order_id", report.OrderID.String(), "stall", report.Stall.String(), "error", err)
		return
	}

	h.logger.InfoContext(ctx, "sub-order completed",
		"order_id", report.OrderID.String(), "stall", report.Stall.String())
}
