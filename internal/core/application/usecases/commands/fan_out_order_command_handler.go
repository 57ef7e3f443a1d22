package commands

import (
	"context"
	"log/slog"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/suborder"
	"hawkerflow/internal/core/domain/services"
	"hawkerflow/internal/pkg/clock"
)

// FanOutResult counts sub-orders created now and sub-orders that already existed.
type FanOutResult struct {
	Created int
	Skipped int
}

// FanOutOrderCommandHandler creates one sub-order per stall and credits the
// stall's estimated wait time. Each stall is handled in its own transaction:
// the stall row is ensured, the sub-order is inserted only if absent, and the
// wait time is increased only when the insert happened. A redelivered event
// therefore never credits a stall twice.
type FanOutOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	planner    services.SubOrderPlanner
	clock      clock.Clock
	logger     *slog.Logger
}

func NewFanOutOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	clk clock.Clock,
	logger *slog.Logger,
) FanOutOrderCommandHandler {
	return FanOutOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewSubOrderPlanner(),
		clock:      clk,
		logger:     logger.With("component", "fan_out_handler"),
	}
}

func (h *FanOutOrderCommandHandler) Handle(ctx context.Context, cmd FanOutOrderCommand) (FanOutResult, error) {
	if err := cmd.Validate(); err != nil {
		return FanOutResult{}, err
	}

	subOrders, err := h.planner.Plan(
		cmd.OrderID(),
		cmd.HawkerCenter(),
		cmd.UserID(),
		cmd.Contact(),
		cmd.Items(),
		h.clock.Now(),
	)
	if err != nil {
		return FanOutResult{}, invalidOrder(err)
	}

	var result FanOutResult
	for _, s := range subOrders {
		created, err := h.fanOutStall(ctx, s)
		if err != nil {
			return result, err
		}
		if created {
			result.Created++
			h.logger.InfoContext(ctx, "sub-order created",
				"order_id", s.OrderID().String(), "stall", s.Stall().String(), "wait_added", s.TotalWait())
		} else {
			result.Skipped++
			h.logger.InfoContext(ctx, "sub-order already exists",
				"order_id", s.OrderID().String(), "stall", s.Stall().String())
		}
	}

	return result, nil
}

func (h *FanOutOrderCommandHandler) fanOutStall(ctx context.Context, s *suborder.StallSubOrder) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stalls := uow.StallRepository()
	if err := stalls.EnsureExists(ctx, s.Stall()); err != nil {
		return false, err
	}

	created, err := uow.SubOrderRepository().AddIfAbsent(ctx, s)
	if err != nil {
		return false, err
	}

	if created {
		if err = stalls.AdjustTotals(ctx, s.Stall(), s.TotalWait(), kernel.ZeroMoney); err != nil {
			return false, notFound(ErrStallNotFound, err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return created, nil
}
