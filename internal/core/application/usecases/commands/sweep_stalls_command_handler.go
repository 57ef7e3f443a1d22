package commands

import (
	"context"
	"log/slog"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/stall"
)

// SweepResult summarizes one sweep.
type SweepResult struct {
	StallsScanned   int
	StallsReset     int
	SubOrdersPurged int64
}

// SweepStallsCommandHandler streams every stall. For a stall with leftover
// sub-orders it deletes them and zeroes the stall's totals in one transaction.
// Stalls without sub-orders are left untouched.
type SweepStallsCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	logger     *slog.Logger
}

func NewSweepStallsCommandHandler(uowFactory FulfillmentUoWFactory, logger *slog.Logger) SweepStallsCommandHandler {
	return SweepStallsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "sweep_stalls_handler"),
	}
}

func (h *SweepStallsCommandHandler) Handle(ctx context.Context, cmd SweepStallsCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	var result SweepResult
	reader := h.uowFactory.Create()
	err := reader.StallRepository().ForEachBatch(ctx, cmd.BatchSize(), func(batch []*stall.Aggregate) error {
		for _, s := range batch {
			result.StallsScanned++

			purged, err := h.sweepStall(ctx, s.Ref())
			if err != nil {
				return err
			}
			if purged > 0 {
				result.StallsReset++
				result.SubOrdersPurged += purged
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	h.logger.InfoContext(ctx, "sweep finished",
		"stalls_scanned", result.StallsScanned,
		"stalls_reset", result.StallsReset,
		"sub_orders_purged", result.SubOrdersPurged)
	return result, nil
}

func (h *SweepStallsCommandHandler) sweepStall(ctx context.Context, ref kernel.StallRef) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.SubOrderRepository().DeleteAllForStall(ctx, ref)
	if err != nil {
		return 0, err
	}
	if purged == 0 {
		return 0, nil
	}

	stalls := uow.StallRepository()
	aggregate, err := stalls.Get(ctx, ref)
	if err != nil {
		return 0, notFound(ErrStallNotFound, err)
	}

	aggregate.Reset()
	if err = stalls.Update(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "stall reset", "stall", ref.String(), "sub_orders_purged", purged)
	return purged, nil
}
