package commands

import (
	"context"
	"log/slog"
)

// RecordActivityCommandHandler writes activity entries. Entries already stored
// for the same (order, stall, dish) are skipped, so redelivery is harmless.
type RecordActivityCommandHandler struct {
	uowFactory ActivityUoWFactory
	logger     *slog.Logger
}

func NewRecordActivityCommandHandler(uowFactory ActivityUoWFactory, logger *slog.Logger) RecordActivityCommandHandler {
	return RecordActivityCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "record_activity_handler"),
	}
}

func (h *RecordActivityCommandHandler) Handle(ctx context.Context, cmd RecordActivityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stored, err := uow.ActivityRepository().AddAll(ctx, cmd.Entries())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.DebugContext(ctx, "activity recorded", "entries", len(cmd.Entries()), "stored", stored)
	return nil
}
