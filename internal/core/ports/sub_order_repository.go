package ports

import (
	"context"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/suborder"
)

// SubOrderRepository persists StallSubOrder aggregates and their dish lines.
type SubOrderRepository interface {
	// AddIfAbsent inserts the sub-order and its lines unless (stall, orderId)
	// already exists. It reports whether the sub-order was inserted.
	AddIfAbsent(ctx context.Context, aggregate *suborder.StallSubOrder) (bool, error)

	// GetForUpdate loads a sub-order and locks its row until the transaction
	// ends. A missing sub-order yields errs.ObjectNotFoundError.
	GetForUpdate(ctx context.Context, stall kernel.StallRef, orderID kernel.OrderID) (*suborder.StallSubOrder, error)

	// CompleteLine flips one open line to completed. It reports false when the
	// line was already completed.
	CompleteLine(
		ctx context.Context,
		stall kernel.StallRef,
		orderID kernel.OrderID,
		dishName string,
		at time.Time,
	) (bool, error)

	// Delete removes the sub-order; its lines cascade.
	Delete(ctx context.Context, stall kernel.StallRef, orderID kernel.OrderID) error

	// DeleteAllForStall removes every sub-order of the stall and returns how many were removed.
	DeleteAllForStall(ctx context.Context, stall kernel.StallRef) (int64, error)
}
