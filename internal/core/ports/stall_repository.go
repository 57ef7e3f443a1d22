package ports

import (
	"context"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/stall"
)

// StallRepository persists stall aggregates.
type StallRepository interface {
	// EnsureExists creates the stall with zero totals if it is missing.
	EnsureExists(ctx context.Context, ref kernel.StallRef) error

	// AdjustTotals applies signed deltas in one statement, clamping both
	// totals at zero. A missing stall yields errs.ObjectNotFoundError.
	AdjustTotals(ctx context.Context, ref kernel.StallRef, waitDelta int, earnedDelta kernel.Money) error

	Get(ctx context.Context, ref kernel.StallRef) (*stall.Aggregate, error)

	// Update overwrites both totals.
	Update(ctx context.Context, aggregate *stall.Aggregate) error

	// ForEachBatch streams every stall in batches of size.
	ForEachBatch(ctx context.Context, size int, fn func(batch []*stall.Aggregate) error) error
}
