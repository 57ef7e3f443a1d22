package commands

import (
	"errors"

	"hawkerflow/internal/pkg/guard"
)

// DefaultSweepBatchSize is how many stalls are loaded per batch.
const DefaultSweepBatchSize = 100

var ErrSweepStallsCommandIsNotConstructed = errors.New(
	"SweepStallsCommand must be created via NewSweepStallsCommand constructor",
)

// SweepStallsCommand purges leftover sub-orders and resets the totals of the
// stalls that had any.
type SweepStallsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewSweepStallsCommand uses DefaultSweepBatchSize when batchSize is not positive.
func NewSweepStallsCommand(batchSize int) SweepStallsCommand {
	if batchSize <= 0 {
		batchSize = DefaultSweepBatchSize
	}
	return SweepStallsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}
}

func (c SweepStallsCommand) Validate() error {
	return c.guard.Validate(ErrSweepStallsCommandIsNotConstructed)
}

func (c SweepStallsCommand) BatchSize() int {
	return c.batchSize
}
