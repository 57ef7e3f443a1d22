package queries

import (
	"errors"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/guard"
)

var (
	ErrGetStallSummaryQueryIsNotConstructed = errors.New(
		"GetStallSummaryQuery must be created via NewGetStallSummaryQuery constructor",
	)
)

// GetStallSummaryQuery reads a stall's estimated wait time and total earnings.
// Both the waitTime and totalEarned endpoints are served by it.
type GetStallSummaryQuery struct {
	stall kernel.StallRef
	guard guard.ConstructorGuard
}

func NewGetStallSummaryQuery(hawkerCenter, stallName string) (GetStallSummaryQuery, error) {
	ref, err := kernel.NewStallRef(hawkerCenter, stallName)
	if err != nil {
		return GetStallSummaryQuery{}, err
	}

	return GetStallSummaryQuery{stall: ref, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStallSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetStallSummaryQueryIsNotConstructed)
}

func (q GetStallSummaryQuery) Stall() kernel.StallRef {
	return q.stall
}

// GetStallSummaryQueryResponse carries the stall totals. EstimatedWaitTime is in minutes.
type GetStallSummaryQueryResponse struct {
	Stall             kernel.StallRef
	EstimatedWaitTime int
	TotalEarned       kernel.Money
}
