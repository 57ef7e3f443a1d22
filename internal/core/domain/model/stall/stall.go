// Package stall holds the per-stall running totals shown to vendors.
package stall

import (
	"errors"
	"fmt"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/errs"
)

var ErrAggregateIsNotConstructed = errors.New("Aggregate must be created via NewAggregate constructor")

// Aggregate tracks a stall's estimated wait time (minutes) and total earnings.
// Both values are adjusted by signed deltas and clamped at zero, so neither is
// ever negative.
//
// Storage applies the same clamping rule in a single UPDATE statement; the
// methods here define the rule and are used when a stall is loaded and
// rewritten as a whole, as the retention sweeper does.
type Aggregate struct {
	ref               kernel.StallRef
	estimatedWaitTime int
	totalEarned       kernel.Money

	isConstructed bool
}

// NewAggregate creates a stall with zero totals.
func NewAggregate(ref kernel.StallRef) (*Aggregate, error) {
	return RestoreAggregate(ref, 0, kernel.ZeroMoney)
}

// RestoreAggregate rebuilds a stall loaded from storage.
func RestoreAggregate(ref kernel.StallRef, estimatedWaitTime int, totalEarned kernel.Money) (*Aggregate, error) {
	a := &Aggregate{isConstructed: true}

	if err := errors.Join(
		a.setRef(ref),
		a.setEstimatedWaitTime(estimatedWaitTime),
		a.setTotalEarned(totalEarned),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Aggregate) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAggregateIsNotConstructed
	}
	return nil
}

func (a *Aggregate) Ref() kernel.StallRef {
	return a.ref
}

func (a *Aggregate) EstimatedWaitTime() int {
	return a.estimatedWaitTime
}

func (a *Aggregate) TotalEarned() kernel.Money {
	return a.totalEarned
}

// AdjustWait adds delta minutes, clamping the result at zero.
func (a *Aggregate) AdjustWait(delta int) {
	a.estimatedWaitTime = max(a.estimatedWaitTime+delta, 0)
}

// AdjustEarned adds delta, clamping the result at zero.
func (a *Aggregate) AdjustEarned(delta kernel.Money) {
	a.totalEarned = a.totalEarned.Add(delta).ClampZero()
}

// Reset zeroes both totals.
func (a *Aggregate) Reset() {
	a.estimatedWaitTime = 0
	a.totalEarned = kernel.ZeroMoney
}

func (a *Aggregate) setRef(ref kernel.StallRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	a.ref = ref
	return nil
}

func (a *Aggregate) setEstimatedWaitTime(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedWaitTime", fmt.Errorf("%d is negative", minutes))
	}
	a.estimatedWaitTime = minutes
	return nil
}

func (a *Aggregate) setTotalEarned(amount kernel.Money) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalEarned", fmt.Errorf("%s is negative", amount))
	}
	a.totalEarned = amount
	return nil
}
