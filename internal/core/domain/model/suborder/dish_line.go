package suborder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/errs"
	"hawkerflow/internal/pkg/guard"
)

// ErrDishLineIsNotConstructed is returned for a zero-value DishLine.
var ErrDishLineIsNotConstructed = errors.New("DishLine must be created via NewDishLine constructor")

// DishLine is one dish of a stall sub-order.
//
// Lifecycle: Started → Completed. Completed is terminal and TimeCompleted is set
// exactly when Completed is true, never earlier than TimeStarted.
type DishLine struct {
	name          string
	quantity      int
	waitTime      int
	price         kernel.Money
	completed     bool
	timeStarted   time.Time
	timeCompleted *time.Time

	guard guard.ConstructorGuard
}

// NewDishLine creates a started, not yet completed line.
func NewDishLine(name string, quantity, waitTime int, price kernel.Money, startedAt time.Time) (*DishLine, error) {
	return RestoreDishLine(name, quantity, waitTime, price, false, startedAt, nil)
}

// RestoreDishLine rebuilds a line loaded from storage.
func RestoreDishLine(
	name string,
	quantity, waitTime int,
	price kernel.Money,
	completed bool,
	timeStarted time.Time,
	timeCompleted *time.Time,
) (*DishLine, error) {
	line := &DishLine{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		line.setName(name),
		line.setQuantity(quantity),
		line.setWaitTime(waitTime),
		line.setPrice(price),
		line.setTimes(completed, timeStarted, timeCompleted),
	); err != nil {
		return nil, err
	}

	return line, nil
}

func (d *DishLine) Validate() error {
	if d == nil {
		return ErrDishLineIsNotConstructed
	}
	return d.guard.Validate(ErrDishLineIsNotConstructed)
}

func (d *DishLine) Name() string {
	return d.name
}

func (d *DishLine) Quantity() int {
	return d.quantity
}

// WaitTime is the per-unit preparation time in minutes.
func (d *DishLine) WaitTime() int {
	return d.waitTime
}

// Price is the unit price.
func (d *DishLine) Price() kernel.Money {
	return d.price
}

func (d *DishLine) IsCompleted() bool {
	return d.completed
}

func (d *DishLine) TimeStarted() time.Time {
	return d.timeStarted
}

// TimeCompleted is nil until the line is completed.
func (d *DishLine) TimeCompleted() *time.Time {
	if d.timeCompleted == nil {
		return nil
	}
	t := *d.timeCompleted
	return &t
}

// WaitContribution is the number of minutes this line adds to the stall's
// estimated wait time: waitTime × quantity.
func (d *DishLine) WaitContribution() int {
	return d.waitTime * d.quantity
}

// Earnings is the amount this line adds to the stall's total once completed.
func (d *DishLine) Earnings() kernel.Money {
	return d.price.Times(d.quantity)
}

// Complete marks the line completed at the given time and reports whether the
// state changed. Completing an already completed line is a no-op. A completion
// time earlier than TimeStarted is raised to TimeStarted.
func (d *DishLine) Complete(at time.Time) bool {
	if d.completed {
		return false
	}
	if at.Before(d.timeStarted) {
		at = d.timeStarted
	}
	d.completed = true
	d.timeCompleted = &at
	return true
}

func (d *DishLine) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("dishName")
	}
	d.name = name
	return nil
}

func (d *DishLine) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	d.quantity = quantity
	return nil
}

func (d *DishLine) setWaitTime(waitTime int) error {
	if waitTime < 0 {
		return errs.NewValueIsInvalidErrorWithCause("waitTime", fmt.Errorf("%d is negative", waitTime))
	}
	d.waitTime = waitTime
	return nil
}

func (d *DishLine) setPrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	d.price = price
	return nil
}

func (d *DishLine) setTimes(completed bool, timeStarted time.Time, timeCompleted *time.Time) error {
	if timeStarted.IsZero() {
		return errs.NewValueIsRequiredError("timeStarted")
	}
	if completed != (timeCompleted != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"timeCompleted",
			fmt.Errorf("completed is %t but timeCompleted is set: %t", completed, timeCompleted != nil),
		)
	}
	if timeCompleted != nil && timeCompleted.Before(timeStarted) {
		return errs.NewValueIsInvalidErrorWithCause(
			"timeCompleted",
			fmt.Errorf("%s is before timeStarted %s", timeCompleted.Format(time.RFC3339), timeStarted.Format(time.RFC3339)),
		)
	}

	d.completed = completed
	d.timeStarted = timeStarted
	if timeCompleted != nil {
		t := *timeCompleted
		d.timeCompleted = &t
	}
	return nil
}
