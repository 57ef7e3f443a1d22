// Package activity records finished dishes for weekly wait-time reporting.
package activity

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/errs"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one completed dish of one order at one stall.
type Entry struct {
	orderID   kernel.OrderID
	stall     kernel.StallRef
	dishName  string
	quantity  int
	startedAt time.Time
	endedAt   time.Time

	isConstructed bool
}

func NewEntry(
	orderID kernel.OrderID,
	stall kernel.StallRef,
	dishName string,
	quantity int,
	startedAt, endedAt time.Time,
) (*Entry, error) {
	e := &Entry{isConstructed: true}

	var errDish, errQuantity, errTimes error
	dishName = strings.TrimSpace(dishName)
	if dishName == "" {
		errDish = errs.NewValueIsRequiredError("dishName")
	}
	if quantity <= 0 {
		errQuantity = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if startedAt.IsZero() || endedAt.IsZero() {
		errTimes = errs.NewValueIsRequiredError("orderStartTime and orderEndTime")
	} else if endedAt.Before(startedAt) {
		errTimes = errs.NewValueIsInvalidErrorWithCause("orderEndTime", fmt.Errorf("%s is before orderStartTime", endedAt.Format(time.RFC3339)))
	}

	if err := errors.Join(orderID.Validate(), stall.Validate(), errDish, errQuantity, errTimes); err != nil {
		return nil, err
	}

	e.orderID = orderID
	e.stall = stall
	e.dishName = dishName
	e.quantity = quantity
	e.startedAt = startedAt
	e.endedAt = endedAt
	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) OrderID() kernel.OrderID {
	return e.orderID
}

func (e *Entry) Stall() kernel.StallRef {
	return e.stall
}

func (e *Entry) DishName() string {
	return e.dishName
}

func (e *Entry) Quantity() int {
	return e.quantity
}

func (e *Entry) StartedAt() time.Time {
	return e.startedAt
}

func (e *Entry) EndedAt() time.Time {
	return e.endedAt
}

// Duration is how long the dish took from order start to completion.
func (e *Entry) Duration() time.Duration {
	return e.endedAt.Sub(e.startedAt)
}

// WeekID is the ISO week bucket of the completion time.
func (e *Entry) WeekID() string {
	return WeekID(e.endedAt)
}

// WeekID buckets a time by ISO week, formatted "2025-wk13". The ISO year is
// used, so 2024-12-30 belongs to "2025-wk01".
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-wk%02d", year, week)
}

var weekIDPattern = regexp.MustCompile(`^(\d{4})-wk(\d{2})$`)

// ParseWeekID checks that value is a week id as produced by WeekID.
func ParseWeekID(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.NewValueIsRequiredError("weekId")
	}

	match := weekIDPattern.FindStringSubmatch(value)
	if match == nil {
		return "", errs.NewValueIsInvalidErrorWithCause("weekId", fmt.Errorf("%q is not of the form 2025-wk13", value))
	}
	week, _ := strconv.Atoi(match[2])
	if week < 1 || week > 53 {
		return "", errs.NewValueIsOutOfRangeError("weekId", week, 1, 53)
	}
	return value, nil
}
