package commands

import (
	"errors"
	"slices"

	"hawkerflow/internal/core/domain/model/activity"
	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/events"
	"hawkerflow/internal/pkg/errs"
	"hawkerflow/internal/pkg/guard"
)

var ErrRecordActivityCommandIsNotConstructed = errors.New(
	"RecordActivityCommand must be created via NewRecordActivityCommand constructor",
)

// RecordActivityCommand stores the completed dishes of one stall sub-order.
type RecordActivityCommand struct { //nolint:recvcheck //using for validation
	entries []*activity.Entry

	guard guard.ConstructorGuard
}

// NewRecordActivityCommand builds one entry per dish. orderID comes from the
// envelope's correlation id. Failures wrap ErrInvalidOrder.
func NewRecordActivityCommand(orderID string, payload events.Activity) (RecordActivityCommand, error) {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return RecordActivityCommand{}, invalidOrder(err)
	}
	if len(payload) == 0 {
		return RecordActivityCommand{}, invalidOrder(errs.NewValueIsRequiredError("activity"))
	}

	names := make([]string, 0, len(payload))
	for name := range payload {
		names = append(names, name)
	}
	slices.Sort(names)

	entries := make([]*activity.Entry, 0, len(payload))
	var errList []error
	for _, name := range names {
		d := payload[name]
		ref, refErr := kernel.NewStallRef(d.HawkerCenter, d.StallName)
		if refErr != nil {
			errList = append(errList, refErr)
			continue
		}
		entry, entryErr := activity.NewEntry(id, ref, name, d.Quantity, d.OrderStartTime, d.OrderEndTime)
		if entryErr != nil {
			errList = append(errList, entryErr)
			continue
		}
		entries = append(entries, entry)
	}
	if err = errors.Join(errList...); err != nil {
		return RecordActivityCommand{}, invalidOrder(err)
	}

	return RecordActivityCommand{entries: entries, guard: guard.NewConstructorGuard()}, nil
}

func (c RecordActivityCommand) Validate() error {
	return c.guard.Validate(ErrRecordActivityCommandIsNotConstructed)
}

func (c RecordActivityCommand) Entries() []*activity.Entry {
	return c.entries
}
