package commands

import (
	"errors"
	"strings"

	"hawkerflow/internal/events"
	"hawkerflow/internal/pkg/errs"
	"hawkerflow/internal/pkg/guard"
)

var ErrNotifyCustomerCommandIsNotConstructed = errors.New(
	"NotifyCustomerCommand must be created via NewNotifyCustomerCommand constructor",
)

// NotifyCustomerCommand forwards a payment or completion notification to the customer.
type NotifyCustomerCommand struct { //nolint:recvcheck //using for validation
	notification events.Notification

	guard guard.ConstructorGuard
}

func NewNotifyCustomerCommand(n events.Notification) (NotifyCustomerCommand, error) {
	var errOrder, errContact, errStatus error
	if strings.TrimSpace(n.OrderID) == "" {
		errOrder = errs.NewValueIsRequiredError("orderId")
	}
	if strings.TrimSpace(n.Contact) == "" {
		errContact = errs.NewValueIsRequiredError("contact")
	}
	switch n.Status {
	case events.StatusSuccess, events.StatusFailed, events.StatusCompleted:
	default:
		errStatus = errs.NewValueIsInvalidError("status " + n.Status)
	}

	if err := errors.Join(errOrder, errContact, errStatus); err != nil {
		return NotifyCustomerCommand{}, invalidOrder(err)
	}

	return NotifyCustomerCommand{notification: n, guard: guard.NewConstructorGuard()}, nil
}

func (c NotifyCustomerCommand) Validate() error {
	return c.guard.Validate(ErrNotifyCustomerCommandIsNotConstructed)
}

func (c NotifyCustomerCommand) Notification() events.Notification {
	return c.notification
}
