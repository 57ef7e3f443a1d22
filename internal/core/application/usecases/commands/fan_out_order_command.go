package commands

import (
	"errors"
	"strings"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/order"
	"hawkerflow/internal/events"
	"hawkerflow/internal/pkg/errs"
	"hawkerflow/internal/pkg/guard"
)

var ErrFanOutOrderCommandIsNotConstructed = errors.New(
	"FanOutOrderCommand must be created via NewFanOutOrderCommand constructor",
)

// FanOutOrderCommand splits a paid order into per-stall sub-orders.
type FanOutOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.OrderID
	hawkerCenter string
	userID       string
	contact      string
	items        []order.Item

	guard guard.ConstructorGuard
}

// NewFanOutOrderCommand builds the command from an order-created event.
// Validation failures wrap ErrInvalidOrder.
func NewFanOutOrderCommand(payload events.OrderCreated) (FanOutOrderCommand, error) {
	cmd := FanOutOrderCommand{
		hawkerCenter: strings.TrimSpace(payload.HawkerCenter),
		userID:       strings.TrimSpace(payload.UserID),
		contact:      strings.TrimSpace(payload.Contact),
		guard:        guard.NewConstructorGuard(),
	}

	orderID, errID := kernel.NewOrderID(payload.OrderID)
	cmd.orderID = orderID

	var errHawkerCenter error
	if cmd.hawkerCenter == "" {
		errHawkerCenter = errs.NewValueIsRequiredError("hawkerCenter")
	}

	if err := errors.Join(errID, errHawkerCenter, cmd.setItems(payload.Stalls)); err != nil {
		return FanOutOrderCommand{}, invalidOrder(err)
	}

	return cmd, nil
}

func (c FanOutOrderCommand) Validate() error {
	return c.guard.Validate(ErrFanOutOrderCommandIsNotConstructed)
}

func (c FanOutOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c FanOutOrderCommand) HawkerCenter() string {
	return c.hawkerCenter
}

func (c FanOutOrderCommand) UserID() string {
	return c.userID
}

func (c FanOutOrderCommand) Contact() string {
	return c.contact
}

func (c FanOutOrderCommand) Items() []order.Item {
	return c.items
}

func (c *FanOutOrderCommand) setItems(stalls map[string][]events.Dish) error {
	if len(stalls) == 0 {
		return errs.NewValueIsRequiredError("stalls")
	}

	var errList []error
	for stallName, dishes := range stalls {
		for _, d := range dishes {
			item, err := order.NewItem(stallName, d.Name, d.Quantity, d.WaitTime, kernel.NewMoney(d.Price))
			if err != nil {
				errList = append(errList, err)
				continue
			}
			c.items = append(c.items, item)
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	if len(c.items) == 0 {
		return errs.NewValueIsRequiredError("dishes")
	}
	return nil
}
