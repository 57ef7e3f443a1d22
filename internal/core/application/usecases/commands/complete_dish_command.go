package commands

import (
	"errors"
	"strings"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/errs"
	"hawkerflow/internal/pkg/guard"
)

var ErrCompleteDishCommandIsNotConstructed = errors.New(
	"CompleteDishCommand must be created via NewCompleteDishCommand constructor",
)

// CompleteDishCommand is sent by a vendor when one dish of an order is ready.
type CompleteDishCommand struct { //nolint:recvcheck //using for validation
	stall    kernel.StallRef
	orderID  kernel.OrderID
	dishName string

	guard guard.ConstructorGuard
}

// NewCompleteDishCommand validates the vendor's request. Failures wrap ErrInvalidOrder.
func NewCompleteDishCommand(hawkerCenter, stallName, orderID, dishName string) (CompleteDishCommand, error) {
	cmd := CompleteDishCommand{
		dishName: strings.TrimSpace(dishName),
		guard:    guard.NewConstructorGuard(),
	}

	stall, errStall := kernel.NewStallRef(hawkerCenter, stallName)
	id, errID := kernel.NewOrderID(orderID)
	var errDish error
	if cmd.dishName == "" {
		errDish = errs.NewValueIsRequiredError("dishName")
	}

	if err := errors.Join(errStall, errID, errDish); err != nil {
		return CompleteDishCommand{}, invalidOrder(err)
	}

	cmd.stall = stall
	cmd.orderID = id
	return cmd, nil
}

func (c CompleteDishCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDishCommandIsNotConstructed)
}

func (c CompleteDishCommand) Stall() kernel.StallRef {
	return c.stall
}

func (c CompleteDishCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c CompleteDishCommand) DishName() string {
	return c.dishName
}
