package commands

import (
	"errors"
	"strings"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/order"
	"hawkerflow/internal/pkg/errs"
	"hawkerflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderItem is one dish in an order request.
type SubmitOrderItem struct {
	StallName string
	DishName  string
	Quantity  int
	WaitTime  int
	Price     decimal.Decimal
}

// SubmitOrderCommand represents a customer placing and paying for an order.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand("", "u1", "+6590000000", "Maxwell", "tok_123", items, nil)
//	if err != nil {
//	    return err // wraps ErrInvalidOrder
//	}
//	result, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.OrderID
	userID       string
	contact      string
	hawkerCenter string
	token        string
	items        []order.Item
	amount       kernel.Money

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand validates an order request. An empty orderID is replaced
// by a generated one and a nil amount by Σ price × quantity. Every validation
// failure wraps ErrInvalidOrder.
func NewSubmitOrderCommand(
	orderID, userID, contact, hawkerCenter, token string,
	items []SubmitOrderItem,
	amount *decimal.Decimal,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		userID:       strings.TrimSpace(userID),
		contact:      strings.TrimSpace(contact),
		hawkerCenter: strings.TrimSpace(hawkerCenter),
		token:        strings.TrimSpace(token),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.requireText("userId", cmd.userID),
		cmd.requireText("contact", cmd.contact),
		cmd.requireText("hawkerCenter", cmd.hawkerCenter),
		cmd.requireText("token", cmd.token),
		cmd.setItems(items),
	); err != nil {
		return SubmitOrderCommand{}, invalidOrder(err)
	}

	if err := cmd.setAmount(amount); err != nil {
		return SubmitOrderCommand{}, invalidOrder(err)
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c SubmitOrderCommand) UserID() string {
	return c.userID
}

func (c SubmitOrderCommand) Contact() string {
	return c.contact
}

func (c SubmitOrderCommand) HawkerCenter() string {
	return c.hawkerCenter
}

// Token is the payment token forwarded to the payment collaborator.
func (c SubmitOrderCommand) Token() string {
	return c.token
}

func (c SubmitOrderCommand) Items() []order.Item {
	return c.items
}

func (c SubmitOrderCommand) Amount() kernel.Money {
	return c.amount
}

func (c *SubmitOrderCommand) setOrderID(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		c.orderID = kernel.GenerateOrderID()
		return nil
	}

	id, err := kernel.NewOrderID(value)
	if err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *SubmitOrderCommand) requireText(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func (c *SubmitOrderCommand) setItems(requested []SubmitOrderItem) error {
	if len(requested) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(requested))
	var errList []error
	for _, r := range requested {
		item, err := order.NewItem(r.StallName, r.DishName, r.Quantity, r.WaitTime, kernel.NewMoney(r.Price))
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = items
	return nil
}

func (c *SubmitOrderCommand) setAmount(amount *decimal.Decimal) error {
	total := order.TotalOf(c.items)
	if amount != nil {
		total = kernel.NewMoney(*amount)
	}
	if !total.IsPositive() {
		return errs.NewValueIsInvalidError("amount must be greater than 0")
	}
	c.amount = total
	return nil
}
