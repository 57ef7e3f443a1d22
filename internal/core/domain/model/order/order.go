package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a customer's purchase at one hawker center. It is the aggregate root
// written by order intake and records the payment outcome.
//
// Order follows these invariants:
//   - Must have a valid identifier, userId, contact and hawker center
//   - Must contain at least one item; (stall, dish) pairs are unique
//   - Amount must be greater than zero
//   - Payment status starts at Pending and moves once to Success or Failed
type Order struct {
	id           kernel.OrderID
	userID       string
	contact      string
	hawkerCenter string
	items        []Item
	amount       kernel.Money
	status       PaymentStatus
	createdAt    time.Time

	isConstructed bool
}

// NewOrder creates a pending order.
//
// Example:
//
//	item, _ := order.NewItem("S1", "D1", 2, 5, kernel.MoneyFromInt(3))
//	o, err := order.NewOrder(id, "u1", "+6590000000", "Maxwell", []order.Item{item},
//	    order.TotalOf([]order.Item{item}), now)
func NewOrder(
	id kernel.OrderID,
	userID, contact, hawkerCenter string,
	items []Item,
	amount kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, userID, contact, hawkerCenter, items, amount, Pending, createdAt)
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(
	id kernel.OrderID,
	userID, contact, hawkerCenter string,
	items []Item,
	amount kernel.Money,
	status PaymentStatus,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setContact(contact),
		o.setHawkerCenter(hawkerCenter),
		o.setItems(items),
		o.setAmount(amount),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// TotalOf sums price × quantity over items. It is used when the caller omits the amount.
func TotalOf(items []Item) kernel.Money {
	total := kernel.ZeroMoney
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) UserID() string {
	return o.userID
}

func (o *Order) Contact() string {
	return o.contact
}

func (o *Order) HawkerCenter() string {
	return o.hawkerCenter
}

// Items returns a copy of the ordered dishes.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) Amount() kernel.Money {
	return o.amount
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StallNames returns the distinct stalls in the order, sorted.
func (o *Order) StallNames() []string {
	names := make([]string, 0, len(o.items))
	for _, item := range o.items {
		if !slices.Contains(names, item.StallName()) {
			names = append(names, item.StallName())
		}
	}
	slices.Sort(names)
	return names
}

// ItemsByStall groups the ordered dishes by stall name.
func (o *Order) ItemsByStall() map[string][]Item {
	grouped := make(map[string][]Item)
	for _, item := range o.items {
		grouped[item.StallName()] = append(grouped[item.StallName()], item)
	}
	return grouped
}

// MarkPaid records a successful payment.
func (o *Order) MarkPaid() error {
	status, err := o.status.Succeed()
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

// MarkPaymentFailed records a declined or timed out payment.
func (o *Order) MarkPaymentFailed() error {
	status, err := o.status.Fail()
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	o.userID = userID
	return nil
}

func (o *Order) setContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return errs.NewValueIsRequiredError("contact")
	}
	o.contact = contact
	return nil
}

func (o *Order) setHawkerCenter(hawkerCenter string) error {
	hawkerCenter = strings.TrimSpace(hawkerCenter)
	if hawkerCenter == "" {
		return errs.NewValueIsRequiredError("hawkerCenter")
	}
	o.hawkerCenter = hawkerCenter
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[[2]string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		key := [2]string{item.StallName(), item.DishName()}
		if _, dup := seen[key]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("dish %q is listed twice for stall %q", item.DishName(), item.StallName()),
			)
		}
		seen[key] = struct{}{}
	}

	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	o.amount = amount
	return nil
}

func (o *Order) setStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
