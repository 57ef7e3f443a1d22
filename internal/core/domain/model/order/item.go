package order

import (
	"errors"
	"fmt"
	"strings"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/errs"
	"hawkerflow/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created via NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one dish ordered from one stall.
type Item struct {
	stallName string
	dishName  string
	quantity  int
	waitTime  int
	price     kernel.Money

	guard guard.ConstructorGuard
}

// NewItem validates a dish selection. waitTime is the per-unit preparation time in
// minutes and price is the unit price.
func NewItem(stallName, dishName string, quantity, waitTime int, price kernel.Money) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setStallName(stallName),
		item.setDishName(dishName),
		item.setQuantity(quantity),
		item.setWaitTime(waitTime),
		item.setPrice(price),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) StallName() string {
	return i.stallName
}

func (i Item) DishName() string {
	return i.dishName
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) WaitTime() int {
	return i.waitTime
}

func (i Item) Price() kernel.Money {
	return i.price
}

// Subtotal is price × quantity.
func (i Item) Subtotal() kernel.Money {
	return i.price.Times(i.quantity)
}

func (i *Item) setStallName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("stallName")
	}
	i.stallName = name
	return nil
}

func (i *Item) setDishName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("dishName")
	}
	i.dishName = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setWaitTime(waitTime int) error {
	if waitTime < 0 {
		return errs.NewValueIsInvalidErrorWithCause("waitTime", fmt.Errorf("%d is negative", waitTime))
	}
	i.waitTime = waitTime
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}
