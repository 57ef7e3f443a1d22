package services

import (
	"errors"
	"slices"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/order"
	"hawkerflow/internal/core/domain/model/suborder"
	"hawkerflow/internal/pkg/errs"
)

// ErrNothingToPlan is returned when an order carries no dishes.
var ErrNothingToPlan = errs.NewValueIsRequiredError("items")

// SubOrderPlanner is a domain service that splits a paid order into one
// StallSubOrder per stall.
//
// Business rules:
//   - Every sub-order belongs to the order's hawker center
//   - Each ordered dish becomes one started DishLine
//   - Stalls come out sorted by name so that repeated planning is deterministic
//
// Example usage:
//
//	planner := services.NewSubOrderPlanner()
//	subOrders, err := planner.Plan(orderID, "Maxwell", "u1", "+6590000000", items, now)
//	if err != nil {
//	    return err
//	}
//	for _, s := range subOrders {
//	    // persist s once per (stall, order)
//	}
type SubOrderPlanner struct{}

func NewSubOrderPlanner() SubOrderPlanner {
	return SubOrderPlanner{}
}

// Plan builds the sub-orders. All dish lines start at startedAt.
func (SubOrderPlanner) Plan(
	orderID kernel.OrderID,
	hawkerCenter, userID, contact string,
	items []order.Item,
	startedAt time.Time,
) ([]*suborder.StallSubOrder, error) {
	if len(items) == 0 {
		return nil, ErrNothingToPlan
	}

	byStall := make(map[string][]*suborder.DishLine)
	stallNames := make([]string, 0)
	var errList []error

	for _, item := range items {
		if err := item.Validate(); err != nil {
			errList = append(errList, err)
			continue
		}
		line, err := suborder.NewDishLine(item.DishName(), item.Quantity(), item.WaitTime(), item.Price(), startedAt)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if _, seen := byStall[item.StallName()]; !seen {
			stallNames = append(stallNames, item.StallName())
		}
		byStall[item.StallName()] = append(byStall[item.StallName()], line)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	slices.Sort(stallNames)

	subOrders := make([]*suborder.StallSubOrder, 0, len(stallNames))
	for _, name := range stallNames {
		ref, err := kernel.NewStallRef(hawkerCenter, name)
		if err != nil {
			return nil, err
		}
		s, err := suborder.NewStallSubOrder(ref, orderID, userID, contact, startedAt, byStall[name])
		if err != nil {
			return nil, err
		}
		subOrders = append(subOrders, s)
	}

	return subOrders, nil
}
