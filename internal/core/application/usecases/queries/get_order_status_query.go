package queries

import (
	"errors"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/order"
	"hawkerflow/internal/pkg/guard"
)

var (
	ErrGetOrderStatusQueryIsNotConstructed = errors.New(
		"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
	)
)

// GetOrderStatusQuery reads the payment status of one order.
//
// Example:
//
//	query, err := NewGetOrderStatusQuery("O1")
//	if err != nil {
//	    return err
//	}
//
//	status, err := handler.Handle(ctx, query)
//	fmt.Println(status.Status) // pending, success or failed
type GetOrderStatusQuery struct {
	orderID kernel.OrderID
	guard   guard.ConstructorGuard
}

func NewGetOrderStatusQuery(orderID string) (GetOrderStatusQuery, error) {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return GetOrderStatusQuery{}, err
	}

	return GetOrderStatusQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) OrderID() kernel.OrderID {
	return q.orderID
}

type GetOrderStatusQueryResponse struct {
	OrderID kernel.OrderID
	Status  order.PaymentStatus
}
