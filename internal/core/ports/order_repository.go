// Package ports defines the contracts between the hawkerflow core and its adapters:
// repositories, the unit of work, the broker publisher and the external
// payment and notification collaborators.
package ports

import (
	"context"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates. Only order intake writes orders.
type OrderRepository interface {
	// AddIfAbsent inserts the order unless one with the same id exists.
	// It reports whether the order was inserted.
	AddIfAbsent(ctx context.Context, aggregate *order.Order) (bool, error)

	// Update persists the payment outcome of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order. A missing order yields errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)
}
