// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"hawkerflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	SubOrderRepoFactory interface {
		SubOrderRepository() ports.SubOrderRepository
	}

	StallRepoFactory interface {
		StallRepository() ports.StallRepository
	}

	ActivityRepoFactory interface {
		ActivityRepository() ports.ActivityRepository
	}

	// OrderUoW is used by order intake, the only writer of orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// FulfillmentUoW covers sub-orders and stall aggregates, which always
	// change together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   subOrders := uow.SubOrderRepository()
	//   stalls := uow.StallRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	FulfillmentUoW interface {
		TxManager
		SubOrderRepoFactory
		StallRepoFactory
	}

	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	ActivityUoW interface {
		TxManager
		ActivityRepoFactory
	}

	ActivityUoWFactory interface {
		Create() ActivityUoW
	}
)
