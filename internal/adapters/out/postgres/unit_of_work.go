// Package postgres provides the GORM-based implementation of the Unit of Work pattern
// and the schema migration for every repository table.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// after Begin run inside that transaction; before Begin (or after Commit or
// Rollback) they use the plain connection and every statement commits on its own.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	subOrder, err := uow.SubOrderRepository().GetForUpdate(ctx, stall, orderID)
//	if err != nil {
//	    return err
//	}
//	// ... mutate subOrder and the stall aggregate
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is harmless: it returns
// gorm.ErrInvalidTransaction, which the deferred call ignores.
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns its transaction; never share one across goroutines
//   - SubOrderRepository().GetForUpdate takes a row lock held until Commit or Rollback
//   - Stall totals change only through single UPDATE statements, so concurrent
//     transactions never overwrite each other's deltas
package postgres

import (
	"context"

	"hawkerflow/internal/adapters/out/postgres/activityrepo"
	"hawkerflow/internal/adapters/out/postgres/orderrepo"
	"hawkerflow/internal/adapters/out/postgres/stallrepo"
	"hawkerflow/internal/adapters/out/postgres/suborderrepo"
	"hawkerflow/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create without the interface conversion.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db: f.db,
	}
}

// GormUnitOfWork coordinates one database transaction across the order,
// sub-order, stall and activity repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction when none is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction.
// Returns gorm.ErrInvalidTransaction when none is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) SubOrderRepository() ports.SubOrderRepository {
	return suborderrepo.NewGormSubOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) StallRepository() ports.StallRepository {
	return stallrepo.NewGormStallRepository(uow.conn())
}

func (uow *GormUnitOfWork) ActivityRepository() ports.ActivityRepository {
	return activityrepo.NewGormActivityRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
