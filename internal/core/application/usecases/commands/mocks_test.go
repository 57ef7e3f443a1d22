package commands_test

import (
	"context"
	"time"

	"hawkerflow/internal/core/application/usecases/commands"
	"hawkerflow/internal/core/domain/model/activity"
	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/order"
	"hawkerflow/internal/core/domain/model/stall"
	"hawkerflow/internal/core/domain/model/suborder"
	"hawkerflow/internal/core/ports"
	"hawkerflow/internal/events"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) AddIfAbsent(ctx context.Context, o *order.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSubOrderRepository struct{ mock.Mock }

func (m *MockSubOrderRepository) AddIfAbsent(ctx context.Context, s *suborder.StallSubOrder) (bool, error) {
	args := m.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubOrderRepository) GetForUpdate(
	ctx context.Context,
	ref kernel.StallRef,
	orderID kernel.OrderID,
) (*suborder.StallSubOrder, error) {
	args := m.Called(ctx, ref, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*suborder.StallSubOrder), args.Error(1)
}

func (m *MockSubOrderRepository) CompleteLine(
	ctx context.Context,
	ref kernel.StallRef,
	orderID kernel.OrderID,
	dishName string,
	at time.Time,
) (bool, error) {
	args := m.Called(ctx, ref, orderID, dishName, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubOrderRepository) Delete(ctx context.Context, ref kernel.StallRef, orderID kernel.OrderID) error {
	args := m.Called(ctx, ref, orderID)
	return args.Error(0)
}

func (m *MockSubOrderRepository) DeleteAllForStall(ctx context.Context, ref kernel.StallRef) (int64, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(int64), args.Error(1)
}

type MockStallRepository struct{ mock.Mock }

func (m *MockStallRepository) EnsureExists(ctx context.Context, ref kernel.StallRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockStallRepository) AdjustTotals(
	ctx context.Context,
	ref kernel.StallRef,
	waitDelta int,
	earnedDelta kernel.Money,
) error {
	args := m.Called(ctx, ref, waitDelta, earnedDelta)
	return args.Error(0)
}

func (m *MockStallRepository) Get(ctx context.Context, ref kernel.StallRef) (*stall.Aggregate, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stall.Aggregate), args.Error(1)
}

func (m *MockStallRepository) Update(ctx context.Context, a *stall.Aggregate) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStallRepository) ForEachBatch(
	ctx context.Context,
	size int,
	fn func(batch []*stall.Aggregate) error,
) error {
	args := m.Called(ctx, size, fn)
	if batches, ok := args.Get(0).([][]*stall.Aggregate); ok {
		for _, b := range batches {
			if err := fn(b); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}

type MockFulfillmentUoW struct{ mock.Mock }

func (m *MockFulfillmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) SubOrderRepository() ports.SubOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SubOrderRepository)
}

func (m *MockFulfillmentUoW) StallRepository() ports.StallRepository {
	args := m.Called()
	return args.Get(0).(ports.StallRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockActivityRepository struct{ mock.Mock }

func (m *MockActivityRepository) AddAll(ctx context.Context, entries []*activity.Entry) (int64, error) {
	args := m.Called(ctx, entries)
	return args.Get(0).(int64), args.Error(1)
}

type MockActivityUoW struct{ mock.Mock }

func (m *MockActivityUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockActivityUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockActivityUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockActivityUoW) ActivityRepository() ports.ActivityRepository {
	args := m.Called()
	return args.Get(0).(ports.ActivityRepository)
}

type MockActivityUoWFactory struct{ mock.Mock }

func (m *MockActivityUoWFactory) Create() commands.ActivityUoW {
	args := m.Called()
	return args.Get(0).(commands.ActivityUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderCreated(ctx context.Context, payload events.OrderCreated) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishPaymentNotification(ctx context.Context, payload events.Notification) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishCompletion(
	ctx context.Context,
	activity events.Activity,
	notification events.Notification,
) error {
	args := m.Called(ctx, activity, notification)
	return args.Error(0)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Charge(ctx context.Context, req ports.ChargeRequest) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n events.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
