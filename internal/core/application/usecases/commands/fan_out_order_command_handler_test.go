package commands_test

import (
	"errors"
	"testing"

	"hawkerflow/internal/core/application/usecases/commands"
	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/suborder"
	"hawkerflow/internal/events"
	"hawkerflow/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stallNamed(name string) any {
	return mock.MatchedBy(func(ref kernel.StallRef) bool {
		return ref.HawkerCenter() == "Maxwell" && ref.StallName() == name
	})
}

func TestFanOutOrderCommandHandler_Handle_CreatesPerStall(t *testing.T) {
	ctx := t.Context()
	payload := orderCreated()
	payload.Stalls["S2"] = []events.Dish{{Name: "D3", Quantity: 3, WaitTime: 4, Price: decimal.NewFromInt(2)}}
	cmd, err := commands.NewFanOutOrderCommand(payload)
	require.NoError(t, err)

	subOrders := new(MockSubOrderRepository)
	stalls := new(MockStallRepository)
	uow := new(MockFulfillmentUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("StallRepository").Return(stalls).Twice()
	uow.On("SubOrderRepository").Return(subOrders).Twice()
	uow.On("Commit", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()

	stalls.On("EnsureExists", ctx, stallNamed("S1")).Return(nil).Once()
	stalls.On("EnsureExists", ctx, stallNamed("S2")).Return(nil).Once()
	subOrders.On("AddIfAbsent", ctx, mock.MatchedBy(func(s *suborder.StallSubOrder) bool {
		return s.Stall().StallName() == "S1"
	})).Return(true, nil).Once()
	subOrders.On("AddIfAbsent", ctx, mock.MatchedBy(func(s *suborder.StallSubOrder) bool {
		return s.Stall().StallName() == "S2"
	})).Return(false, nil).Once()
	stalls.On("AdjustTotals", ctx, stallNamed("S1"), 20, kernel.ZeroMoney).Return(nil).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewFanOutOrderCommandHandler(factory, clock.NewFixed(submittedAt), discardLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.FanOutResult{Created: 1, Skipped: 1}, result)
	uow.AssertExpectations(t)
	stalls.AssertExpectations(t)
	subOrders.AssertExpectations(t)
	stalls.AssertNumberOfCalls(t, "AdjustTotals", 1)
}

func TestFanOutOrderCommandHandler_Handle_StoreError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewFanOutOrderCommand(orderCreated())
	require.NoError(t, err)

	stalls := new(MockStallRepository)
	uow := new(MockFulfillmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StallRepository").Return(stalls).Once(),
		stalls.On("EnsureExists", ctx, stallNamed("S1")).Return(errors.New("db down")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewFanOutOrderCommandHandler(factory, clock.NewFixed(submittedAt), discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "db down")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestFanOutOrderCommandHandler_Handle_Redelivery(t *testing.T) {
	ctx := t.Context()
	store := newMemoryStore()
	cmd, err := commands.NewFanOutOrderCommand(orderCreated())
	require.NoError(t, err)

	h := commands.NewFanOutOrderCommandHandler(store, clock.NewFixed(submittedAt), discardLogger())

	first, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	second, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.FanOutResult{Created: 1}, first)
	assert.Equal(t, commands.FanOutResult{Skipped: 1}, second)

	ref, _ := kernel.NewStallRef("Maxwell", "S1")
	rec, ok := store.stall(ref)
	require.True(t, ok)
	assert.Equal(t, 20, rec.waitTime, "redelivered event must not credit the stall twice")
}
