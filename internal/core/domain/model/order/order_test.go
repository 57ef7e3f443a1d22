package order_test

import (
	"testing"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/order"
	"hawkerflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 3, 27, 9, 0, 0, 0, time.UTC)

func mustItem(t *testing.T, stall, dish string, qty, wait int, price int64) order.Item {
	t.Helper()
	item, err := order.NewItem(stall, dish, qty, wait, kernel.MoneyFromInt(price))
	require.NoError(t, err)
	return item
}

func mustOrderID(t *testing.T, value string) kernel.OrderID {
	t.Helper()
	id, err := kernel.NewOrderID(value)
	require.NoError(t, err)
	return id
}

func TestNewItem(t *testing.T) {
	t.Run("should create valid item", func(t *testing.T) {
		item, err := order.NewItem("S1", "D1", 2, 5, kernel.MoneyFromInt(3))

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "S1", item.StallName())
		assert.Equal(t, "D1", item.DishName())
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, 5, item.WaitTime())
		assert.Equal(t, "6.00", item.Subtotal().String())
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := order.NewItem("", "", 0, -1, kernel.MoneyFromInt(-1))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "stallName")
		assert.Contains(t, err.Error(), "dishName")
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "waitTime")
		assert.Contains(t, err.Error(), "price")
	})

	t.Run("zero wait time and zero price are allowed", func(t *testing.T) {
		_, err := order.NewItem("S1", "Water", 1, 0, kernel.ZeroMoney)

		require.NoError(t, err)
	})

	t.Run("zero value item is invalid", func(t *testing.T) {
		var item order.Item

		assert.Equal(t, order.ErrItemIsNotConstructed, item.Validate())
	})
}

func TestNewOrder(t *testing.T) {
	d1 := mustItem(t, "S1", "D1", 2, 5, 3)
	d2 := mustItem(t, "S1", "D2", 1, 10, 7)
	d3 := mustItem(t, "S2", "D3", 1, 4, 2)

	t.Run("should create pending order", func(t *testing.T) {
		items := []order.Item{d1, d2, d3}
		o, err := order.NewOrder(mustOrderID(t, "O1"), "u1", "+6590000000", "Maxwell",
			items, order.TotalOf(items), createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, "O1", o.ID().String())
		assert.Equal(t, order.Pending, o.PaymentStatus())
		assert.Equal(t, "15.00", o.Amount().String())
		assert.Equal(t, []string{"S1", "S2"}, o.StallNames())
		assert.Len(t, o.ItemsByStall()["S1"], 2)
		assert.Len(t, o.ItemsByStall()["S2"], 1)
		assert.Equal(t, createdAt, o.CreatedAt())
	})

	t.Run("should reject empty items", func(t *testing.T) {
		o, err := order.NewOrder(mustOrderID(t, "O1"), "u1", "c", "Maxwell", nil,
			kernel.MoneyFromInt(1), createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
	})

	t.Run("should reject duplicate dish for one stall", func(t *testing.T) {
		_, err := order.NewOrder(mustOrderID(t, "O1"), "u1", "c", "Maxwell",
			[]order.Item{d1, d1}, kernel.MoneyFromInt(1), createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "listed twice")
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		_, err := order.NewOrder(mustOrderID(t, "O1"), "u1", "c", "Maxwell",
			[]order.Item{d1}, kernel.ZeroMoney, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("should reject missing identity fields", func(t *testing.T) {
		var id kernel.OrderID
		_, err := order.NewOrder(id, " ", "", "", []order.Item{d1}, kernel.MoneyFromInt(1), createdAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "OrderID must be created")
		assert.Contains(t, err.Error(), "userId")
		assert.Contains(t, err.Error(), "contact")
		assert.Contains(t, err.Error(), "hawkerCenter")
	})

	t.Run("items are copied", func(t *testing.T) {
		items := []order.Item{d1}
		o, err := order.NewOrder(mustOrderID(t, "O1"), "u1", "c", "Maxwell", items,
			kernel.MoneyFromInt(6), createdAt)
		require.NoError(t, err)

		items[0] = d3

		assert.Equal(t, "D1", o.Items()[0].DishName())
	})
}

func TestOrder_Payment(t *testing.T) {
	newOrder := func(t *testing.T) *order.Order {
		t.Helper()
		items := []order.Item{mustItem(t, "S1", "D1", 1, 1, 1)}
		o, err := order.NewOrder(mustOrderID(t, "O1"), "u1", "c", "Maxwell", items,
			order.TotalOf(items), createdAt)
		require.NoError(t, err)
		return o
	}

	t.Run("mark paid", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.MarkPaid())
		assert.Equal(t, order.Success, o.PaymentStatus())
	})

	t.Run("mark failed", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.MarkPaymentFailed())
		assert.Equal(t, order.Failed, o.PaymentStatus())
	})

	t.Run("success never returns to pending or failed", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.MarkPaid())

		require.Error(t, o.MarkPaymentFailed())
		require.Error(t, o.MarkPaid())
		assert.Equal(t, order.Success, o.PaymentStatus())
	})
}

func TestRestoreOrder(t *testing.T) {
	items := []order.Item{mustItem(t, "S1", "D1", 1, 1, 1)}

	t.Run("restores terminal status", func(t *testing.T) {
		o, err := order.RestoreOrder(mustOrderID(t, "O1"), "u1", "c", "Maxwell", items,
			kernel.MoneyFromInt(1), order.Failed, createdAt)

		require.NoError(t, err)
		assert.Equal(t, order.Failed, o.PaymentStatus())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(mustOrderID(t, "O1"), "u1", "c", "Maxwell", items,
			kernel.MoneyFromInt(1), order.UnknownPayment, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_ZeroValue(t *testing.T) {
	var o *order.Order

	assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, (&order.Order{}).Validate())
}
