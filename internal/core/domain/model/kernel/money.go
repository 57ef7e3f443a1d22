package kernel

import (
	"fmt"

	"hawkerflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount in the stall's currency. Arithmetic never
// goes through float64, so totals such as 0.1 + 0.2 stay exact.
//
// The zero value is a valid amount of zero.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is an amount of zero.
var ZeroMoney = Money{}

// NewMoney wraps a decimal amount. Negative amounts are allowed here because
// aggregate adjustments are signed; use NewNonNegativeMoney for prices.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewNonNegativeMoney rejects negative amounts.
func NewNonNegativeMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "3.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return Money{amount: amount}, nil
}

func MoneyFromInt(units int64) Money {
	return Money{amount: decimal.NewFromInt(units)}
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// Times multiplies a unit price by a quantity.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// ClampZero returns zero for negative amounts.
func (m Money) ClampZero() Money {
	if m.amount.IsNegative() {
		return ZeroMoney
	}
	return m
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
