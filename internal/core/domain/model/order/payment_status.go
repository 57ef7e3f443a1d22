package order

import (
	"fmt"

	"hawkerflow/internal/pkg/errs"
)

// PaymentStatus is the payment outcome recorded for an order.
//
// State transitions:
//
//	Pending ──┬──> Success
//	          └──> Failed
//
// Success and Failed are terminal. An order never returns to Pending.
type PaymentStatus int

const (
	// UnknownPayment is the zero value and is never persisted.
	UnknownPayment PaymentStatus = iota
	Pending
	Success
	Failed
)

var paymentStatusNames = map[PaymentStatus]string{
	Pending: "pending",
	Success: "success",
	Failed:  "failed",
}

// ParsePaymentStatus maps the persisted or wire form back to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range paymentStatusNames {
		if name == s {
			return status, nil
		}
	}
	return UnknownPayment, errs.NewValueIsInvalidErrorWithCause(
		"payment status",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

func (s PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// String returns the wire form: "pending", "success" or "failed".
func (s PaymentStatus) String() string {
	if name, ok := paymentStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s PaymentStatus) IsTerminal() bool {
	return s == Success || s == Failed
}

// Succeed transitions Pending to Success.
func (s PaymentStatus) Succeed() (PaymentStatus, error) {
	if s != Pending {
		return UnknownPayment, errs.NewValueIsInvalidErrorWithCause(
			"payment status",
			fmt.Errorf("%s is not a valid status to mark as paid", s),
		)
	}
	return Success, nil
}

// Fail transitions Pending to Failed.
func (s PaymentStatus) Fail() (PaymentStatus, error) {
	if s != Pending {
		return UnknownPayment, errs.NewValueIsInvalidErrorWithCause(
			"payment status",
			fmt.Errorf("%s is not a valid status to mark as failed", s),
		)
	}
	return Failed, nil
}
