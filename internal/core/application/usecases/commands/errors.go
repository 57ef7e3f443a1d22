package commands

import (
	"errors"
	"fmt"

	"hawkerflow/internal/pkg/errs"
)

// Errors returned by command handlers. The HTTP layer maps them to status
// codes with errors.Is; the wrapped cause carries the detail.
var (
	ErrInvalidOrder   = errors.New("invalid order")
	ErrPaymentTimeout = errors.New("payment timed out")
	ErrPaymentFailed  = errors.New("payment failed")
	ErrOrderNotFound  = errors.New("order not found")
	ErrDishNotFound   = errors.New("dish not found")
	ErrStallNotFound  = errors.New("stall not found")
)

func invalidOrder(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidOrder, err)
}

// notFound wraps err with sentinel when err is an errs.ObjectNotFoundError.
func notFound(sentinel, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
