package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"hawkerflow/internal/pkg/errs"

	"github.com/google/uuid"
)

const maxOrderIDLength = 128

// ErrOrderIDIsNotConstructed indicates that an OrderID was not created through
// NewOrderID or GenerateOrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("OrderID must be created via NewOrderID or GenerateOrderID")

// OrderID identifies a customer order across every service that handles it.
//
// Callers may supply their own identifier or let the service generate a random
// UUID. The identifier is embedded in broker routing keys of the form
// "<orderId>.queue", so it must be a single routing-key word: it may not be
// empty and may not contain '.', '*', '#' or whitespace.
//
// Example:
//
//	id, err := kernel.NewOrderID("O1")
//	if err != nil {
//	    return err
//	}
//	key := id.String() + ".queue"
type OrderID struct {
	value string
}

// NewOrderID validates a caller-supplied identifier.
func NewOrderID(value string) (OrderID, error) {
	if value == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderId")
	}
	if len(value) > maxOrderIDLength {
		return OrderID{}, errs.NewValueIsOutOfRangeError("orderId length", len(value), 1, maxOrderIDLength)
	}
	if i := strings.IndexFunc(value, isRoutingKeyUnsafe); i >= 0 {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"orderId",
			fmt.Errorf("character %q at position %d is not allowed", value[i], i),
		)
	}
	return OrderID{value: value}, nil
}

// GenerateOrderID returns a new random identifier (UUID version 4).
func GenerateOrderID() OrderID {
	return OrderID{value: uuid.NewString()}
}

// Validate reports whether the identifier was properly constructed.
func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}

func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

func isRoutingKeyUnsafe(r rune) bool {
	return r == '.' || r == '*' || r == '#' || unicode.IsSpace(r) || unicode.IsControl(r)
}
