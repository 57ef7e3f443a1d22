package kernel

import (
	"errors"
	"strings"

	"hawkerflow/internal/pkg/errs"
)

// ErrStallRefIsNotConstructed indicates a zero-value StallRef.
var ErrStallRefIsNotConstructed = errs.NewValueIsRequiredError("StallRef must be created via NewStallRef")

// StallRef identifies a stall. Stall names are only unique within a hawker
// center, so the reference is the pair (hawkerCenter, stallName).
type StallRef struct {
	hawkerCenter string
	stallName    string
}

// NewStallRef trims surrounding whitespace from both parts and requires both to be non-empty.
func NewStallRef(hawkerCenter, stallName string) (StallRef, error) {
	hawkerCenter = strings.TrimSpace(hawkerCenter)
	stallName = strings.TrimSpace(stallName)

	var errHawkerCenter, errStallName error
	if hawkerCenter == "" {
		errHawkerCenter = errs.NewValueIsRequiredError("hawkerCenter")
	}
	if stallName == "" {
		errStallName = errs.NewValueIsRequiredError("stallName")
	}
	if err := errors.Join(errHawkerCenter, errStallName); err != nil {
		return StallRef{}, err
	}

	return StallRef{hawkerCenter: hawkerCenter, stallName: stallName}, nil
}

func (s StallRef) Validate() error {
	if s.hawkerCenter == "" || s.stallName == "" {
		return ErrStallRefIsNotConstructed
	}
	return nil
}

func (s StallRef) HawkerCenter() string {
	return s.hawkerCenter
}

func (s StallRef) StallName() string {
	return s.stallName
}

func (s StallRef) IsEqual(other StallRef) bool {
	return s == other
}

// String renders the reference as "hawkerCenter/stallName" for logs.
func (s StallRef) String() string {
	return s.hawkerCenter + "/" + s.stallName
}
