package suborder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/errs"
)

var (
	// ErrStallSubOrderIsNotConstructed is returned for a zero-value StallSubOrder.
	ErrStallSubOrderIsNotConstructed = errors.New("StallSubOrder must be created via NewStallSubOrder constructor")
)

// StallSubOrder is the part of an order that one stall must prepare.
// Its identity is (stall, orderID) and it exists at most once per pair.
//
// Derived state:
//
//	Pending ──> Completed ──> Purged
//
// It is Completed when every dish line is completed and Purged once deleted
// from storage by the completion notifier or the retention sweeper.
type StallSubOrder struct {
	stall     kernel.StallRef
	orderID   kernel.OrderID
	userID    string
	contact   string
	createdAt time.Time
	lines     []*DishLine

	isConstructed bool
}

// NewStallSubOrder creates a sub-order with at least one line. Dish names must be unique.
func NewStallSubOrder(
	stall kernel.StallRef,
	orderID kernel.OrderID,
	userID, contact string,
	createdAt time.Time,
	lines []*DishLine,
) (*StallSubOrder, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("dish lines")
	}
	return RestoreStallSubOrder(stall, orderID, userID, contact, createdAt, lines)
}

// RestoreStallSubOrder rebuilds a sub-order loaded from storage. Unlike
// NewStallSubOrder it accepts a sub-order without lines; such a sub-order is
// never complete.
func RestoreStallSubOrder(
	stall kernel.StallRef,
	orderID kernel.OrderID,
	userID, contact string,
	createdAt time.Time,
	lines []*DishLine,
) (*StallSubOrder, error) {
	s := &StallSubOrder{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setStall(stall),
		s.setOrderID(orderID),
		s.setUserID(userID),
		s.setContact(contact),
		s.setLines(lines),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *StallSubOrder) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStallSubOrderIsNotConstructed
	}
	return nil
}

func (s *StallSubOrder) Stall() kernel.StallRef {
	return s.stall
}

func (s *StallSubOrder) OrderID() kernel.OrderID {
	return s.orderID
}

func (s *StallSubOrder) UserID() string {
	return s.userID
}

func (s *StallSubOrder) Contact() string {
	return s.contact
}

func (s *StallSubOrder) CreatedAt() time.Time {
	return s.createdAt
}

// Lines returns the dish lines in insertion order.
func (s *StallSubOrder) Lines() []*DishLine {
	lines := make([]*DishLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Line finds a dish line by name.
func (s *StallSubOrder) Line(dishName string) (*DishLine, bool) {
	for _, line := range s.lines {
		if line.Name() == dishName {
			return line, true
		}
	}
	return nil, false
}

// CompleteDish completes the named line. It returns the line and whether its
// state changed; a missing line yields an ObjectNotFoundError.
func (s *StallSubOrder) CompleteDish(dishName string, at time.Time) (*DishLine, bool, error) {
	line, ok := s.Line(dishName)
	if !ok {
		return nil, false, errs.NewObjectNotFoundError("dish", dishName)
	}
	return line, line.Complete(at), nil
}

// IsComplete is true when there is at least one line and every line is completed.
// Identity fields such as userId or contact are never treated as lines.
func (s *StallSubOrder) IsComplete() bool {
	if len(s.lines) == 0 {
		return false
	}
	for _, line := range s.lines {
		if !line.IsCompleted() {
			return false
		}
	}
	return true
}

// TotalWait is Σ waitTime × quantity over all lines.
func (s *StallSubOrder) TotalWait() int {
	total := 0
	for _, line := range s.lines {
		total += line.WaitContribution()
	}
	return total
}

func (s *StallSubOrder) setStall(stall kernel.StallRef) error {
	if err := stall.Validate(); err != nil {
		return err
	}
	s.stall = stall
	return nil
}

func (s *StallSubOrder) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *StallSubOrder) setUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	s.userID = userID
	return nil
}

func (s *StallSubOrder) setContact(contact string) error {
	if strings.TrimSpace(contact) == "" {
		return errs.NewValueIsRequiredError("contact")
	}
	s.contact = contact
	return nil
}

func (s *StallSubOrder) setLines(lines []*DishLine) error {
	names := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		if _, dup := names[line.Name()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("dish lines", fmt.Errorf("dish %q appears twice", line.Name()))
		}
		names[line.Name()] = struct{}{}
	}

	s.lines = make([]*DishLine, len(lines))
	copy(s.lines, lines)
	return nil
}
