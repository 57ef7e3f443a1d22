package services

import (
	"errors"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/suborder"
)

// ErrSubOrderNotComplete is returned when a report is requested for a sub-order
// that still has open dish lines.
var ErrSubOrderNotComplete = errors.New("sub-order is not complete")

// CompletedDish describes one finished dish of a completed sub-order.
type CompletedDish struct {
	Name        string
	Quantity    int
	StartedAt   time.Time
	CompletedAt time.Time
}

// CompletionReport is what the completion notifier announces once every dish
// of a stall sub-order is done: a customer notification and one activity
// record per dish.
type CompletionReport struct {
	OrderID kernel.OrderID
	Stall   kernel.StallRef
	UserID  string
	Contact string
	Dishes  []CompletedDish
}

// CompletionReporter is a domain service that turns a completed sub-order into
// a CompletionReport.
type CompletionReporter struct{}

func NewCompletionReporter() CompletionReporter {
	return CompletionReporter{}
}

// Report fails with ErrSubOrderNotComplete unless s.IsComplete().
func (CompletionReporter) Report(s *suborder.StallSubOrder) (CompletionReport, error) {
	if err := s.Validate(); err != nil {
		return CompletionReport{}, err
	}
	if !s.IsComplete() {
		return CompletionReport{}, ErrSubOrderNotComplete
	}

	lines := s.Lines()
	dishes := make([]CompletedDish, 0, len(lines))
	for _, line := range lines {
		dishes = append(dishes, CompletedDish{
			Name:        line.Name(),
			Quantity:    line.Quantity(),
			StartedAt:   line.TimeStarted(),
			CompletedAt: *line.TimeCompleted(),
		})
	}

	return CompletionReport{
		OrderID: s.OrderID(),
		Stall:   s.Stall(),
		UserID:  s.UserID(),
		Contact: s.Contact(),
		Dishes:  dishes,
	}, nil
}
