package queries

import (
	"errors"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/guard"
)

var (
	ErrGetStallOrdersQueryIsNotConstructed = errors.New(
		"GetStallOrdersQuery must be created via NewGetStallOrdersQuery constructor",
	)
)

// GetStallOrdersQuery lists the open sub-orders of a stall with their dish lines.
// Completed sub-orders are purged, so every returned order still has at least
// one dish to cook.
//
// Example:
//
//	query, _ := NewGetStallOrdersQuery("Maxwell", "Tian Tian")
//	open, err := handler.Handle(ctx, query)
//	for _, o := range open {
//	    fmt.Printf("%s: %d dishes\n", o.OrderID, len(o.Dishes))
//	}
type GetStallOrdersQuery struct {
	stall kernel.StallRef
	guard guard.ConstructorGuard
}

func NewGetStallOrdersQuery(hawkerCenter, stallName string) (GetStallOrdersQuery, error) {
	ref, err := kernel.NewStallRef(hawkerCenter, stallName)
	if err != nil {
		return GetStallOrdersQuery{}, err
	}

	return GetStallOrdersQuery{stall: ref, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStallOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStallOrdersQueryIsNotConstructed)
}

func (q GetStallOrdersQuery) Stall() kernel.StallRef {
	return q.stall
}

// GetStallOrdersQueryResponse is one open sub-order.
type GetStallOrdersQueryResponse struct {
	OrderID   string
	UserID    string
	Contact   string
	CreatedAt time.Time
	Dishes    []StallOrderDish
}

// StallOrderDish is one dish line; TimeCompleted is nil until the vendor completes it.
type StallOrderDish struct {
	Name          string
	Quantity      int
	WaitTime      int
	Price         kernel.Money
	Completed     bool
	TimeStarted   time.Time
	TimeCompleted *time.Time
}
