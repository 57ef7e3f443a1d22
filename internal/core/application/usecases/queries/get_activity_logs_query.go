package queries

import (
	"errors"
	"time"

	"hawkerflow/internal/core/domain/model/activity"
	"hawkerflow/internal/pkg/guard"
)

var (
	ErrGetActivityLogsQueryIsNotConstructed = errors.New(
		"GetActivityLogsQuery must be created via NewGetActivityLogsQuery or NewGetCurrentWeekActivityLogsQuery constructor",
	)
)

// GetActivityLogsQuery reads the completed-dish activity of one ISO week.
// A query built by NewGetCurrentWeekActivityLogsQuery is resolved against the
// handler's clock.
type GetActivityLogsQuery struct {
	weekID      string
	currentWeek bool
	guard       guard.ConstructorGuard
}

func NewGetActivityLogsQuery(weekID string) (GetActivityLogsQuery, error) {
	weekID, err := activity.ParseWeekID(weekID)
	if err != nil {
		return GetActivityLogsQuery{}, err
	}

	return GetActivityLogsQuery{weekID: weekID, guard: guard.NewConstructorGuard()}, nil
}

func NewGetCurrentWeekActivityLogsQuery() GetActivityLogsQuery {
	return GetActivityLogsQuery{currentWeek: true, guard: guard.NewConstructorGuard()}
}

func (q GetActivityLogsQuery) Validate() error {
	return q.guard.Validate(ErrGetActivityLogsQueryIsNotConstructed)
}

// WeekID is empty for a current-week query.
func (q GetActivityLogsQuery) WeekID() string {
	return q.weekID
}

func (q GetActivityLogsQuery) CurrentWeek() bool {
	return q.currentWeek
}

type GetActivityLogsQueryResponse struct {
	WeekID string
	Logs   []ActivityLog
}

// ActivityLog is one completed dish.
type ActivityLog struct {
	OrderID        string
	HawkerCenter   string
	StallName      string
	DishName       string
	Quantity       int
	OrderStartTime time.Time
	OrderEndTime   time.Time
}

// Duration is how long the dish took from order start to completion.
func (l ActivityLog) Duration() time.Duration {
	return l.OrderEndTime.Sub(l.OrderStartTime)
}
