package queries

import (
	"context"

	"hawkerflow/internal/core/domain/model/activity"
	"hawkerflow/internal/pkg/clock"

	"gorm.io/gorm"
)

type GetActivityLogsQueryHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewGetActivityLogsQueryHandler(db *gorm.DB, clk clock.Clock) GetActivityLogsQueryHandler {
	return GetActivityLogsQueryHandler{db: db, clock: clk}
}

// Handle returns the week's entries in completion order. A week without
// activity yields an empty slice.
func (h GetActivityLogsQueryHandler) Handle(
	ctx context.Context,
	query GetActivityLogsQuery,
) (GetActivityLogsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActivityLogsQueryResponse{}, err
	}

	weekID := query.WeekID()
	if query.CurrentWeek() {
		weekID = activity.WeekID(h.clock.Now())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			hawker_center,
			stall_name,
			dish_name,
			quantity,
			order_start_time,
			order_end_time
		FROM activity_logs
		WHERE week_id = ?
		ORDER BY order_end_time, id
	`, weekID).Rows()
	if err != nil {
		return GetActivityLogsQueryResponse{}, err
	}
	defer rows.Close()

	resp := GetActivityLogsQueryResponse{WeekID: weekID, Logs: make([]ActivityLog, 0)}
	for rows.Next() {
		var l ActivityLog
		err = rows.Scan(
			&l.OrderID,
			&l.HawkerCenter,
			&l.StallName,
			&l.DishName,
			&l.Quantity,
			&l.OrderStartTime,
			&l.OrderEndTime,
		)
		if err != nil {
			return GetActivityLogsQueryResponse{}, err
		}
		l.OrderStartTime = l.OrderStartTime.UTC()
		l.OrderEndTime = l.OrderEndTime.UTC()
		resp.Logs = append(resp.Logs, l)
	}

	if err = rows.Err(); err != nil {
		return GetActivityLogsQueryResponse{}, err
	}

	return resp, nil
}
