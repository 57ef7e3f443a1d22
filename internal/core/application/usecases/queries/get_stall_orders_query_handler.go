package queries

import (
	"context"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetStallOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetStallOrdersQueryHandler(db *gorm.DB) GetStallOrdersQueryHandler {
	return GetStallOrdersQueryHandler{db: db}
}

// Handle returns the stall's open sub-orders, oldest first, with dishes in
// the order they were placed. An unknown stall is errs.ErrObjectNotFound; a
// known stall without open orders yields an empty slice.
func (h GetStallOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStallOrdersQuery,
) ([]GetStallOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ref := query.Stall()
	db := h.db.WithContext(ctx)

	var stalls int64
	err := db.Raw(`
		SELECT COUNT(*)
		FROM stalls
		WHERE hawker_center = ? AND stall_name = ?
	`, ref.HawkerCenter(), ref.StallName()).Scan(&stalls).Error
	if err != nil {
		return nil, err
	}
	if stalls == 0 {
		return nil, errs.NewObjectNotFoundError("stall", ref.String())
	}

	rows, err := db.Raw(`
		SELECT
			s.order_id,
			s.user_id,
			s.contact,
			s.created_at,
			l.dish_name,
			l.quantity,
			l.wait_time,
			l.price,
			l.completed,
			l.time_started,
			l.time_completed
		FROM sub_orders s
		JOIN dish_lines l ON l.sub_order_id = s.id
		WHERE s.hawker_center = ? AND s.stall_name = ?
		ORDER BY s.created_at, s.order_id, l.position
	`, ref.HawkerCenter(), ref.StallName()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetStallOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp  GetStallOrdersQueryResponse
			dish  StallOrderDish
			price decimal.Decimal
			done  *time.Time
		)

		err = rows.Scan(
			&resp.OrderID,
			&resp.UserID,
			&resp.Contact,
			&resp.CreatedAt,
			&dish.Name,
			&dish.Quantity,
			&dish.WaitTime,
			&price,
			&dish.Completed,
			&dish.TimeStarted,
			&done,
		)
		if err != nil {
			return nil, err
		}
		dish.Price = kernel.NewMoney(price)
		dish.TimeCompleted = done

		// Rows arrive grouped by order.
		if n := len(orders); n > 0 && orders[n-1].OrderID == resp.OrderID {
			orders[n-1].Dishes = append(orders[n-1].Dishes, dish)
			continue
		}
		resp.Dishes = []StallOrderDish{dish}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
