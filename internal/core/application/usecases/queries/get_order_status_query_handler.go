package queries

import (
	"context"

	"hawkerflow/internal/core/domain/model/order"
	"hawkerflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads order payment statuses straight from the
// orders table, bypassing the aggregate.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when no order has the requested id.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT payment_status
		FROM orders
		WHERE order_id = ?
	`, query.OrderID().String()).Rows()
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderStatusQueryResponse{}, err
		}
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var raw string
	if err = rows.Scan(&raw); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	status, err := order.ParsePaymentStatus(raw)
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	return GetOrderStatusQueryResponse{OrderID: query.OrderID(), Status: status}, nil
}
