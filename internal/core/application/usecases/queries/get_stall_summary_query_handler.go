package queries

import (
	"context"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetStallSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetStallSummaryQueryHandler(db *gorm.DB) GetStallSummaryQueryHandler {
	return GetStallSummaryQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for a stall that never received an order.
func (h GetStallSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetStallSummaryQuery,
) (GetStallSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStallSummaryQueryResponse{}, err
	}

	ref := query.Stall()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			estimated_wait_time,
			total_earned
		FROM stalls
		WHERE hawker_center = ? AND stall_name = ?
	`, ref.HawkerCenter(), ref.StallName()).Rows()
	if err != nil {
		return GetStallSummaryQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetStallSummaryQueryResponse{}, err
		}
		return GetStallSummaryQueryResponse{}, errs.NewObjectNotFoundError("stall", ref.String())
	}

	var (
		waitTime int
		earned   decimal.Decimal
	)
	if err = rows.Scan(&waitTime, &earned); err != nil {
		return GetStallSummaryQueryResponse{}, err
	}

	return GetStallSummaryQueryResponse{
		Stall:             ref,
		EstimatedWaitTime: waitTime,
		TotalEarned:       kernel.NewMoney(earned),
	}, nil
}
