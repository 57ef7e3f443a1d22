// Package stallrepo persists stall aggregates: the running wait-time estimate
// and the earnings of each stall.
package stallrepo

import (
	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/stall"

	"github.com/shopspring/decimal"
)

// StallDTO uses a surrogate key so the sweeper can stream stalls with FindInBatches.
type StallDTO struct {
	ID                uint64          `gorm:"primaryKey;autoIncrement"`
	HawkerCenter      string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_stalls_ref,priority:1"`
	StallName         string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_stalls_ref,priority:2"`
	EstimatedWaitTime int             `gorm:"not null;default:0;check:estimated_wait_time >= 0"`
	TotalEarned       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0;check:total_earned >= 0"`
}

func (StallDTO) TableName() string {
	return "stalls"
}

func toDomain(dto StallDTO) (*stall.Aggregate, error) {
	ref, err := kernel.NewStallRef(dto.HawkerCenter, dto.StallName)
	if err != nil {
		return nil, err
	}
	return stall.RestoreAggregate(ref, dto.EstimatedWaitTime, kernel.NewMoney(dto.TotalEarned))
}
