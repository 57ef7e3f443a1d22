package stallrepo

import (
	"context"
	"errors"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/stall"
	"hawkerflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStallRepository implements StallRepository using GORM.
type GormStallRepository struct {
	db *gorm.DB
}

func NewGormStallRepository(db *gorm.DB) *GormStallRepository {
	return &GormStallRepository{db: db}
}

// EnsureExists inserts a zeroed row for the stall unless one exists.
func (r *GormStallRepository) EnsureExists(ctx context.Context, ref kernel.StallRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}

	dto := StallDTO{
		HawkerCenter: ref.HawkerCenter(),
		StallName:    ref.StallName(),
		TotalEarned:  decimal.Zero,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hawker_center"}, {Name: "stall_name"}},
		DoNothing: true,
	}).Create(&dto).Error
}

// AdjustTotals applies signed deltas in a single UPDATE, clamping both totals at zero.
func (r *GormStallRepository) AdjustTotals(
	ctx context.Context,
	ref kernel.StallRef,
	waitDelta int,
	earnedDelta kernel.Money,
) error {
	result := r.db.WithContext(ctx).
		Model(&StallDTO{}).
		Where("hawker_center = ? AND stall_name = ?", ref.HawkerCenter(), ref.StallName()).
		Updates(map[string]any{
			"estimated_wait_time": gorm.Expr("GREATEST(estimated_wait_time + ?, 0)", waitDelta),
			"total_earned":        gorm.Expr("GREATEST(total_earned + CAST(? AS numeric), 0)", earnedDelta.String()),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stall", ref.String())
	}
	return nil
}

func (r *GormStallRepository) Get(ctx context.Context, ref kernel.StallRef) (*stall.Aggregate, error) {
	var dto StallDTO
	err := r.db.WithContext(ctx).
		First(&dto, "hawker_center = ? AND stall_name = ?", ref.HawkerCenter(), ref.StallName()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stall", ref.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update overwrites both totals with the aggregate's values.
func (r *GormStallRepository) Update(ctx context.Context, aggregate *stall.Aggregate) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	ref := aggregate.Ref()
	result := r.db.WithContext(ctx).
		Model(&StallDTO{}).
		Where("hawker_center = ? AND stall_name = ?", ref.HawkerCenter(), ref.StallName()).
		Updates(map[string]any{
			"estimated_wait_time": aggregate.EstimatedWaitTime(),
			"total_earned":        aggregate.TotalEarned().Decimal(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stall", ref.String())
	}

	return nil
}

// ForEachBatch streams every stall in primary-key order, size rows at a time.
func (r *GormStallRepository) ForEachBatch(
	ctx context.Context,
	size int,
	fn func(batch []*stall.Aggregate) error,
) error {
	var dtos []StallDTO
	return r.db.WithContext(ctx).FindInBatches(&dtos, size, func(_ *gorm.DB, _ int) error {
		batch := make([]*stall.Aggregate, 0, len(dtos))
		for _, dto := range dtos {
			aggregate, err := toDomain(dto)
			if err != nil {
				return err
			}
			batch = append(batch, aggregate)
		}
		return fn(batch)
	}).Error
}
