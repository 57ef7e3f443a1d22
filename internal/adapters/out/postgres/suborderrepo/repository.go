package suborderrepo

import (
	"context"
	"errors"
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/suborder"
	"hawkerflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSubOrderRepository implements SubOrderRepository using GORM.
type GormSubOrderRepository struct {
	db *gorm.DB
}

func NewGormSubOrderRepository(db *gorm.DB) *GormSubOrderRepository {
	return &GormSubOrderRepository{db: db}
}

// AddIfAbsent inserts the sub-order and its dish lines unless the (stall, order)
// pair already exists, in which case it reports false and writes nothing.
func (r *GormSubOrderRepository) AddIfAbsent(ctx context.Context, aggregate *suborder.StallSubOrder) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	lines := dto.Lines
	dto.Lines = nil

	db := r.db.WithContext(ctx)
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hawker_center"}, {Name: "stall_name"}, {Name: "order_id"}},
		DoNothing: true,
	}).Omit(clause.Associations).Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	for i := range lines {
		lines[i].SubOrderID = dto.ID
	}
	if err := db.Create(&lines).Error; err != nil {
		return false, err
	}

	return true, nil
}

// GetForUpdate loads the sub-order and takes a row lock on it until the
// surrounding transaction ends.
func (r *GormSubOrderRepository) GetForUpdate(
	ctx context.Context,
	stall kernel.StallRef,
	orderID kernel.OrderID,
) (*suborder.StallSubOrder, error) {
	db := r.db.WithContext(ctx)

	var dto SubOrderDTO
	err := db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("hawker_center = ? AND stall_name = ? AND order_id = ?",
			stall.HawkerCenter(), stall.StallName(), orderID.String()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("subOrder", subOrderKey(stall, orderID))
		}
		return nil, err
	}

	if err = db.Where("sub_order_id = ?", dto.ID).Order("position").Find(&dto.Lines).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// CompleteLine flips one line from open to completed. It reports false when the
// line was already completed; a missing line is an ObjectNotFoundError.
func (r *GormSubOrderRepository) CompleteLine(
	ctx context.Context,
	stall kernel.StallRef,
	orderID kernel.OrderID,
	dishName string,
	at time.Time,
) (bool, error) {
	db := r.db.WithContext(ctx)

	result := db.Model(&DishLineDTO{}).
		Where("sub_order_id = (?)", r.subOrderIDQuery(db, stall, orderID)).
		Where("dish_name = ? AND completed = ?", dishName, false).
		Updates(map[string]any{
			"completed":      true,
			"time_completed": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	err := db.Model(&DishLineDTO{}).
		Where("sub_order_id = (?)", r.subOrderIDQuery(db, stall, orderID)).
		Where("dish_name = ?", dishName).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, errs.NewObjectNotFoundError("dish", dishName)
	}
	return false, nil
}

// Delete removes the sub-order; its dish lines go with it.
func (r *GormSubOrderRepository) Delete(ctx context.Context, stall kernel.StallRef, orderID kernel.OrderID) error {
	result := r.db.WithContext(ctx).
		Where("hawker_center = ? AND stall_name = ? AND order_id = ?",
			stall.HawkerCenter(), stall.StallName(), orderID.String()).
		Delete(&SubOrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("subOrder", subOrderKey(stall, orderID))
	}
	return nil
}

// DeleteAllForStall removes every sub-order of the stall and returns how many there were.
func (r *GormSubOrderRepository) DeleteAllForStall(ctx context.Context, stall kernel.StallRef) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("hawker_center = ? AND stall_name = ?", stall.HawkerCenter(), stall.StallName()).
		Delete(&SubOrderDTO{})
	return result.RowsAffected, result.Error
}

func (r *GormSubOrderRepository) subOrderIDQuery(db *gorm.DB, stall kernel.StallRef, orderID kernel.OrderID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&SubOrderDTO{}).
		Select("id").
		Where("hawker_center = ? AND stall_name = ? AND order_id = ?",
			stall.HawkerCenter(), stall.StallName(), orderID.String())
}

func subOrderKey(stall kernel.StallRef, orderID kernel.OrderID) string {
	return stall.String() + "/" + orderID.String()
}
