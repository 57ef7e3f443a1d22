package activityrepo

import (
	"context"
	"errors"

	"hawkerflow/internal/core/domain/model/activity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormActivityRepository implements ActivityRepository using GORM.
type GormActivityRepository struct {
	db *gorm.DB
}

func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// AddAll inserts the entries, skipping any already stored for the same
// (order, stall, dish). It returns the number of rows actually written.
func (r *GormActivityRepository) AddAll(ctx context.Context, entries []*activity.Entry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	var errList []error
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			errList = append(errList, err)
			continue
		}
		dtos = append(dtos, fromDomain(e))
	}
	if err := errors.Join(errList...); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "order_id"}, {Name: "hawker_center"}, {Name: "stall_name"}, {Name: "dish_name"},
		},
		DoNothing: true,
	}).Create(&dtos)
	return result.RowsAffected, result.Error
}
