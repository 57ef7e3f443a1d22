// Package activityrepo stores completed-dish activity for weekly wait-time reporting.
package activityrepo

import (
	"time"

	"hawkerflow/internal/core/domain/model/activity"
)

// EntryDTO is one completed dish. The unique index makes redelivered activity
// messages harmless.
type EntryDTO struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID        string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_activity_logs_dish,priority:1"`
	HawkerCenter   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_activity_logs_dish,priority:2"`
	StallName      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_activity_logs_dish,priority:3"`
	DishName       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_activity_logs_dish,priority:4"`
	Quantity       int       `gorm:"not null"`
	OrderStartTime time.Time `gorm:"not null"`
	OrderEndTime   time.Time `gorm:"not null"`
	WeekID         string    `gorm:"type:varchar(16);not null;index"`
}

func (EntryDTO) TableName() string {
	return "activity_logs"
}

func fromDomain(e *activity.Entry) EntryDTO {
	return EntryDTO{
		OrderID:        e.OrderID().String(),
		HawkerCenter:   e.Stall().HawkerCenter(),
		StallName:      e.Stall().StallName(),
		DishName:       e.DishName(),
		Quantity:       e.Quantity(),
		OrderStartTime: e.StartedAt(),
		OrderEndTime:   e.EndedAt(),
		WeekID:         e.WeekID(),
	}
}
