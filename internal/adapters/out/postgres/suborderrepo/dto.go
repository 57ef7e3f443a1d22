// Package suborderrepo persists stall sub-orders and their dish lines.
package suborderrepo

import (
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/suborder"

	"github.com/shopspring/decimal"
)

// SubOrderDTO is one (stall, order) pair. The surrogate ID lets dish lines
// cascade on delete; the unique index enforces one sub-order per stall and order.
type SubOrderDTO struct {
	ID           uint64        `gorm:"primaryKey;autoIncrement"`
	HawkerCenter string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_sub_orders_stall_order,priority:1"`
	StallName    string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_sub_orders_stall_order,priority:2"`
	OrderID      string        `gorm:"type:varchar(128);not null;uniqueIndex:idx_sub_orders_stall_order,priority:3"`
	UserID       string        `gorm:"type:varchar(255);not null"`
	Contact      string        `gorm:"type:varchar(64);not null"`
	CreatedAt    time.Time     `gorm:"not null"`
	Lines        []DishLineDTO `gorm:"foreignKey:SubOrderID;constraint:OnDelete:CASCADE"`
}

func (SubOrderDTO) TableName() string {
	return "sub_orders"
}

// DishLineDTO is one dish of a sub-order.
type DishLineDTO struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	SubOrderID    uint64          `gorm:"not null;uniqueIndex:idx_dish_lines_sub_order_dish,priority:1"`
	DishName      string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_dish_lines_sub_order_dish,priority:2"`
	Position      int             `gorm:"not null"`
	Quantity      int             `gorm:"not null"`
	WaitTime      int             `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Completed     bool            `gorm:"not null;default:false"`
	TimeStarted   time.Time       `gorm:"not null"`
	TimeCompleted *time.Time
}

func (DishLineDTO) TableName() string {
	return "dish_lines"
}

func fromDomain(s *suborder.StallSubOrder) SubOrderDTO {
	lines := make([]DishLineDTO, 0, len(s.Lines()))
	for i, line := range s.Lines() {
		lines = append(lines, DishLineDTO{
			DishName:      line.Name(),
			Position:      i,
			Quantity:      line.Quantity(),
			WaitTime:      line.WaitTime(),
			Price:         line.Price().Decimal(),
			Completed:     line.IsCompleted(),
			TimeStarted:   line.TimeStarted(),
			TimeCompleted: line.TimeCompleted(),
		})
	}

	return SubOrderDTO{
		HawkerCenter: s.Stall().HawkerCenter(),
		StallName:    s.Stall().StallName(),
		OrderID:      s.OrderID().String(),
		UserID:       s.UserID(),
		Contact:      s.Contact(),
		CreatedAt:    s.CreatedAt(),
		Lines:        lines,
	}
}

func toDomain(dto SubOrderDTO) (*suborder.StallSubOrder, error) {
	ref, err := kernel.NewStallRef(dto.HawkerCenter, dto.StallName)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.NewOrderID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	lines := make([]*suborder.DishLine, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		var completedAt *time.Time
		if lineDTO.TimeCompleted != nil {
			at := lineDTO.TimeCompleted.UTC()
			completedAt = &at
		}

		line, lineErr := suborder.RestoreDishLine(
			lineDTO.DishName,
			lineDTO.Quantity,
			lineDTO.WaitTime,
			kernel.NewMoney(lineDTO.Price),
			lineDTO.Completed,
			lineDTO.TimeStarted.UTC(),
			completedAt,
		)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return suborder.RestoreStallSubOrder(ref, orderID, dto.UserID, dto.Contact, dto.CreatedAt.UTC(), lines)
}
