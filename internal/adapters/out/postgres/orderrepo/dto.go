// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Items live in their own table and are written once, when the order is created.
type OrderDTO struct {
	OrderID       string          `gorm:"type:varchar(128);primaryKey"`
	UserID        string          `gorm:"type:varchar(255);not null"`
	Contact       string          `gorm:"type:varchar(64);not null"`
	HawkerCenter  string          `gorm:"type:varchar(255);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentStatus string          `gorm:"type:varchar(16);not null;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	Items         []ItemDTO       `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one dish of an order. Position keeps the customer's ordering.
type ItemDTO struct {
	OrderID   string          `gorm:"type:varchar(128);primaryKey"`
	StallName string          `gorm:"type:varchar(255);primaryKey"`
	DishName  string          `gorm:"type:varchar(255);primaryKey"`
	Position  int             `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	WaitTime  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:   o.ID().String(),
			StallName: item.StallName(),
			DishName:  item.DishName(),
			Position:  i,
			Quantity:  item.Quantity(),
			WaitTime:  item.WaitTime(),
			Price:     item.Price().Decimal(),
		})
	}

	return OrderDTO{
		OrderID:       o.ID().String(),
		UserID:        o.UserID(),
		Contact:       o.Contact(),
		HawkerCenter:  o.HawkerCenter(),
		Amount:        o.Amount().Decimal(),
		PaymentStatus: o.PaymentStatus().String(),
		CreatedAt:     o.CreatedAt(),
		Items:         items,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. dto.Items must be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.NewOrderID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(
			itemDTO.StallName,
			itemDTO.DishName,
			itemDTO.Quantity,
			itemDTO.WaitTime,
			kernel.NewMoney(itemDTO.Price),
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.UserID,
		dto.Contact,
		dto.HawkerCenter,
		items,
		kernel.NewMoney(dto.Amount),
		status,
		dto.CreatedAt.UTC(),
	)
}
