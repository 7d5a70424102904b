// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The occupied range column is deliberately absent: a database trigger derives
// it from start_at, end_at and buffer_hours, so the application never writes it.
type OrderDTO struct {
	ID          int64  `gorm:"primaryKey"`
	OrderID     string `gorm:"column:order_id;uniqueIndex"`
	UserName    string
	UserWeChat  string `gorm:"column:user_wechat"`
	SKU         string `gorm:"column:sku"`
	StartAt     time.Time
	EndAt       time.Time
	BufferHours int
	Status      string
	LockerCode  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// The surrogate primary key stays zero; inserts let the database assign it and
// updates address the row by its public order identifier.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		OrderID:     aggregate.ID(),
		UserName:    aggregate.UserName(),
		UserWeChat:  aggregate.UserWeChat(),
		SKU:         aggregate.SKU(),
		StartAt:     aggregate.Period().Start(),
		EndAt:       aggregate.Period().End(),
		BufferHours: aggregate.BufferHours(),
		Status:      aggregate.Status().String(),
		LockerCode:  aggregate.LockerCode(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the stored timestamps using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.OrderID,
		dto.UserName,
		dto.UserWeChat,
		dto.SKU,
		kernel.NewTimeRange(dto.StartAt, dto.EndAt),
		dto.BufferHours,
		status,
		dto.LockerCode,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
