// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// IDSequence backs order identifier allocation.
const IDSequence = "order_ids"

// OrderDTO represents the database structure for persisting order aggregates.
// Status is not a column: it is derived from the timestamps at read time, so
// the row carries the full timestamp trail instead.
type OrderDTO struct {
	ID            int64       `gorm:"primaryKey"`
	OrderType     string      `gorm:"type:varchar(32);not null"`
	Address       string      `gorm:"not null"`
	Location      LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	CustomerName  string      `gorm:"not null"`
	CustomerPhone string
	WeightKg      float64
	VolumeLiters  float64
	CreatedAt     time.Time `gorm:"not null"`
	CourierID     *string   `gorm:"type:varchar(64);index"`
	AssociatedAt  *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents the embedded destination coordinates within the order table.
type LocationDTO struct {
	Latitude  float64
	Longitude float64
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID(),
		OrderType:     aggregate.OrderType().String(),
		Address:       aggregate.Address(),
		Location: LocationDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		CustomerName:  aggregate.CustomerName(),
		CustomerPhone: aggregate.CustomerPhone(),
		WeightKg:      aggregate.WeightKg(),
		VolumeLiters:  aggregate.VolumeLiters(),
		CreatedAt:     aggregate.CreatedAt().UTC(),
		CourierID:     aggregate.CourierID(),
		AssociatedAt:  utcPtr(aggregate.AssociatedAt()),
		PickedUpAt:    utcPtr(aggregate.PickedUpAt()),
		DeliveredAt:   utcPtr(aggregate.DeliveredAt()),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the lifecycle timestamps
// using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	orderType, err := order.ParseType(dto.OrderType)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.ID,
		orderType,
		dto.Address,
		location,
		dto.CustomerName,
		dto.CustomerPhone,
		dto.WeightKg,
		dto.VolumeLiters,
		dto.CreatedAt,
		dto.CourierID,
		dto.AssociatedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
	)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
