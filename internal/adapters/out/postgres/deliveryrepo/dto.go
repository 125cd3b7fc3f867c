// Package deliveryrepo provides data transfer objects and mapping functions for delivery persistence.
// This package implements the repository pattern for the delivery domain aggregate, handling
// the conversion between domain entities and database representations.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// IDSequence backs delivery identifier allocation.
const IDSequence = "delivery_ids"

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// Completion and the end time are both nullable and always set together, the
// invariant the aggregate enforces on restore.
type DeliveryDTO struct {
	ID         int64     `gorm:"primaryKey"`
	OrderID    int64     `gorm:"index;not null"`
	CourierID  string    `gorm:"type:varchar(64);index;not null"`
	Vehicle    string    `gorm:"type:varchar(32);not null"`
	DistanceKm float64   `gorm:"not null"`
	StartedAt  time.Time `gorm:"not null"`
	Completion *string   `gorm:"type:varchar(32)"`
	EndedAt    *time.Time
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var completion *string
	if c := aggregate.Completion(); c != nil {
		s := c.String()
		completion = &s
	}

	var endedAt *time.Time
	if t := aggregate.EndedAt(); t != nil {
		u := t.UTC()
		endedAt = &u
	}

	return DeliveryDTO{
		ID:         aggregate.ID(),
		OrderID:    aggregate.OrderID(),
		CourierID:  aggregate.CourierID(),
		Vehicle:    aggregate.Vehicle().String(),
		DistanceKm: aggregate.DistanceKm(),
		StartedAt:  aggregate.StartedAt().UTC(),
		Completion: completion,
		EndedAt:    endedAt,
	}
}

// toDomain converts a database DTO to a delivery domain aggregate using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	vehicle, err := kernel.ParseVehicle(dto.Vehicle)
	if err != nil {
		return nil, err
	}

	var completion *delivery.Completion
	if dto.Completion != nil {
		c, parseErr := delivery.ParseCompletion(*dto.Completion)
		if parseErr != nil {
			return nil, parseErr
		}
		completion = &c
	}

	return delivery.RestoreDelivery(
		dto.ID,
		dto.OrderID,
		dto.CourierID,
		vehicle,
		dto.DistanceKm,
		dto.StartedAt,
		completion,
		dto.EndedAt,
	)
}
