// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// The on-route state is not a column: whether the courier is on route is
// derived from open deliveries at read time.
type CourierDTO struct {
	ID            string `gorm:"type:varchar(64);primaryKey"`
	Name          string `gorm:"not null"`
	Phone         string
	Email         string
	IsActive      bool `gorm:"index"`
	MaxDistanceKm *float64
	Vehicle       string      `gorm:"type:varchar(32);not null"`
	Location      LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	StartedWorkAt time.Time   `gorm:"not null"`
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO represents the embedded courier coordinates within the courier table.
type LocationDTO struct {
	Latitude  float64
	Longitude float64
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:            aggregate.ID(),
		Name:          aggregate.Name(),
		Phone:         aggregate.Phone(),
		Email:         aggregate.Email(),
		IsActive:      aggregate.IsActive(),
		MaxDistanceKm: aggregate.MaxDistanceKm(),
		Vehicle:       aggregate.Vehicle().String(),
		Location: LocationDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		StartedWorkAt: aggregate.StartedWorkAt().UTC(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	vehicle, err := kernel.ParseVehicle(dto.Vehicle)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		dto.ID,
		dto.Name,
		dto.Phone,
		dto.Email,
		dto.IsActive,
		dto.MaxDistanceKm,
		vehicle,
		location,
		dto.StartedWorkAt,
	)
}
