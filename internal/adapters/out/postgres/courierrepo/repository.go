package courierrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing courier to the database. Columns are written
// explicitly so deactivation and cap removal persist.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courierID", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id string) (*courier.Courier, error) {
	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courierID", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every courier ordered by id.
func (r *GormCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	return r.find(r.db.WithContext(ctx).Order("id"))
}

// GetAllActive retrieves couriers currently on shift.
func (r *GormCourierRepository) GetAllActive(ctx context.Context) ([]*courier.Courier, error) {
	return r.find(r.db.WithContext(ctx).Where("is_active").Order("id"))
}

// Delete removes a courier. Past deliveries keep referring to the id.
func (r *GormCourierRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&CourierDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courierID", id)
	}

	return nil
}

func (r *GormCourierRepository) find(query *gorm.DB) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, aggregate)
	}

	return couriers, nil
}
