package deliveryrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// NextID allocates the next delivery identifier from the database sequence.
func (r *GormDeliveryRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval('" + IDSequence + "')").Scan(&id).Error; err != nil {
		return 0, err
	}
	return id, nil
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
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

// Update saves an existing delivery to the database.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliveryID", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id int64) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryID", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every delivery ordered by start time.
func (r *GormDeliveryRepository) GetAll(ctx context.Context) ([]*delivery.Delivery, error) {
	return r.find(r.db.WithContext(ctx).Order("started_at, id"))
}

// GetAllByOrder retrieves the order's deliveries ordered by start time.
func (r *GormDeliveryRepository) GetAllByOrder(
	ctx context.Context, orderID int64,
) ([]*delivery.Delivery, error) {
	return r.find(r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("started_at, id"))
}

// GetLastByOrder retrieves the order's most recently started delivery.
func (r *GormDeliveryRepository) GetLastByOrder(
	ctx context.Context, orderID int64,
) (*delivery.Delivery, error) {
	return r.first(r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("started_at DESC, id DESC"), "orderID", orderID)
}

// GetOpenByOrder retrieves the order's open delivery. At most one exists.
func (r *GormDeliveryRepository) GetOpenByOrder(
	ctx context.Context, orderID int64,
) (*delivery.Delivery, error) {
	return r.first(r.db.WithContext(ctx).
		Where("order_id = ? AND ended_at IS NULL", orderID), "orderID", orderID)
}

// GetOpenByCourier retrieves the courier's open delivery, if any.
func (r *GormDeliveryRepository) GetOpenByCourier(
	ctx context.Context, courierID string,
) (*delivery.Delivery, error) {
	return r.first(r.db.WithContext(ctx).
		Where("courier_id = ? AND ended_at IS NULL", courierID), "courierID", courierID)
}

// GetLastClosedByCourier retrieves the courier's most recently closed delivery.
func (r *GormDeliveryRepository) GetLastClosedByCourier(
	ctx context.Context, courierID string,
) (*delivery.Delivery, error) {
	return r.first(r.db.WithContext(ctx).
		Where("courier_id = ? AND ended_at IS NOT NULL", courierID).
		Order("ended_at DESC, id DESC"), "courierID", courierID)
}

func (r *GormDeliveryRepository) first(query *gorm.DB, key string, value any) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	if err := query.First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(key, value)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDeliveryRepository) find(query *gorm.DB) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, aggregate)
	}

	return deliveries, nil
}
