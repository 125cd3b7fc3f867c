package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// NextID allocates the next order identifier from the database sequence.
func (r *GormOrderRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval('" + IDSequence + "')").Scan(&id).Error; err != nil {
		return 0, err
	}
	return id, nil
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database. The nullable timestamp
// columns are written explicitly so clearing a courier association persists.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderID", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every order ordered by id.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, r.db.WithContext(ctx).Order("id"))
}

// GetAllUnfinished retrieves orders that have not been closed yet.
func (r *GormOrderRepository) GetAllUnfinished(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("delivered_at IS NULL").
		Order("id"))
}

// GetAllUnassigned retrieves open orders with no courier attached.
func (r *GormOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("delivered_at IS NULL AND courier_id IS NULL").
		Order("id"))
}

// GetAllUnfinishedByCourier retrieves the courier's current workload.
func (r *GormOrderRepository) GetAllUnfinishedByCourier(
	ctx context.Context, courierID string,
) ([]*order.Order, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("delivered_at IS NULL AND courier_id = ?", courierID).
		Order("id"))
}

func (r *GormOrderRepository) find(_ context.Context, query *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
