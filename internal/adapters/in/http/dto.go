package http

import (
	"time"

	"dispatch/internal/config"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
)

// LocationDTO carries a coordinate pair in request and response bodies.
type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	OrderType     string      `json:"order_type"`
	Address       string      `json:"address"`
	Location      LocationDTO `json:"location"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	WeightKg      float64     `json:"weight_kg"`
	VolumeLiters  float64     `json:"volume_liters"`
}

// CreatedOrderResponse returns the id of a freshly created order.
type CreatedOrderResponse struct {
	ID int64 `json:"id"`
}

// AssociateCourierRequest is the body of POST /api/v1/orders/:id/associate.
type AssociateCourierRequest struct {
	CourierID string `json:"courier_id"`
}

// DispatchedOrderResponse names the courier auto-dispatch settled on.
type DispatchedOrderResponse struct {
	CourierID string `json:"courier_id"`
}

// OrderResponse is one order in list and detail responses. Both statuses are
// derived at read time.
type OrderResponse struct {
	ID             int64       `json:"id"`
	OrderType      string      `json:"order_type"`
	Address        string      `json:"address"`
	Location       LocationDTO `json:"location"`
	CustomerName   string      `json:"customer_name"`
	CustomerPhone  string      `json:"customer_phone,omitempty"`
	WeightKg       float64     `json:"weight_kg"`
	VolumeLiters   float64     `json:"volume_liters"`
	CreatedAt      time.Time   `json:"created_at"`
	CourierID      *string     `json:"courier_id,omitempty"`
	AssociatedAt   *time.Time  `json:"associated_at,omitempty"`
	PickedUpAt     *time.Time  `json:"picked_up_at,omitempty"`
	DeliveredAt    *time.Time  `json:"delivered_at,omitempty"`
	Status         string      `json:"status"`
	ScheduleStatus string      `json:"schedule_status"`
}

func toOrderResponse(row queries.OrderRow) OrderResponse {
	return OrderResponse{
		ID:             row.ID,
		OrderType:      row.OrderType.String(),
		Address:        row.Address,
		Location:       toLocationDTO(row.Location),
		CustomerName:   row.CustomerName,
		CustomerPhone:  row.CustomerPhone,
		WeightKg:       row.WeightKg,
		VolumeLiters:   row.VolumeLiters,
		CreatedAt:      row.CreatedAt,
		CourierID:      row.CourierID,
		AssociatedAt:   row.AssociatedAt,
		PickedUpAt:     row.PickedUpAt,
		DeliveredAt:    row.DeliveredAt,
		Status:         row.Status.String(),
		ScheduleStatus: row.ScheduleStatus.String(),
	}
}

// NewCourierRequest is the body of POST /api/v1/couriers and
// PUT /api/v1/couriers/:id.
type NewCourierRequest struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	Vehicle       string      `json:"vehicle"`
	Location      LocationDTO `json:"location"`
	MaxDistanceKm *float64    `json:"max_distance_km,omitempty"`
}

// SetCourierStatusRequest is the body of POST /api/v1/couriers/:id/status.
type SetCourierStatusRequest struct {
	Status string `json:"status"`
}

// CourierResponse is one courier in the list response. Status is derived
// from the active flag and open deliveries.
type CourierResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone,omitempty"`
	Email         string      `json:"email,omitempty"`
	Vehicle       string      `json:"vehicle"`
	Location      LocationDTO `json:"location"`
	MaxDistanceKm *float64    `json:"max_distance_km,omitempty"`
	StartedWorkAt time.Time   `json:"started_work_at"`
	Status        string      `json:"status"`
}

func toCourierResponse(row queries.CourierRow) CourierResponse {
	return CourierResponse{
		ID:            row.ID,
		Name:          row.Name,
		Phone:         row.Phone,
		Email:         row.Email,
		Vehicle:       row.Vehicle.String(),
		Location:      toLocationDTO(row.Location),
		MaxDistanceKm: row.MaxDistanceKm,
		StartedWorkAt: row.StartedWorkAt,
		Status:        row.Status.String(),
	}
}

// DeliveryResponse is one delivery attempt in the history response.
type DeliveryResponse struct {
	ID          int64      `json:"id"`
	OrderID     int64      `json:"order_id"`
	CourierID   string     `json:"courier_id"`
	CourierName string     `json:"courier_name"`
	Vehicle     string     `json:"vehicle"`
	DistanceKm  float64    `json:"distance_km"`
	StartedAt   time.Time  `json:"started_at"`
	Completion  *string    `json:"completion,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

func toDeliveryResponse(row queries.DeliveryRow) DeliveryResponse {
	var completion *string
	if row.Completion != nil {
		s := row.Completion.String()
		completion = &s
	}

	return DeliveryResponse{
		ID:          row.ID,
		OrderID:     row.OrderID,
		CourierID:   row.CourierID,
		CourierName: row.CourierName,
		Vehicle:     row.Vehicle.String(),
		DistanceKm:  row.DistanceKm,
		StartedAt:   row.StartedAt,
		Completion:  completion,
		EndedAt:     row.EndedAt,
	}
}

// ConfigResponse mirrors the tunable parameter set. Durations are seconds so
// clients do not need Go duration syntax.
type ConfigResponse struct {
	SpeedsKmh               map[string]float64 `json:"speeds_kmh"`
	MaxDeliveryTimeSeconds  int64              `json:"max_delivery_time_seconds"`
	RiskRangeSeconds        int64              `json:"risk_range_seconds"`
	InactivityRangeSeconds  int64              `json:"inactivity_range_seconds"`
	SimulatorIntervalSecond int64              `json:"simulator_interval_seconds"`
	DeliverRate             float64            `json:"deliver_rate"`
	RefuseRate              float64            `json:"refuse_rate"`
	AssignRate              float64            `json:"assign_rate"`
	FailureRatePerMinute    float64            `json:"failure_rate_per_minute"`
	ManagerCancelRate       float64            `json:"manager_cancel_rate"`
}

func toConfigResponse(p config.Params) ConfigResponse {
	speeds := make(map[string]float64, len(p.SpeedsKmh))
	for vehicle, speed := range p.SpeedsKmh {
		speeds[vehicle.String()] = speed
	}

	return ConfigResponse{
		SpeedsKmh:               speeds,
		MaxDeliveryTimeSeconds:  int64(p.MaxDeliveryTime / time.Second),
		RiskRangeSeconds:        int64(p.RiskRange / time.Second),
		InactivityRangeSeconds:  int64(p.InactivityRange / time.Second),
		SimulatorIntervalSecond: int64(p.SimulatorInterval / time.Second),
		DeliverRate:             p.DeliverRate,
		RefuseRate:              p.RefuseRate,
		AssignRate:              p.AssignRate,
		FailureRatePerMinute:    p.FailureRatePerMinute,
		ManagerCancelRate:       p.ManagerCancelRate,
	}
}

// SetConfigRequest carries a partial parameter update: absent fields keep
// their current values.
type SetConfigRequest struct {
	SpeedsKmh               map[string]float64 `json:"speeds_kmh,omitempty"`
	MaxDeliveryTimeSeconds  *int64             `json:"max_delivery_time_seconds,omitempty"`
	RiskRangeSeconds        *int64             `json:"risk_range_seconds,omitempty"`
	InactivityRangeSeconds  *int64             `json:"inactivity_range_seconds,omitempty"`
	SimulatorIntervalSecond *int64             `json:"simulator_interval_seconds,omitempty"`
	DeliverRate             *float64           `json:"deliver_rate,omitempty"`
	RefuseRate              *float64           `json:"refuse_rate,omitempty"`
	AssignRate              *float64           `json:"assign_rate,omitempty"`
	FailureRatePerMinute    *float64           `json:"failure_rate_per_minute,omitempty"`
	ManagerCancelRate       *float64           `json:"manager_cancel_rate,omitempty"`
}

// apply merges the request into the current parameter set.
func (r SetConfigRequest) apply(p *config.Params) error {
	for name, speed := range r.SpeedsKmh {
		vehicle, err := kernel.ParseVehicle(name)
		if err != nil {
			return err
		}
		p.SpeedsKmh[vehicle] = speed
	}

	if r.MaxDeliveryTimeSeconds != nil {
		p.MaxDeliveryTime = time.Duration(*r.MaxDeliveryTimeSeconds) * time.Second
	}
	if r.RiskRangeSeconds != nil {
		p.RiskRange = time.Duration(*r.RiskRangeSeconds) * time.Second
	}
	if r.InactivityRangeSeconds != nil {
		p.InactivityRange = time.Duration(*r.InactivityRangeSeconds) * time.Second
	}
	if r.SimulatorIntervalSecond != nil {
		p.SimulatorInterval = time.Duration(*r.SimulatorIntervalSecond) * time.Second
	}
	if r.DeliverRate != nil {
		p.DeliverRate = *r.DeliverRate
	}
	if r.RefuseRate != nil {
		p.RefuseRate = *r.RefuseRate
	}
	if r.AssignRate != nil {
		p.AssignRate = *r.AssignRate
	}
	if r.FailureRatePerMinute != nil {
		p.FailureRatePerMinute = *r.FailureRatePerMinute
	}
	if r.ManagerCancelRate != nil {
		p.ManagerCancelRate = *r.ManagerCancelRate
	}

	return nil
}

// ClockResponse reports the virtual clock.
type ClockResponse struct {
	Now time.Time `json:"now"`
}

// ForwardClockRequest is the body of POST /api/v1/clock/forward.
type ForwardClockRequest struct {
	IntervalSeconds int64 `json:"interval_seconds"`
}

func toLocationDTO(location kernel.Location) LocationDTO {
	return LocationDTO{
		Latitude:  location.Latitude(),
		Longitude: location.Longitude(),
	}
}
