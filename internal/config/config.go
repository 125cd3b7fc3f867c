package config

import (
	"maps"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Params is the tunable parameter record. It is a plain value: callers get
// copies and push whole records back through SetParams.
type Params struct {
	// SpeedsKmh maps a vehicle to its travel speed in km/h.
	SpeedsKmh map[kernel.Vehicle]float64

	// MaxDeliveryTime is the delivery-time commitment measured from order
	// creation.
	MaxDeliveryTime time.Duration

	// RiskRange is the window before MaxDeliveryTime within which an order
	// counts as in risk.
	RiskRange time.Duration

	// InactivityRange is how long a courier may work before the periodic
	// sweep deactivates them.
	InactivityRange time.Duration

	// SimulatorInterval is the period between simulation ticks, also the
	// amount the virtual clock advances per tick.
	SimulatorInterval time.Duration

	// DeliverRate and RefuseRate split the outcome roll for a courier past
	// the travel-time threshold. The remainder cancels.
	DeliverRate float64
	RefuseRate  float64

	// AssignRate is the chance a free successful courier picks up an
	// unassigned order during a tick.
	AssignRate float64

	// FailureRatePerMinute feeds the per-tick success draw
	// 1 - rate^intervalMinutes.
	FailureRatePerMinute float64

	// ManagerCancelRate is the chance of a manager-initiated cancellation
	// while a courier is still under the travel-time threshold.
	ManagerCancelRate float64
}

// DefaultParams returns the parameter record the store starts with.
func DefaultParams() Params {
	return Params{
		SpeedsKmh: map[kernel.Vehicle]float64{
			kernel.VehicleOnFoot:  5,
			kernel.VehicleBicycle: 15,
			kernel.VehicleScooter: 30,
			kernel.VehicleCar:     50,
		},
		MaxDeliveryTime:      2 * time.Hour,
		RiskRange:            30 * time.Minute,
		InactivityRange:      8 * time.Hour,
		SimulatorInterval:    time.Minute,
		DeliverRate:          0.90,
		RefuseRate:           0.05,
		AssignRate:           0.50,
		FailureRatePerMinute: 0.40,
		ManagerCancelRate:    0.05,
	}
}

func (p Params) validate() error {
	if p.MaxDeliveryTime <= 0 {
		return errs.NewValueIsOutOfRangeError("maxDeliveryTime", p.MaxDeliveryTime, 1, "+inf")
	}
	if p.RiskRange < 0 || p.RiskRange > p.MaxDeliveryTime {
		return errs.NewValueIsOutOfRangeError("riskRange", p.RiskRange, 0, p.MaxDeliveryTime)
	}
	if p.InactivityRange <= 0 {
		return errs.NewValueIsOutOfRangeError("inactivityRange", p.InactivityRange, 1, "+inf")
	}
	if p.SimulatorInterval <= 0 {
		return errs.NewValueIsOutOfRangeError("simulatorInterval", p.SimulatorInterval, 1, "+inf")
	}
	for vehicle, speed := range p.SpeedsKmh {
		if speed <= 0 {
			return errs.NewValueIsOutOfRangeError("speedsKmh."+vehicle.String(), speed, 0, "+inf")
		}
	}
	for name, rate := range map[string]float64{
		"deliverRate":          p.DeliverRate,
		"refuseRate":           p.RefuseRate,
		"assignRate":           p.AssignRate,
		"failureRatePerMinute": p.FailureRatePerMinute,
		"managerCancelRate":    p.ManagerCancelRate,
	} {
		if rate < 0 || rate > 1 {
			return errs.NewValueIsOutOfRangeError(name, rate, 0, 1)
		}
	}
	if p.DeliverRate+p.RefuseRate > 1 {
		return errs.NewValueIsInvalidErrorWithCause("deliverRate+refuseRate",
			errs.ErrValueIsOutOfRange)
	}
	return nil
}

func (p Params) equal(other Params) bool {
	return maps.Equal(p.SpeedsKmh, other.SpeedsKmh) &&
		p.MaxDeliveryTime == other.MaxDeliveryTime &&
		p.RiskRange == other.RiskRange &&
		p.InactivityRange == other.InactivityRange &&
		p.SimulatorInterval == other.SimulatorInterval &&
		p.DeliverRate == other.DeliverRate &&
		p.RefuseRate == other.RefuseRate &&
		p.AssignRate == other.AssignRate &&
		p.FailureRatePerMinute == other.FailureRatePerMinute &&
		p.ManagerCancelRate == other.ManagerCancelRate
}

func (p Params) clone() Params {
	p.SpeedsKmh = maps.Clone(p.SpeedsKmh)
	return p
}

// Store is the process-wide mutable config record. One instance per process,
// created by the composition root and passed down explicitly.
type Store struct {
	mu     sync.RWMutex
	now    time.Time
	epoch  time.Time
	params Params

	onParamsChanged func(Params)
	onClockChanged  func(time.Time)
}

// NewStore creates a store with default parameters and the virtual clock set
// to start.
func NewStore(start time.Time) *Store {
	start = start.UTC()
	return &Store{
		now:    start,
		epoch:  start,
		params: DefaultParams(),
	}
}

// OnParamsChanged registers the hook fired after a parameter record actually
// changes. Not safe to call concurrently with mutations; wire it once at
// startup.
func (s *Store) OnParamsChanged(fn func(Params)) {
	s.onParamsChanged = fn
}

// OnClockChanged registers the hook fired after the clock advances.
func (s *Store) OnClockChanged(fn func(time.Time)) {
	s.onClockChanged = fn
}

// Now returns the current virtual time.
func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

// Forward advances the virtual clock by interval. The clock only moves
// forward. The clock-changed hook fires strictly after the new value is
// visible to readers.
func (s *Store) Forward(interval time.Duration) (time.Time, error) {
	if interval <= 0 {
		return time.Time{}, errs.NewValueIsOutOfRangeError("interval", interval, 1, "+inf")
	}

	s.mu.Lock()
	s.now = s.now.Add(interval)
	now := s.now
	s.mu.Unlock()

	if s.onClockChanged != nil {
		s.onClockChanged(now)
	}
	return now, nil
}

// Params returns a copy of the current parameter record.
func (s *Store) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.clone()
}

// SetParams replaces the parameter record. The params-changed hook fires only
// if at least one field actually differs from the current record.
func (s *Store) SetParams(p Params) error {
	if err := p.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.params.equal(p) {
		s.mu.Unlock()
		return nil
	}
	s.params = p.clone()
	applied := s.params.clone()
	s.mu.Unlock()

	if s.onParamsChanged != nil {
		s.onParamsChanged(applied)
	}
	return nil
}

// Reset restores default parameters and rewinds the clock to the store's
// start time.
func (s *Store) Reset() {
	s.mu.Lock()
	s.params = DefaultParams()
	s.now = s.epoch
	now := s.now
	applied := s.params.clone()
	s.mu.Unlock()

	if s.onParamsChanged != nil {
		s.onParamsChanged(applied)
	}
	if s.onClockChanged != nil {
		s.onClockChanged(now)
	}
}

// SpeedKmh returns the configured speed for vehicle, 0 when unset. Callers
// that need a safe divisor pair it with FallbackSpeedKmh.
func (s *Store) SpeedKmh(vehicle kernel.Vehicle) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.SpeedsKmh[vehicle]
}

// FallbackSpeedKmh returns the Car speed, used whenever a vehicle lookup
// yields a non-positive value.
func (s *Store) FallbackSpeedKmh() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.SpeedsKmh[kernel.VehicleCar]
}

func (s *Store) MaxDeliveryTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.MaxDeliveryTime
}

func (s *Store) RiskRange() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.RiskRange
}

func (s *Store) InactivityRange() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.InactivityRange
}

func (s *Store) SimulatorInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.SimulatorInterval
}

func (s *Store) DeliverRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.DeliverRate
}

func (s *Store) RefuseRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.RefuseRate
}

func (s *Store) AssignRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.AssignRate
}

func (s *Store) FailureRatePerMinute() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.FailureRatePerMinute
}

func (s *Store) ManagerCancelRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.ManagerCancelRate
}
