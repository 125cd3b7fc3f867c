package sim

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"dispatch/internal/config"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/geo"
	"dispatch/internal/pkg/errs"
)

// maxTravelBufferMinutes bounds the random slack added on top of the
// physical travel time before an outcome rolls.
const maxTravelBufferMinutes = 10

type (
	// UoW is the read scope the engine snapshots state through.
	UoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		OrderRepository() ports.OrderRepository
		CourierRepository() ports.CourierRepository
		DeliveryRepository() ports.DeliveryRepository
	}

	// UoWFactory creates read scopes for snapshots.
	UoWFactory interface {
		Create() UoW
	}
)

// Handlers bundles the command handlers a tick mutates through. The engine
// has no other write path.
type Handlers struct {
	Associate commands.AssociateCourierCommandHandler
	PickUp    commands.PickUpOrderCommandHandler
	Deliver   commands.DeliverOrderCommandHandler
	Refuse    commands.RefuseOrderCommandHandler
	Cancel    commands.CancelOrderCommandHandler
}

// Engine advances the virtual clock and simulates courier behaviour.
// A compare-and-swap flag makes Tick non-reentrant: an overlapping invocation
// returns immediately instead of queueing, so timer callbacks never pile up.
type Engine struct {
	log        *slog.Logger
	cfg        *config.Store
	uowFactory UoWFactory
	handlers   Handlers
	rng        *rand.Rand

	running atomic.Bool
}

// NewEngine creates a simulation engine. The random source is injected so
// tests can fix the seed.
func NewEngine(
	log *slog.Logger,
	cfg *config.Store,
	uowFactory UoWFactory,
	handlers Handlers,
	rng *rand.Rand,
) *Engine {
	return &Engine{
		log:        log.With("component", "sim"),
		cfg:        cfg,
		uowFactory: uowFactory,
		handlers:   handlers,
		rng:        rng,
	}
}

// courierState is the per-courier slice of the tick snapshot. All
// probabilistic work happens against it outside the store lock.
type courierState struct {
	id            string
	location      kernel.Location
	maxDistanceKm *float64

	// current assignment, nil fields when the courier is free
	orderID       int64
	hasOrder      bool
	pickedUp      bool
	busySince     time.Time
	travelKm      float64
	travelVehicle kernel.Vehicle

	// cooldown bookkeeping for free couriers
	restUntil time.Time
}

type orderState struct {
	id       int64
	location kernel.Location
}

type snapshot struct {
	couriers   []courierState
	unfinished int
	unassigned []orderState
}

// Tick runs one simulation step: advance the clock, snapshot state, drive
// every active courier. Per-courier failures are logged and skipped; one bad
// courier never stalls the rest.
func (e *Engine) Tick(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		e.log.Debug("tick already in flight, skipping")
		return nil
	}
	defer e.running.Store(false)

	interval := e.cfg.SimulatorInterval()
	now, err := e.cfg.Forward(interval)
	if err != nil {
		return err
	}

	snap, err := e.snapshot(ctx)
	if err != nil {
		return err
	}
	if len(snap.couriers) == 0 || snap.unfinished == 0 {
		return nil
	}

	successRate := 1 - math.Pow(e.cfg.FailureRatePerMinute(), interval.Minutes())

	for _, c := range snap.couriers {
		if c.hasOrder {
			e.driveBusyCourier(ctx, c, now)
			continue
		}
		e.driveFreeCourier(ctx, c, now, successRate, snap.unassigned)
	}
	return nil
}

// snapshot reads the world under one short lock and releases it before any
// probabilistic work.
func (e *Engine) snapshot(ctx context.Context) (snapshot, error) {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	couriers, err := uow.CourierRepository().GetAllActive(ctx)
	if err != nil {
		return snapshot{}, err
	}

	unfinished, err := uow.OrderRepository().GetAllUnfinished(ctx)
	if err != nil {
		return snapshot{}, err
	}

	byCourier := make(map[string]int64)
	pickedUp := make(map[int64]bool)
	busySince := make(map[int64]time.Time)
	var unassigned []orderState
	for _, o := range unfinished {
		if o.CourierID() == nil {
			unassigned = append(unassigned, orderState{id: o.ID(), location: o.Location()})
			continue
		}
		byCourier[*o.CourierID()] = o.ID()
		if o.PickedUpAt() != nil {
			pickedUp[o.ID()] = true
			busySince[o.ID()] = *o.PickedUpAt()
		} else {
			busySince[o.ID()] = *o.AssociatedAt()
		}
	}

	deliveryRepo := uow.DeliveryRepository()
	states := make([]courierState, 0, len(couriers))
	for _, c := range couriers {
		state := courierState{
			id:            c.ID(),
			location:      c.Location(),
			maxDistanceKm: c.MaxDistanceKm(),
		}

		if orderID, ok := byCourier[c.ID()]; ok {
			open, err := deliveryRepo.GetOpenByCourier(ctx, c.ID())
			if err != nil {
				e.log.Warn("courier has an order but no open delivery",
					"courier_id", c.ID(), "order_id", orderID, "error", err)
				continue
			}
			state.hasOrder = true
			state.orderID = orderID
			state.pickedUp = pickedUp[orderID]
			state.busySince = busySince[orderID]
			state.travelKm = open.DistanceKm()
			state.travelVehicle = open.Vehicle()
		} else {
			// Symmetric rest: a courier rests as long as their last
			// delivery took.
			last, err := deliveryRepo.GetLastClosedByCourier(ctx, c.ID())
			if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
				return snapshot{}, err
			}
			if last != nil {
				if restDuration, ok := last.Duration(); ok {
					state.restUntil = last.EndedAt().Add(restDuration)
				}
			}
		}

		states = append(states, state)
	}

	if err := uow.Commit(ctx); err != nil {
		return snapshot{}, err
	}

	return snapshot{
		couriers:   states,
		unfinished: len(unfinished),
		unassigned: unassigned,
	}, nil
}

// driveFreeCourier rolls the success draw and, on success, sometimes takes a
// random order within the courier's distance cap.
func (e *Engine) driveFreeCourier(
	ctx context.Context, c courierState, now time.Time, successRate float64, unassigned []orderState,
) {
	if now.Before(c.restUntil) {
		return
	}
	if e.rng.Float64() >= successRate {
		return
	}
	if e.rng.Float64() >= e.cfg.AssignRate() {
		return
	}

	var reachable []orderState
	for _, o := range unassigned {
		if c.maxDistanceKm != nil {
			distance, err := geo.DistanceKm(c.location, o.location)
			if err != nil || distance > *c.maxDistanceKm {
				continue
			}
		}
		reachable = append(reachable, o)
	}
	if len(reachable) == 0 {
		return
	}

	pick := reachable[e.rng.IntN(len(reachable))]
	cmd, err := commands.NewAssociateCourierCommand(pick.id, c.id)
	if err != nil {
		e.log.Warn("building associate command failed", "courier_id", c.id, "error", err)
		return
	}
	if err := e.handlers.Associate.Handle(ctx, cmd); err != nil {
		// Another courier may have taken the order since the snapshot.
		e.log.Debug("association skipped", "courier_id", c.id, "order_id", pick.id, "error", err)
		return
	}
	e.log.Info("courier took order", "courier_id", c.id, "order_id", pick.id)
}

// driveBusyCourier picks the order up first, then rolls the outcome once the
// elapsed time beats the physical travel time plus a random buffer.
func (e *Engine) driveBusyCourier(ctx context.Context, c courierState, now time.Time) {
	if !c.pickedUp {
		cmd, err := commands.NewPickUpOrderCommand(c.orderID)
		if err != nil {
			e.log.Warn("building pickup command failed", "order_id", c.orderID, "error", err)
			return
		}
		if err := e.handlers.PickUp.Handle(ctx, cmd); err != nil {
			e.log.Warn("pickup failed", "courier_id", c.id, "order_id", c.orderID, "error", err)
		}
		return
	}

	travel := geo.TravelTime(c.travelKm, e.cfg.SpeedKmh(c.travelVehicle), e.cfg.FallbackSpeedKmh())
	buffer := time.Duration(e.rng.Float64() * float64(maxTravelBufferMinutes) * float64(time.Minute))
	threshold := travel + buffer

	if now.Sub(c.busySince) <= threshold {
		if e.rng.Float64() < e.cfg.ManagerCancelRate() {
			e.finish(ctx, c, "manager cancelled order", e.cancelOrder)
		}
		return
	}

	roll := e.rng.Float64()
	switch {
	case roll < e.cfg.DeliverRate():
		e.finish(ctx, c, "order delivered", e.deliverOrder)
	case roll < e.cfg.DeliverRate()+e.cfg.RefuseRate():
		e.finish(ctx, c, "customer refused order", e.refuseOrder)
	default:
		e.finish(ctx, c, "order cancelled", e.cancelOrder)
	}
}

func (e *Engine) finish(
	ctx context.Context, c courierState, event string, op func(context.Context, int64) error,
) {
	if err := op(ctx, c.orderID); err != nil {
		e.log.Warn("tick mutation failed",
			"courier_id", c.id, "order_id", c.orderID, "event", event, "error", err)
		return
	}
	e.log.Info(event, "courier_id", c.id, "order_id", c.orderID)
}

func (e *Engine) deliverOrder(ctx context.Context, orderID int64) error {
	cmd, err := commands.NewDeliverOrderCommand(orderID)
	if err != nil {
		return err
	}
	return e.handlers.Deliver.Handle(ctx, cmd)
}

func (e *Engine) refuseOrder(ctx context.Context, orderID int64) error {
	cmd, err := commands.NewRefuseOrderCommand(orderID)
	if err != nil {
		return err
	}
	return e.handlers.Refuse.Handle(ctx, cmd)
}

func (e *Engine) cancelOrder(ctx context.Context, orderID int64) error {
	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return err
	}
	return e.handlers.Cancel.Handle(ctx, cmd)
}
