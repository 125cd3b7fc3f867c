package cmd

import (
	"log/slog"
	"math/rand/v2"

	adapterhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/config"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/notify"
	"dispatch/internal/sim"
)

// CompositionRoot wires adapters, use cases and background jobs together.
// The unit of work factory decides where state lives: the GORM factory for
// PostgreSQL or the in-memory store.
type CompositionRoot struct {
	cfg        *config.Store
	bus        *notify.Bus
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger
	rng        *rand.Rand
}

// NewCompositionRoot builds the object graph and connects the configuration
// store's hooks to the notification bus.
func NewCompositionRoot(
	cfg *config.Store,
	bus *notify.Bus,
	uowFactory ports.UnitOfWorkFactory,
	logger *slog.Logger,
	rng *rand.Rand,
) CompositionRoot {
	cfg.OnParamsChanged(func(config.Params) { bus.NotifyConfigChanged() })
	cfg.OnClockChanged(bus.NotifyClockChanged)

	return CompositionRoot{
		cfg:        cfg,
		bus:        bus,
		uowFactory: uowFactory,
		logger:     logger,
		rng:        rng,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.cfg, c.bus)
}

func (c *CompositionRoot) CreateAssociateCourierCommandHandler() commands.AssociateCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssociateCourierCommandHandler(f, c.cfg, c.bus)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(f, services.NewDispatcher(c.cfg), c.cfg, c.bus)
}

func (c *CompositionRoot) CreatePickUpOrderCommandHandler() commands.PickUpOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPickUpOrderCommandHandler(f, c.cfg, c.bus)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliverOrderCommandHandler(f, c.cfg, c.bus)
}

func (c *CompositionRoot) CreateRefuseOrderCommandHandler() commands.RefuseOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefuseOrderCommandHandler(f, c.cfg, c.bus)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.cfg, c.bus)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f, c.cfg, c.bus)
}

func (c *CompositionRoot) CreateUpdateCourierCommandHandler() commands.UpdateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateSetCourierStatusCommandHandler() commands.SetCourierStatusCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierStatusCommandHandler(f, c.cfg, c.bus)
}

func (c *CompositionRoot) CreateDeleteCourierCommandHandler() commands.DeleteCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteCourierCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateSweepInactiveCouriersCommandHandler() commands.SweepInactiveCouriersCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepInactiveCouriersCommandHandler(f, c.cfg, c.cfg, c.bus)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.queryUoWFactory(), c.cfg, c.cfg)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.queryUoWFactory(), c.cfg, c.cfg)
}

func (c *CompositionRoot) CreateGetCouriersQueryHandler() queries.GetCouriersQueryHandler {
	return queries.NewGetCouriersQueryHandler(c.queryUoWFactory())
}

func (c *CompositionRoot) CreateGetDeliveryHistoryQueryHandler() queries.GetDeliveryHistoryQueryHandler {
	return queries.NewGetDeliveryHistoryQueryHandler(c.queryUoWFactory())
}

// CreateSimulationEngine builds the engine on top of the same command
// handlers the HTTP API uses.
func (c *CompositionRoot) CreateSimulationEngine() *sim.Engine {
	var f sim.UoWFactory = FuncSimUoWFactory(func() sim.UoW {
		return c.uowFactory.Create()
	})

	return sim.NewEngine(c.logger, c.cfg, f, sim.Handlers{
		Associate: c.CreateAssociateCourierCommandHandler(),
		PickUp:    c.CreatePickUpOrderCommandHandler(),
		Deliver:   c.CreateDeliverOrderCommandHandler(),
		Refuse:    c.CreateRefuseOrderCommandHandler(),
		Cancel:    c.CreateCancelOrderCommandHandler(),
	}, c.rng)
}

// CreateJobManager builds the background job coordinator.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSimulationEngine(),
		c.CreateSweepInactiveCouriersCommandHandler(),
		c.logger,
	)
}

// CreateHTTPServer builds the REST API server.
func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(c.cfg, adapterhttp.Handlers{
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		AssociateCourier: c.CreateAssociateCourierCommandHandler(),
		DispatchOrder:    c.CreateDispatchOrderCommandHandler(),
		PickUpOrder:      c.CreatePickUpOrderCommandHandler(),
		DeliverOrder:     c.CreateDeliverOrderCommandHandler(),
		RefuseOrder:      c.CreateRefuseOrderCommandHandler(),
		CancelOrder:      c.CreateCancelOrderCommandHandler(),
		CreateCourier:    c.CreateCreateCourierCommandHandler(),
		UpdateCourier:    c.CreateUpdateCourierCommandHandler(),
		SetCourierStatus: c.CreateSetCourierStatusCommandHandler(),
		DeleteCourier:    c.CreateDeleteCourierCommandHandler(),

		GetOrders:          c.CreateGetOrdersQueryHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		GetCouriers:        c.CreateGetCouriersQueryHandler(),
		GetDeliveryHistory: c.CreateGetDeliveryHistoryQueryHandler(),
	})
}

func (c *CompositionRoot) queryUoWFactory() queries.UoWFactory {
	return FuncQueryUoWFactory(func() queries.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncQueryUoWFactory func() queries.UoW

func (f FuncQueryUoWFactory) Create() queries.UoW {
	return f()
}

type FuncSimUoWFactory func() sim.UoW

func (f FuncSimUoWFactory) Create() sim.UoW {
	return f()
}
