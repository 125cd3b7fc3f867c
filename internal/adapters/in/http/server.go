// Package http exposes the dispatch system over a REST API built on echo.
// Handlers translate JSON payloads into commands and queries; all business
// rules stay behind the command handlers.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dispatch/internal/config"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"
)

// Server implements the HTTP handlers for the dispatch API.
// It coordinates between HTTP requests and application use cases.
type Server struct {
	cfg *config.Store

	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	associateCourierHandler commands.AssociateCourierCommandHandler
	dispatchOrderHandler    commands.DispatchOrderCommandHandler
	pickUpOrderHandler      commands.PickUpOrderCommandHandler
	deliverOrderHandler     commands.DeliverOrderCommandHandler
	refuseOrderHandler      commands.RefuseOrderCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	createCourierHandler    commands.CreateCourierCommandHandler
	updateCourierHandler    commands.UpdateCourierCommandHandler
	setCourierStatusHandler commands.SetCourierStatusCommandHandler
	deleteCourierHandler    commands.DeleteCourierCommandHandler

	// Query handlers
	getOrdersHandler          queries.GetOrdersQueryHandler
	getOrderHandler           queries.GetOrderQueryHandler
	getCouriersHandler        queries.GetCouriersQueryHandler
	getDeliveryHistoryHandler queries.GetDeliveryHistoryQueryHandler
}

// Handlers bundles every use case the server exposes.
type Handlers struct {
	CreateOrder      commands.CreateOrderCommandHandler
	AssociateCourier commands.AssociateCourierCommandHandler
	DispatchOrder    commands.DispatchOrderCommandHandler
	PickUpOrder      commands.PickUpOrderCommandHandler
	DeliverOrder     commands.DeliverOrderCommandHandler
	RefuseOrder      commands.RefuseOrderCommandHandler
	CancelOrder      commands.CancelOrderCommandHandler
	CreateCourier    commands.CreateCourierCommandHandler
	UpdateCourier    commands.UpdateCourierCommandHandler
	SetCourierStatus commands.SetCourierStatusCommandHandler
	DeleteCourier    commands.DeleteCourierCommandHandler

	GetOrders          queries.GetOrdersQueryHandler
	GetOrder           queries.GetOrderQueryHandler
	GetCouriers        queries.GetCouriersQueryHandler
	GetDeliveryHistory queries.GetDeliveryHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(cfg *config.Store, h Handlers) *Server {
	return &Server{
		cfg:                       cfg,
		createOrderHandler:        h.CreateOrder,
		associateCourierHandler:   h.AssociateCourier,
		dispatchOrderHandler:      h.DispatchOrder,
		pickUpOrderHandler:        h.PickUpOrder,
		deliverOrderHandler:       h.DeliverOrder,
		refuseOrderHandler:        h.RefuseOrder,
		cancelOrderHandler:        h.CancelOrder,
		createCourierHandler:      h.CreateCourier,
		updateCourierHandler:      h.UpdateCourier,
		setCourierStatusHandler:   h.SetCourierStatus,
		deleteCourierHandler:      h.DeleteCourier,
		getOrdersHandler:          h.GetOrders,
		getOrderHandler:           h.GetOrder,
		getCouriersHandler:        h.GetCouriers,
		getDeliveryHistoryHandler: h.GetDeliveryHistory,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/history", s.GetDeliveryHistory)
	api.POST("/orders/:id/associate", s.AssociateCourier)
	api.POST("/orders/:id/dispatch", s.DispatchOrder)
	api.POST("/orders/:id/pickup", s.PickUpOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)
	api.POST("/orders/:id/refuse", s.RefuseOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	api.POST("/couriers", s.CreateCourier)
	api.GET("/couriers", s.GetCouriers)
	api.PUT("/couriers/:id", s.UpdateCourier)
	api.POST("/couriers/:id/status", s.SetCourierStatus)
	api.DELETE("/couriers/:id", s.DeleteCourier)

	api.GET("/config", s.GetConfig)
	api.PUT("/config", s.SetConfig)
	api.POST("/config/reset", s.ResetConfig)
	api.GET("/clock", s.GetClock)
	api.POST("/clock/forward", s.ForwardClock)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ErrorResponse is the JSON body every failed request carries.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fail maps a domain error onto an HTTP status via the errs sentinels.
func fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrObjectAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
