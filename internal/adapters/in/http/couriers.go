package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CreateCourier handles POST /api/v1/couriers - registers a courier and
// starts their shift.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req NewCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := newCourierCommand(req)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetCouriers handles GET /api/v1/couriers - retrieves all couriers with
// derived statuses.
func (s *Server) GetCouriers(ctx echo.Context) error {
	rows, err := s.getCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetCouriersQuery())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]CourierResponse, len(rows))
	for i, row := range rows {
		response[i] = toCourierResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateCourier handles PUT /api/v1/couriers/:id - updates contact details,
// vehicle, location and the distance cap.
func (s *Server) UpdateCourier(ctx echo.Context) error {
	var req NewCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewLocation(req.Location.Latitude, req.Location.Longitude)
	if err != nil {
		return fail(ctx, err)
	}

	vehicle, err := kernel.ParseVehicle(req.Vehicle)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierCommand(
		ctx.Param("id"), req.Name, req.Phone, req.Email, vehicle, location, req.MaxDistanceKm)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.updateCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetCourierStatus handles POST /api/v1/couriers/:id/status - starts or ends
// a shift. The on-route status is derived and cannot be set here.
func (s *Server) SetCourierStatus(ctx echo.Context) error {
	var req SetCourierStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := courier.ParseStatus(req.Status)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewSetCourierStatusCommand(ctx.Param("id"), status)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.setCourierStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteCourier handles DELETE /api/v1/couriers/:id - removes an inactive
// courier with no work in flight.
func (s *Server) DeleteCourier(ctx echo.Context) error {
	cmd, err := commands.NewDeleteCourierCommand(ctx.Param("id"))
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.deleteCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func newCourierCommand(req NewCourierRequest) (commands.CreateCourierCommand, error) {
	location, err := kernel.NewLocation(req.Location.Latitude, req.Location.Longitude)
	if err != nil {
		return commands.CreateCourierCommand{}, err
	}

	vehicle, err := kernel.ParseVehicle(req.Vehicle)
	if err != nil {
		return commands.CreateCourierCommand{}, err
	}

	return commands.NewCreateCourierCommand(
		req.ID, req.Name, req.Phone, req.Email, vehicle, location, req.MaxDistanceKm)
}
