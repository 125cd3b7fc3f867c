package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// GetConfig handles GET /api/v1/config - reports the current parameter set.
func (s *Server) GetConfig(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, toConfigResponse(s.cfg.Params()))
}

// SetConfig handles PUT /api/v1/config - applies a partial parameter update.
// The merged set is validated as a whole, so an update that would leave the
// configuration inconsistent is rejected entirely.
func (s *Server) SetConfig(ctx echo.Context) error {
	var req SetConfigRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	params := s.cfg.Params()
	if err := req.apply(&params); err != nil {
		return fail(ctx, err)
	}

	if err := s.cfg.SetParams(params); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toConfigResponse(s.cfg.Params()))
}

// ResetConfig handles POST /api/v1/config/reset - restores defaults and
// rewinds the virtual clock to its epoch.
func (s *Server) ResetConfig(ctx echo.Context) error {
	s.cfg.Reset()
	return ctx.JSON(http.StatusOK, toConfigResponse(s.cfg.Params()))
}

// GetClock handles GET /api/v1/clock - reports the virtual time.
func (s *Server) GetClock(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ClockResponse{Now: s.cfg.Now()})
}

// ForwardClock handles POST /api/v1/clock/forward - advances the virtual
// clock by the requested interval.
func (s *Server) ForwardClock(ctx echo.Context) error {
	var req ForwardClockRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	now, err := s.cfg.Forward(time.Duration(req.IntervalSeconds) * time.Second)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ClockResponse{Now: now})
}
