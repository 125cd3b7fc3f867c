package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSweepInactiveCouriersCommandIsNotConstructed = errors.New(
	"SweepInactiveCouriersCommand must be created via NewSweepInactiveCouriersCommand constructor",
)

// SweepInactiveCouriersCommand triggers the periodic shift-end sweep:
// couriers who have worked longer than the configured inactivity range are
// deactivated, provided they have no work in flight.
type SweepInactiveCouriersCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepInactiveCouriersCommand creates a parameterless sweep command.
func NewSweepInactiveCouriersCommand() SweepInactiveCouriersCommand {
	return SweepInactiveCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SweepInactiveCouriersCommand) Validate() error {
	return c.guard.Validate(ErrSweepInactiveCouriersCommandIsNotConstructed)
}
