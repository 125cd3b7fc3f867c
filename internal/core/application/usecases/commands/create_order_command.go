package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new open order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(order.RestaurantFood, "12 Rivoli St",
//	    location, "Ada", "+331234567", 1.2, 3)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock, notifier)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderType     order.Type
	address       string
	location      kernel.Location
	customerName  string
	customerPhone string
	weightKg      float64
	volumeLiters  float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order. Field
// validation is deferred to the order aggregate constructor; the command only
// checks the pieces that carry their own invariants.
func NewCreateOrderCommand(
	orderType order.Type,
	address string,
	location kernel.Location,
	customerName string,
	customerPhone string,
	weightKg float64,
	volumeLiters float64,
) (CreateOrderCommand, error) {
	if err := errors.Join(orderType.Validate(), location.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderType:     orderType,
		address:       address,
		location:      location,
		customerName:  customerName,
		customerPhone: customerPhone,
		weightKg:      weightKg,
		volumeLiters:  volumeLiters,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderType() order.Type { return c.orderType }
func (c CreateOrderCommand) Address() string { return c.address }
func (c CreateOrderCommand) Location() kernel.Location { return c.location }
func (c CreateOrderCommand) CustomerName() string { return c.customerName }
func (c CreateOrderCommand) CustomerPhone() string { return c.customerPhone }
func (c CreateOrderCommand) WeightKg() float64 { return c.weightKg }
func (c CreateOrderCommand) VolumeLiters() float64 { return c.volumeLiters }
