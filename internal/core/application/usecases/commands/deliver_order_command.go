package commands

import (
	"errors"

	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand represents a request to hand the equipment over.
// Records the pickup locker code and moves the order into the "shipped"
// status in one step, so a shipped order always carries its locker code.
//
// Example:
//
//	cmd, err := NewDeliverOrderCommand("ORD-1001", "A-17")
//	if err != nil {
//	    return fmt.Errorf("invalid delivery request: %w", err)
//	}
//
//	handler := NewDeliverOrderCommandHandler(uowFactory)
//	shipped, err := handler.Handle(ctx, cmd)
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    string
	lockerCode string

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a command to deliver an order.
// Requires a non empty order identifier and a non empty locker code. The
// locker code check runs here, before the order is even loaded, so a missing
// code is always a validation failure regardless of the order's state.
func NewDeliverOrderCommand(orderID, lockerCode string) (DeliverOrderCommand, error) {
	orderCommand := DeliverOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setLockerCode(lockerCode),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeliverOrderCommandIsNotConstructed if validation fails.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to deliver.
func (c DeliverOrderCommand) OrderID() string {
	return c.orderID
}

// LockerCode returns the locker code the equipment waits in.
func (c DeliverOrderCommand) LockerCode() string {
	return c.lockerCode
}

func (c *DeliverOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValidationError("order_id is required")
	}

	c.orderID = orderID
	return nil
}

func (c *DeliverOrderCommand) setLockerCode(lockerCode string) error {
	if lockerCode == "" {
		return errs.NewValidationError("locker_code is required")
	}

	c.lockerCode = lockerCode
	return nil
}
