package commands

import (
	"errors"

	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var ErrFinishOrderCommandIsNotConstructed = errors.New(
	"FinishOrderCommand must be created via NewFinishOrderCommand constructor",
)

// FinishOrderCommand represents a request to close an order after the
// equipment came back. Moves the order into the terminal "successful" status,
// which also releases its occupied period.
type FinishOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewFinishOrderCommand creates a command to complete an order.
// Requires a non empty order identifier.
func NewFinishOrderCommand(orderID string) (FinishOrderCommand, error) {
	orderCommand := FinishOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderCommand.setOrderID(orderID); err != nil {
		return FinishOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFinishOrderCommandIsNotConstructed if validation fails.
func (c FinishOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinishOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to complete.
func (c FinishOrderCommand) OrderID() string {
	return c.orderID
}

func (c *FinishOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValidationError("order_id is required")
	}

	c.orderID = orderID
	return nil
}
