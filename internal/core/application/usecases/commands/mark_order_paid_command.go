package commands

import (
	"errors"

	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var ErrMarkOrderPaidCommandIsNotConstructed = errors.New(
	"MarkOrderPaidCommand must be created via NewMarkOrderPaidCommand constructor",
)

// MarkOrderPaidCommand represents a request to record payment for an order.
// Moves the order into the "paid" status.
type MarkOrderPaidCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewMarkOrderPaidCommand creates a command to mark an order as paid.
// Requires a non empty order identifier.
func NewMarkOrderPaidCommand(orderID string) (MarkOrderPaidCommand, error) {
	orderCommand := MarkOrderPaidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderCommand.setOrderID(orderID); err != nil {
		return MarkOrderPaidCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkOrderPaidCommandIsNotConstructed if validation fails.
func (c MarkOrderPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderPaidCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to mark as paid.
func (c MarkOrderPaidCommand) OrderID() string {
	return c.orderID
}

func (c *MarkOrderPaidCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValidationError("order_id is required")
	}

	c.orderID = orderID
	return nil
}
