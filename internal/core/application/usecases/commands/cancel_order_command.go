package commands

import (
	"errors"

	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel a rental order.
// A soft cancel moves the order into the terminal "canceled" status and keeps
// the row for history. A hard cancel deletes the row entirely, which is meant
// for operator cleanup of mistyped orders.
//
// Example:
//
//	cmd, _ := NewCancelOrderCommand("ORD-1001", false)
//	handler := NewCancelOrderCommandHandler(uowFactory)
//	canceled, err := handler.Handle(ctx, cmd)
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    string
	hardDelete bool

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// Requires a non empty order identifier.
func NewCancelOrderCommand(orderID string, hardDelete bool) (CancelOrderCommand, error) {
	orderCommand := CancelOrderCommand{
		hardDelete: hardDelete,
		guard:      guard.NewConstructorGuard(),
	}

	if err := orderCommand.setOrderID(orderID); err != nil {
		return CancelOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c CancelOrderCommand) OrderID() string {
	return c.orderID
}

// HardDelete reports whether the order row should be removed instead of
// being marked canceled.
func (c CancelOrderCommand) HardDelete() bool {
	return c.hardDelete
}

func (c *CancelOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValidationError("order_id is required")
	}

	c.orderID = orderID
	return nil
}
