package commands

import (
	"context"

	"rental/internal/core/domain/model/order"
)

// FinishOrderCommandHandler completes an order.
// Delegates to the edit handler with a status only patch. Once finished the
// order is terminal and its period no longer blocks other reservations.
type FinishOrderCommandHandler struct {
	editHandler EditOrderCommandHandler
}

// NewFinishOrderCommandHandler creates a handler for order completion.
// Requires an OrderUoWFactory for transactional persistence.
func NewFinishOrderCommandHandler(uowFactory OrderUoWFactory) FinishOrderCommandHandler {
	return FinishOrderCommandHandler{
		editHandler: NewEditOrderCommandHandler(uowFactory),
	}
}

// Handle processes the completion command and returns the finished order.
func (h *FinishOrderCommandHandler) Handle(ctx context.Context, cmd FinishOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	successful := order.Successful
	editCmd, err := NewEditOrderCommand(cmd.OrderID(), OrderPatch{Status: &successful})
	if err != nil {
		return nil, err
	}

	return h.editHandler.Handle(ctx, editCmd)
}
