package commands

import (
	"context"

	"rental/internal/core/domain/model/order"
)

// MarkOrderPaidCommandHandler records payment for an order.
// Delegates to the edit handler with a status only patch, so terminal order
// protection and conflict translation apply unchanged.
type MarkOrderPaidCommandHandler struct {
	editHandler EditOrderCommandHandler
}

// NewMarkOrderPaidCommandHandler creates a handler for payment recording.
// Requires an OrderUoWFactory for transactional persistence.
func NewMarkOrderPaidCommandHandler(uowFactory OrderUoWFactory) MarkOrderPaidCommandHandler {
	return MarkOrderPaidCommandHandler{
		editHandler: NewEditOrderCommandHandler(uowFactory),
	}
}

// Handle processes the payment command and returns the updated order.
func (h *MarkOrderPaidCommandHandler) Handle(ctx context.Context, cmd MarkOrderPaidCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	paid := order.Paid
	editCmd, err := NewEditOrderCommand(cmd.OrderID(), OrderPatch{Status: &paid})
	if err != nil {
		return nil, err
	}

	return h.editHandler.Handle(ctx, editCmd)
}
